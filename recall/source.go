// Package recall 提供候选活动的来源：调用方直传、即将开始、热门，支持并发 fan-out。
package recall

import (
	"context"

	"github.com/rushteam/eventrec/core"
)

// Source 表示一个可复用的候选来源（直传/即将开始/热门/...）。
// 你可以把它理解为“可并发 fan-out 的策略单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
