package pipeline

import (
	"context"

	"github.com/rushteam/eventrec/core"
)

// Pipeline 是 eventrec 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 一次 Run 处理一次请求，Node 之间通过 items 传递候选集。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
