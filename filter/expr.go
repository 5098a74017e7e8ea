package filter

import (
	"context"

	"github.com/rushteam/eventrec/core"
	"github.com/rushteam/eventrec/pkg/dsl"
)

// ExprFilter 是表达式过滤器：表达式求值为 true 的候选被过滤掉。
// 表达式用 CEL 语法，见 pkg/dsl。例如：
//   - `event.max_participants > 0 && event.current_participants >= event.max_participants`（已满员）
//   - `event.category == "Webinar"`（按类别屏蔽）
type ExprFilter struct {
	// Expr 为空时不过滤任何候选。
	Expr string
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}
