// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式求值，
// 用于配置驱动的候选资格规则与标签策略。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/eventrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("event", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是规则表达式解释器。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：event.category == "Music" / label.recall_source == "recall.hot"
//   - 数值：item.score > 70.0 / event.current_participants >= 10
//   - 逻辑：event.category == "Music" && item.score > 50.0
//   - 包含："live" in event.tags / label.recall_source.contains("hot")
//
// 注意：has(label.key) 可以用 label.key != null 替代。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的表达式解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行表达式，返回布尔结果。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 访问不存在的 key 时 CEL 会返回错误；
		// 存在性检查应使用 label.key != null
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.recall_source 直接取 value
			labelAccessor[k] = v.Value
		}
	}

	event := map[string]interface{}{}
	item := map[string]interface{}{}
	if e.item != nil {
		item = map[string]interface{}{
			"id":         e.item.ID,
			"score":      e.item.Score,
			"confidence": e.item.Confidence,
			"labels":     labels,
		}
		if e.item.Event != nil {
			ev := e.item.Event
			event = map[string]interface{}{
				"id":                   ev.ID,
				"title":                ev.Title,
				"category":             ev.Category,
				"tags":                 ev.Tags,
				"date":                 ev.Date,
				"owner_id":             ev.OwnerID,
				"current_participants": ev.CurrentParticipants,
				"max_participants":     ev.MaxParticipants,
			}
		}
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx = map[string]interface{}{
			"user_id": e.rctx.UserID,
			"scene":   e.rctx.Scene,
			"params":  e.rctx.Params,
		}
	}

	return map[string]interface{}{
		"item":  item,
		"event": event,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
