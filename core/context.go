package core

import "github.com/rushteam/eventrec/pkg/utils"

// RecommendContext 承载用户/场景/请求级信息，贯穿整个 Pipeline 透传。
// 一次推荐请求对应一个 RecommendContext，请求间互不共享。
type RecommendContext struct {
	UserID string
	Scene  string

	// Profile 是本次请求构建好的用户画像（可能为空画像，但不为 nil 时优先使用）。
	Profile *UserProfile

	// Now 是打分基准时间；零值时各 Node 使用 time.Now()。
	// 固定 Now 可以让同一组输入得到确定性的分数（测试友好）。
	NowUnix int64

	// Labels 是用户级标签，可驱动整个 Pipeline 行为（如 cold_start）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数：top_n、initial_categories、initial_tags 等。
	Params map[string]any
}

// GetProfile 获取画像；未设置时返回空画像，保证下游无需判空。
func (rctx *RecommendContext) GetProfile() *UserProfile {
	if rctx == nil || rctx.Profile == nil {
		return NewUserProfile()
	}
	return rctx.Profile
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
