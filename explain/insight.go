package explain

import (
	"fmt"

	"github.com/rushteam/eventrec/core"
)

// Insight 为一批推荐生成一句总结，规则按优先级：
//  1. 结果为空：提示暂无活动
//  2. 画像完全无信号：欢迎语 + 结果数量，邀请多探索
//  3. 有偏好类别：点名第一类别 + 结果数量
//  4. 兜底：通用的“找到 N 场符合偏好的活动”
func Insight(p *core.UserProfile, recs []core.Recommendation) string {
	if len(recs) == 0 {
		return "No events available for recommendations at this time. Check back later for new events!"
	}

	if p.IsColdStart() {
		return fmt.Sprintf(
			"Welcome! We've found %d upcoming event(s) that might interest you. "+
				"Explore events from different categories to help us personalize future recommendations!",
			len(recs),
		)
	}

	if len(p.FavoriteCategories) > 0 {
		return fmt.Sprintf(
			"Based on your interest in %s and your event history, we've found %d personalized recommendations for you.",
			p.FavoriteCategories[0], len(recs),
		)
	}

	return fmt.Sprintf(
		"We've found %d events that match your preferences based on your activity and interests.",
		len(recs),
	)
}
