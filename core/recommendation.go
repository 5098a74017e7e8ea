package core

// Recommendation 是推荐结果的对外形态：分数、置信度、理由与匹配因素。
// Score 必然落在 [0, 100]，Confidence 必然落在 [1, 10]。
type Recommendation struct {
	EventID      string   `json:"eventId"`
	Title        string   `json:"title"`
	Score        float64  `json:"score"`
	Confidence   int      `json:"confidence"`
	Reason       string   `json:"reason"`
	MatchFactors []string `json:"matchFactors"`
}
