package profile

import "sort"

// tally 是显式的“标签 -> 累计权重”映射，同时记录首次出现顺序。
// 排名规则：权重降序，同权重按首次出现顺序（先到先得）。
type tally struct {
	weights   map[string]int
	firstSeen map[string]int
	order     []string
}

func newTally() *tally {
	return &tally{
		weights:   make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

func (t *tally) add(label string, weight int) {
	if _, ok := t.weights[label]; !ok {
		t.firstSeen[label] = len(t.order)
		t.order = append(t.order, label)
	}
	t.weights[label] += weight
}

// top 返回权重排名前 n 的标签。
func (t *tally) top(n int) []string {
	ranked := make([]string, len(t.order))
	copy(ranked, t.order)

	sort.SliceStable(ranked, func(i, j int) bool {
		wi, wj := t.weights[ranked[i]], t.weights[ranked[j]]
		if wi != wj {
			return wi > wj
		}
		return t.firstSeen[ranked[i]] < t.firstSeen[ranked[j]]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
