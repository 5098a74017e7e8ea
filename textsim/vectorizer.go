// Package textsim 实现“两文档语料”的 TF-IDF 余弦相似度。
//
// 与常规做法不同，这里的词表不做全局预训练：每次比较只用被比较的两段文本
// 重建词表（corpus-of-two）。全局词表会让同一 (画像, 活动) 对在不同请求里
// 得到不同分数，破坏按请求的确定性。
package textsim

import (
	"math"
	"strings"
	"unicode"

	"github.com/rushteam/eventrec/core"
)

// Vectorizer 是单次配对打分用的向量化器。
// 词表在 Similarity 调用内构建并丢弃，不跨请求累积；零值即可用。
type Vectorizer struct {
	// KeepStopWords 为 true 时不剔除英文停用词（默认剔除）。
	KeepStopWords bool
}

// ErrDegenerateText 表示任一文本分词后为空，无法向量化。
// 调用方应回退到词重叠比例（OverlapRatio）。
var ErrDegenerateText = core.NewDomainError(core.ModuleScore, core.ErrorCodeDegenerateText, "textsim: degenerate input text")

// Similarity 计算两段文本的 TF-IDF 余弦相似度，结果落在 [0, 1]。
//
// 实现形态对齐 sklearn 的 TfidfVectorizer：
//   - tf 为词频原始计数
//   - idf 平滑：ln((1+n)/(1+df)) + 1，n 固定为 2
//   - 向量做 L2 归一化后取点积
func (v *Vectorizer) Similarity(a, b string) (float64, error) {
	ta := v.tokenize(a)
	tb := v.tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, ErrDegenerateText
	}

	tfA := termFreq(ta)
	tfB := termFreq(tb)

	// df: 词在两篇文档中出现的篇数
	vocab := make(map[string]int, len(tfA)+len(tfB))
	for term := range tfA {
		vocab[term]++
	}
	for term := range tfB {
		vocab[term]++
	}

	idf := make(map[string]float64, len(vocab))
	const n = 2.0
	for term, df := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	vecA := weigh(tfA, idf)
	vecB := weigh(tfB, idf)
	l2Normalize(vecA)
	l2Normalize(vecB)

	var dot float64
	for term, wa := range vecA {
		dot += wa * vecB[term]
	}
	// 归一化向量的点积理论上已在 [0,1]，浮点误差再钳一次
	return math.Min(1, math.Max(0, dot)), nil
}

// OverlapRatio 是向量化失败时的回退：共享词数 / 用户侧词数。
// 这里按小写空白切分取词，不走 tokenize 的停用词过滤，
// 回退路径保留停用词参与重叠统计。用户侧无词时返回 0。
func (v *Vectorizer) OverlapRatio(user, event string) float64 {
	userWords := toSet(strings.Fields(strings.ToLower(user)))
	eventWords := toSet(strings.Fields(strings.ToLower(event)))
	if len(userWords) == 0 {
		return 0
	}
	shared := 0
	for w := range userWords {
		if _, ok := eventWords[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(userWords))
}

func (v *Vectorizer) tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if v.KeepStopWords {
		return fields
	}
	out := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

func termFreq(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

func weigh(tf map[string]float64, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(tf))
	for term, f := range tf {
		vec[term] = f * idf[term]
	}
	return vec
}

func l2Normalize(vec map[string]float64) {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for term := range vec {
		vec[term] /= norm
	}
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// stopWords 是常见英文停用词，对齐原始打分里 stop_words='english' 的意图。
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "she": {}, "so": {}, "such": {}, "that": {}, "the": {},
	"their": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"to": {}, "was": {}, "we": {}, "were": {}, "will": {}, "with": {},
	"you": {}, "your": {},
}
