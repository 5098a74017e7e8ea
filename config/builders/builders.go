package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/eventrec/config"
	"github.com/rushteam/eventrec/explain"
	"github.com/rushteam/eventrec/feature"
	"github.com/rushteam/eventrec/filter"
	"github.com/rushteam/eventrec/pipeline"
	"github.com/rushteam/eventrec/pkg/conv"
	"github.com/rushteam/eventrec/rank"
	"github.com/rushteam/eventrec/recall"
	"github.com/rushteam/eventrec/rerank"
	"github.com/rushteam/eventrec/textsim"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("recall.upcoming", BuildUpcomingNode)
	config.Register("filter", BuildFilterNode)
	config.Register("feature.enrich", BuildFeatureEnrichNode)
	config.Register("rank.match", BuildMatchNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("explain.reason", BuildReasonNode)
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "hot":
			ids := conv.SliceAnyToString(sourceMap["ids"])
			if ids == nil {
				ids = []string{}
			}
			sources = append(sources, &recall.Hot{
				Key: conv.ConfigGet(sourceMap, "key", ""),
				IDs: ids,
			})
		case "upcoming":
			// upcoming 需要 core.EventStore，无法从纯配置构建；
			// 用代码组装时直接 append &recall.Upcoming{Events: ...}
			return nil, fmt.Errorf("source type upcoming requires an EventStore, assemble in code")
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet(cfg, "dedup", true),
	}
	if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = n
	}
	return fanout, nil
}

func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if ids == nil {
		ids = []string{}
	}
	hot := &recall.Hot{
		Key: conv.ConfigGet(cfg, "key", ""),
		IDs: ids,
	}
	if n := conv.ConfigGetInt(cfg, "top_n", 0); n > 0 {
		hot.TopN = int64(n)
	}
	return hot, nil
}

func BuildUpcomingNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return nil, fmt.Errorf("recall.upcoming requires an EventStore, assemble in code")
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "own_events":
			filters = append(filters, &filter.OwnEventsFilter{})
		case "past_events":
			filters = append(filters, &filter.PastEventsFilter{})
		case "expr":
			filters = append(filters, &filter.ExprFilter{
				Expr: conv.ConfigGet(filterMap, "expr", ""),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildFeatureEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	// FeatureService 无法从纯配置构建，这里返回空服务的节点；
	// 用代码组装时注入 feature.NewStoreFeatureService 或 feast.NewAdapter
	return &feature.EnrichNode{}, nil
}

func BuildMatchNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.MatchNode{
		Scorer: &rank.Scorer{
			Vectorizer: textsim.Vectorizer{
				KeepStopWords: conv.ConfigGet(cfg, "keep_stop_words", false),
			},
		},
	}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt(cfg, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("n must be positive")
	}
	return &rerank.TopNNode{N: n}, nil
}

func BuildReasonNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &explain.ReasonNode{}, nil
}
