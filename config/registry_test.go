package config_test

import (
	"strings"
	"testing"

	"github.com/rushteam/eventrec/config"
	_ "github.com/rushteam/eventrec/config/builders"
	"github.com/rushteam/eventrec/pipeline"
)

func TestSupportedTypes(t *testing.T) {
	types := config.SupportedTypes()
	want := []string{
		"explain.reason",
		"feature.enrich",
		"filter",
		"rank.match",
		"recall.fanout",
		"recall.hot",
		"recall.upcoming",
		"rerank.topn",
	}
	got := make(map[string]bool, len(types))
	for _, typ := range types {
		got[typ] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("SupportedTypes 缺少 %q，实际 %v", w, types)
		}
	}
}

func TestDefaultFactoryBuildsNodes(t *testing.T) {
	factory := config.DefaultFactory()

	tests := []struct {
		typ  string
		cfg  map[string]interface{}
		kind pipeline.Kind
	}{
		{"rank.match", nil, pipeline.KindRank},
		{"rerank.topn", map[string]interface{}{"n": 5}, pipeline.KindReRank},
		{"filter", map[string]interface{}{"filters": []interface{}{
			map[string]interface{}{"type": "own_events"},
			map[string]interface{}{"type": "past_events"},
		}}, pipeline.KindFilter},
		{"explain.reason", nil, pipeline.KindPostProcess},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			node, err := factory.Build(tt.typ, tt.cfg)
			if err != nil {
				t.Fatalf("Build(%q) 失败: %v", tt.typ, err)
			}
			if node.Kind() != tt.kind {
				t.Errorf("Kind = %v，期望 %v", node.Kind(), tt.kind)
			}
		})
	}
}

func TestDefaultFactoryRejectsUnknownType(t *testing.T) {
	factory := config.DefaultFactory()
	if _, err := factory.Build("rank.magic", nil); err == nil {
		t.Fatalf("未注册类型应该报错")
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "event_feed"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter"},
		{Type: "rank.match"},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 3}},
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("合法配置不应该报错: %v", err)
	}

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, pipeline.NodeConfig{Type: "rank.magic"})
	err := config.ValidatePipelineConfig(cfg)
	if err == nil {
		t.Fatalf("未注册类型应该校验失败")
	}
	if !strings.Contains(err.Error(), "rank.magic") {
		t.Errorf("错误信息应该包含未知类型名，实际 %v", err)
	}
	// 错误提示要带上已支持类型列表，方便排查配置
	if !strings.Contains(err.Error(), "rank.match") {
		t.Errorf("错误信息应该包含支持列表，实际 %v", err)
	}
}

func TestValidatePipelineConfig_Nil(t *testing.T) {
	if err := config.ValidatePipelineConfig(nil); err != nil {
		t.Errorf("nil 配置应该直接通过: %v", err)
	}
}
