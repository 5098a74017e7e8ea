package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			"both_set",
			Label{Value: "hot", Source: "recall"},
			Label{Value: "upcoming", Source: "recall"},
			Label{Value: "hot|upcoming", Source: "recall,recall"},
		},
		{
			"empty_existing",
			Label{},
			Label{Value: "hot", Source: "recall"},
			Label{Value: "hot", Source: "recall"},
		},
		{
			"empty_incoming",
			Label{Value: "hot", Source: "recall"},
			Label{},
			Label{Value: "hot", Source: "recall"},
		},
		{
			"existing_without_source",
			Label{Value: "a"},
			Label{Value: "b", Source: "rank"},
			Label{Value: "a|b", Source: "rank"},
		},
		{
			"incoming_without_source",
			Label{Value: "a", Source: "rank"},
			Label{Value: "b"},
			Label{Value: "a|b", Source: "rank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel = %+v，期望 %+v", got, tt.want)
			}
		})
	}
}
