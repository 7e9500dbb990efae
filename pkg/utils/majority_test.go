package utils

import "testing"

func TestMajority(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"simple majority", []string{"Dress", "Bag", "Dress"}, "Dress"},
		{"tie by first occurrence", []string{"Bag", "Dress", "Dress", "Bag"}, "Bag"},
		{"single value", []string{"Sweater"}, "Sweater"},
		{"skips empty strings", []string{"", "Bag", ""}, "Bag"},
		{"all empty", []string{"", ""}, ""},
		{"nil input", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Majority(tt.values); got != tt.want {
				t.Errorf("Majority(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name               string
		existing, incoming Label
		want               Label
	}{
		{
			name:     "both present",
			existing: Label{Value: "a", Source: "recall"},
			incoming: Label{Value: "b", Source: "filter"},
			want:     Label{Value: "a|b", Source: "recall,filter"},
		},
		{
			name:     "existing empty",
			existing: Label{},
			incoming: Label{Value: "b", Source: "filter"},
			want:     Label{Value: "b", Source: "filter"},
		},
		{
			name:     "incoming empty",
			existing: Label{Value: "a", Source: "recall"},
			incoming: Label{},
			want:     Label{Value: "a", Source: "recall"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
