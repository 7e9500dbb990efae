package rerank

import (
	"context"
	"testing"

	"github.com/shopperos/tastekit/core"
)

func candidate(id, category string) *core.Candidate {
	c := core.NewCandidate(id)
	if category != "" {
		c.Product = &core.Product{ID: id, Category: category}
	}
	return c
}

func TestDiversity(t *testing.T) {
	node := &Diversity{}

	items := []*core.Candidate{
		candidate("p1", "Dress"),
		candidate("p2", "Dress"), // duplicate category, dropped
		candidate("p3", "Bag"),
		candidate("p4", ""), // unresolved, kept
		candidate("p5", "Bag"),
		nil,
	}
	got, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := []string{"p1", "p3", "p4"}
	if len(got) != len(want) {
		t.Fatalf("Process() returned %d items, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("item[%d] = %s, want %s", i, got[i].ID, id)
		}
	}

	// 返回的品类互不相同
	seen := make(map[string]bool)
	for _, it := range got {
		cate := it.Category()
		if cate == "" {
			continue
		}
		if seen[cate] {
			t.Errorf("duplicate category %s in diversified result", cate)
		}
		seen[cate] = true
	}
}

func TestTopN(t *testing.T) {
	items := []*core.Candidate{
		candidate("p1", ""), candidate("p2", ""), candidate("p3", ""),
	}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncate", 2, 2},
		{"exact", 3, 3},
		{"fewer than n", 10, 3},
		{"disabled", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&TopN{N: tt.n}).Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Process() returned %d items, want %d", len(got), tt.want)
			}
		})
	}
}
