package store

import (
	"context"
	"math"
	"testing"

	"github.com/shopperos/tastekit/core"
)

func TestKVTasteStore_Roundtrip(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	s := NewKVTasteStore(ms)
	ctx := context.Background()

	if _, err := s.Get(ctx, "u1"); !core.IsNotFound(err) {
		t.Errorf("Get(u1) error = %v, want NOT_FOUND", err)
	}

	want := []float64{0.958, -0.287, 0, 0}
	if err := s.Upsert(ctx, "u1", want); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("vector[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestKVTasteStore_MalformedPayload(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.Set(ctx, "taste:user:u1", []byte("not json"))

	s := NewKVTasteStore(ms)
	if _, err := s.Get(ctx, "u1"); !core.IsUnavailable(err) {
		t.Errorf("Get() error = %v, want UNAVAILABLE", err)
	}
}

func TestMemoryTasteStore_CopiesVector(t *testing.T) {
	s := NewMemoryTasteStore()
	ctx := context.Background()

	vec := []float64{1, 0}
	if err := s.Upsert(ctx, "u1", vec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	vec[0] = -1 // 修改调用方切片不应影响存储

	got, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got[0] != 1 {
		t.Errorf("stored vector mutated: got[0] = %f, want 1", got[0])
	}
}
