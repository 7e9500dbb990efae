package vectormath

import (
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"parallel", []float64{1, 0}, []float64{1, 0}, 1},
		{"general", []float64{1, 2, 3}, []float64{4, 5, 6}, 32},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dot(tt.a, tt.b); got != tt.want {
				t.Errorf("Dot() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float64{3, 4})
	if norm := Norm(got); math.Abs(norm-1.0) > 1e-6 {
		t.Errorf("Norm(Normalize()) = %f, want 1.0", norm)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	got := Normalize([]float64{0, 0, 0})
	for i, x := range got {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("Normalize(zero)[%d] = %f, want finite", i, x)
		}
		if x != 0 {
			t.Errorf("Normalize(zero)[%d] = %f, want 0", i, x)
		}
	}
}

func TestMean(t *testing.T) {
	got := Mean([][]float64{{1, 0}, {0, 1}})
	want := []float64{0.5, 0.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Mean()[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	if Mean(nil) != nil {
		t.Error("Mean(nil) != nil")
	}
}

func TestMean_SkipsMismatchedDimensions(t *testing.T) {
	got := Mean([][]float64{{2, 0}, {1, 2, 3}})
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("Mean() = %v, want [2 0]", got)
	}
}

func TestScaleSub(t *testing.T) {
	got := Sub([]float64{1, 0}, Scale([]float64{0.5, 1}, 0.3))
	want := []float64{0.85, -0.3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Sub()[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	if Sub([]float64{1}, []float64{1, 2}) != nil {
		t.Error("Sub() with mismatched lengths should return nil")
	}
}
