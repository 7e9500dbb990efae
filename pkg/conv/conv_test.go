package conv

import (
	"reflect"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"float64", 1.5, 1.5, true},
		{"int", 3, 3.0, true},
		{"int64", int64(4), 4.0, true},
		{"bool true", true, 1.0, true},
		{"bool false", false, 0.0, true},
		{"string", "1.5", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ToFloat64(%v) = %f, %v; want %f, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSliceAnyToString(t *testing.T) {
	got := SliceAnyToString([]any{"p1", 2, "p3", nil})
	want := []string{"p1", "2", "p3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SliceAnyToString() = %v, want %v", got, want)
	}

	if SliceAnyToString("not a slice") != nil {
		t.Error("SliceAnyToString(non-slice) != nil")
	}
	if SliceAnyToString(nil) != nil {
		t.Error("SliceAnyToString(nil) != nil")
	}
}

func TestSliceAnyToFloat64(t *testing.T) {
	got := SliceAnyToFloat64([]any{0.958, -0.287, 0, "skip"})
	want := []float64{0.958, -0.287, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SliceAnyToFloat64() = %v, want %v", got, want)
	}
}

func TestConfigGetters(t *testing.T) {
	m := map[string]any{
		"key":    "popular:products",
		"n":      5,
		"ratio":  0.3,
		"nfloat": 7.0, // YAML/JSON 常把整数解析为 float64
	}

	if got := ConfigGet(m, "key", "fallback"); got != "popular:products" {
		t.Errorf("ConfigGet(key) = %q", got)
	}
	if got := ConfigGet(m, "missing", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet(missing) = %q", got)
	}
	if got := ConfigGetInt(m, "n", 0); got != 5 {
		t.Errorf("ConfigGetInt(n) = %d", got)
	}
	if got := ConfigGetInt(m, "nfloat", 0); got != 7 {
		t.Errorf("ConfigGetInt(nfloat) = %d", got)
	}
	if got := ConfigGetFloat64(m, "ratio", 0); got != 0.3 {
		t.Errorf("ConfigGetFloat64(ratio) = %f", got)
	}
	if got := ConfigGetInt(nil, "n", 9); got != 9 {
		t.Errorf("ConfigGetInt(nil map) = %d", got)
	}
}
