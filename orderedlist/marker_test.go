package orderedlist

import "testing"

func TestMarker(t *testing.T) {
	tests := []struct {
		style string
		n     int
		want  string
	}{
		{"", 3, Bullet},
		{"1", 3, "3."},
		{"a", 1, "a."},
		{"a", 28, "ab."},
		{"A", 26, "Z."},
		{"i", 4, "iv."},
		{"I", 1994, "MCMXCIV."},
		{"I", 4000, "4000."},
		{"kors", 2, "ㄴ."},
		{"korc", 15, "가가."},
		{"a", 0, "0."},
		{"unknown", 7, "7."},
	}
	for _, tt := range tests {
		if got := Marker(tt.style, tt.n); got != tt.want {
			t.Fatalf("Marker(%q, %d)=%q, want %q", tt.style, tt.n, got, tt.want)
		}
	}
}
