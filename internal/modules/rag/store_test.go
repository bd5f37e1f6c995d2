package rag

import (
	"math"
	"testing"
)

func TestL2Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"unit apart", []float32{0, 0}, []float32{1, 0}, 1},
		{"pythagorean", []float32{0, 0}, []float32{3, 4}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l2Distance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("l2Distance = %v, want %v", got, tt.want)
			}
		})
	}
}
