package facematch

import (
	"math"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
		wantErr  bool
	}{
		{
			name:     "identical unit vector",
			a:        []float32{1, 0, 0},
			b:        []float32{1, 0, 0},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{0, 1},
			b:        []float32{0, -1},
			expected: -1.0,
		},
		{
			name:     "partial similarity",
			a:        []float32{0.6, 0.8},
			b:        []float32{0.8, 0.6},
			expected: 0.96,
		},
		{
			name:    "dimension mismatch",
			a:       []float32{1, 0, 0},
			b:       []float32{1, 0},
			wantErr: true,
		},
		{
			name:    "empty vectors",
			a:       []float32{},
			b:       []float32{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Compare(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Compare(%v, %v) expected error, got score %v", tt.a, tt.b, score)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compare(%v, %v) unexpected error: %v", tt.a, tt.b, err)
			}
			if math.Abs(score-tt.expected) > 1e-6 {
				t.Errorf("Compare(%v, %v) = %v, want %v", tt.a, tt.b, score, tt.expected)
			}
		})
	}
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		score float64
		want  bool
	}{
		{1.0, true},
		{0.81, true},
		{0.8, true}, // boundary is inclusive
		{0.79999, false},
		{0.5, false},
		{0, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := IsMatch(tt.score); got != tt.want {
			t.Errorf("IsMatch(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestIdenticalUnitVectorsMatch(t *testing.T) {
	// A normalized 4-dim vector compared with itself must score 1.0 and match.
	v := []float32{0.5, 0.5, 0.5, 0.5}
	score, err := Compare(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(score-1.0) > 1e-6 {
		t.Fatalf("self-similarity = %v, want 1.0", score)
	}
	if !IsMatch(score) {
		t.Fatal("self-comparison must be a match")
	}
}
