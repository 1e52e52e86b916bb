package facematch

import "fmt"

// Threshold is the global similarity cutoff above which two embeddings are
// considered the same identity. Inclusive: a score of exactly Threshold is a
// match.
const Threshold = 0.8

// Compare computes the inner product of two embeddings. The extractor emits
// unit-normalized vectors, so this equals cosine similarity in [-1, 1].
// Vectors of different dimensionality indicate corrupted or mismatched data
// and are rejected outright.
func Compare(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty embedding")
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot, nil
}

// IsMatch applies the fixed threshold to a similarity score.
func IsMatch(score float64) bool {
	return score >= Threshold
}
