package embedding

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors of different lengths are
// compared.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// CosineSimilarity returns 1 - cosineDistance(a, b), in [-1, 1]: 1 for
// identical direction, 0 for orthogonal, -1 for opposite. Vectors must have
// equal lengths. A zero-norm vector yields 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// TokensToVector converts a token-ID sequence to a []float64 vector, for
// feeding encode output into CosineSimilarity.
func TokensToVector(tokens []int) []float64 {
	if tokens == nil {
		return nil
	}
	out := make([]float64, len(tokens))
	for i, id := range tokens {
		out[i] = float64(id)
	}
	return out
}
