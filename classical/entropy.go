package classical

import (
	"math"

	"github.com/samber/lo"
)

// Entropy is the Shannon entropy of text in bits per rune.
func Entropy(text string) float64 {
	return shannon(lo.CountValues([]rune(text)))
}

// BigramEntropy is the Shannon entropy of overlapping rune pairs.
func BigramEntropy(text string) float64 {
	runes := []rune(text)
	if len(runes) < 2 {
		return 0
	}
	bigrams := make([][2]rune, len(runes)-1)
	for i := range bigrams {
		bigrams[i] = [2]rune{runes[i], runes[i+1]}
	}
	return shannon(lo.CountValues(bigrams))
}

func shannon[K comparable](counts map[K]int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	h := 0.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}
