// Package generator builds the sample text for a typing test.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// Generator turns a word list into sample text.
type Generator struct {
	rnd    *rand.Rand
	sample int
}

// New returns a Generator that joins the whole list in order.
func New() *Generator {
	return &Generator{}
}

// NewSampling returns a Generator that picks count words at random.
// A zero seed uses the current time.
func NewSampling(count int, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed)), sample: count}
}

// Text produces the sample text for one attempt.
func (g *Generator) Text(words []string) string {
	if g.sample > 0 && g.rnd != nil {
		return strings.Join(g.Sample(words, g.sample), " ")
	}
	return Generate(words)
}

// Generate joins every word in file order with single spaces.
func Generate(words []string) string {
	return strings.Join(words, " ")
}

// Sample selects count words uniformly, never repeating the previous pick
// when the list has more than one word.
func (g *Generator) Sample(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	prev := -1
	for i := 0; i < count; i++ {
		idx := g.rnd.Intn(len(words))
		for len(words) > 1 && idx == prev {
			idx = g.rnd.Intn(len(words))
		}
		prev = idx
		result = append(result, words[idx])
	}
	return result
}
