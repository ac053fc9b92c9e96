// Package stats contains scoring and result reporting.
package stats

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/typespeed/internal/model"
)

const (
	charsPerWord = 5
	sparkChars   = " .:-=+*#%@"
)

// Score compares typed words with generated words by index and converts the
// characters of exactly matching words into per-minute rates. Words typed
// past the end of the generated text earn nothing.
func Score(generated, typed string, limitSeconds int) model.ScoreResult {
	correct := CorrectChars(strings.Fields(generated), strings.Fields(typed))
	cpm, wpm := Rates(correct, limitSeconds)
	return model.ScoreResult{
		TimeLimit: limitSeconds,
		Correct:   correct,
		CPM:       cpm,
		WPM:       wpm,
	}
}

// CorrectChars sums the rune counts of typed words equal to the generated
// word at the same position.
func CorrectChars(generatedWords, typedWords []string) int {
	n := min(len(typedWords), len(generatedWords))
	correct := 0
	for i := 0; i < n; i++ {
		if typedWords[i] == generatedWords[i] {
			correct += utf8.RuneCountInString(typedWords[i])
		}
	}
	return correct
}

// Rates converts a corrected character count over limitSeconds to CPM and WPM.
func Rates(correct, limitSeconds int) (cpm, wpm int) {
	if limitSeconds <= 0 || correct <= 0 {
		return 0, 0
	}
	cpm = correct * 60 / limitSeconds
	return cpm, cpm / charsPerWord
}

// Breakdown lists every typed word next to the generated word at its index.
func Breakdown(generated, typed string) []model.WordResult {
	genWords := strings.Fields(generated)
	typedWords := strings.Fields(typed)
	out := make([]model.WordResult, 0, len(typedWords))
	for i, w := range typedWords {
		res := model.WordResult{Index: i, Typed: w}
		if i < len(genWords) {
			res.Expected = genWords[i]
			res.Match = w == genWords[i]
			if res.Match {
				res.Chars = utf8.RuneCountInString(w)
			}
		}
		out = append(out, res)
	}
	return out
}

// Timeline returns the CPM reached after each completed second, one entry per
// sample, smoothed over window seconds.
func Timeline(generated string, samples []string, window int) []float64 {
	if len(samples) == 0 {
		return nil
	}
	genWords := strings.Fields(generated)
	values := make([]float64, len(samples))
	for i, typed := range samples {
		correct := CorrectChars(genWords, strings.Fields(typed))
		values[i] = float64(correct) * 60 / float64(i+1)
	}
	return MovingAverage(values, window)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
