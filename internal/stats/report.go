package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/verte-zerg/typespeed/internal/model"
)

const terminalWidthBackup = 80

// TerminalWidth reports the column count of f, or a fallback when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderResult prints the score, the per-second timeline and the word breakdown.
func RenderResult(w io.Writer, res model.ScoreResult, width int) error {
	if _, err := fmt.Fprintln(w, "Results"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "CPM: %d\nWPM: %d\n", res.CPM, res.WPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Correct characters: %d in %ds\n", res.Correct, res.TimeLimit); err != nil {
		return err
	}
	if len(res.Timeline) > 0 {
		line := Sparkline(res.Timeline)
		if width > 0 && len(line) > width {
			line = line[len(line)-width:]
		}
		if _, err := fmt.Fprintf(w, "Pace: %s\n", line); err != nil {
			return err
		}
	}
	if len(res.Words) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	headers := []string{"#", "Expected", "Typed", "Match", "Chars"}
	rows := make([][]string, 0, len(res.Words))
	for _, word := range res.Words {
		expected := word.Expected
		if expected == "" {
			expected = "-"
		}
		match := "no"
		if word.Match {
			match = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(word.Index + 1),
			expected,
			word.Typed,
			match,
			strconv.Itoa(word.Chars),
		})
	}
	rightAlign := map[int]bool{0: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
