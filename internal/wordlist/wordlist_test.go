package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWordsTrimsAndSkipsBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("  the\n\nquick \n\t\nbrown fox\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := FileSource{Path: path}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	expected := []string{"the", "quick", "brown", "fox"}
	if strings.Join(words, "|") != strings.Join(expected, "|") {
		t.Fatalf("expected %v, got %v", expected, words)
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	_, err := LoadWords(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestReadWordsEmpty(t *testing.T) {
	_, err := ReadWords(strings.NewReader("\n   \n\t\n"))
	if !errors.Is(err, ErrEmptyResource) {
		t.Fatalf("expected ErrEmptyResource, got %v", err)
	}
}

func TestLoadReturnsFreshSlice(t *testing.T) {
	src := EmbeddedSource{}
	first, err := src.Load()
	if err != nil {
		t.Fatalf("load bundled: %v", err)
	}
	first[0] = "mutated"
	second, err := src.Load()
	if err != nil {
		t.Fatalf("load bundled: %v", err)
	}
	if second[0] == "mutated" {
		t.Fatalf("expected a freshly read list")
	}
	for _, w := range second {
		if strings.ContainsAny(w, " \t\r\n") {
			t.Fatalf("bundled word %q contains whitespace", w)
		}
	}
}

func TestResolve(t *testing.T) {
	if _, ok := Resolve("").(EmbeddedSource); !ok {
		t.Fatalf("expected bundled source for empty path")
	}
	src, ok := Resolve("/tmp/w.txt").(FileSource)
	if !ok || src.Path != "/tmp/w.txt" {
		t.Fatalf("expected file source, got %#v", src)
	}
}
