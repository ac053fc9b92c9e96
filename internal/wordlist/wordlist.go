// Package wordlist loads word lists from files or the bundled resource.
package wordlist

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrResourceUnavailable reports that the word resource could not be read.
	ErrResourceUnavailable = errors.New("word resource unavailable")
	// ErrEmptyResource reports a readable word resource without any words.
	ErrEmptyResource = errors.New("word resource is empty")
)

//go:embed words.txt
var bundled []byte

// Source supplies a fresh word list on every call.
type Source interface {
	Load() ([]string, error)
	Describe() string
}

// FileSource reads one word per line from Path.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load() ([]string, error) {
	return LoadWords(s.Path)
}

// Describe implements Source.
func (s FileSource) Describe() string {
	return s.Path
}

// EmbeddedSource reads the word list compiled into the binary.
type EmbeddedSource struct{}

// Load implements Source.
func (EmbeddedSource) Load() ([]string, error) {
	return ReadWords(bytes.NewReader(bundled))
}

// Describe implements Source.
func (EmbeddedSource) Describe() string {
	return "bundled"
}

// Resolve picks the file source when a path is configured, otherwise the bundled list.
func Resolve(path string) Source {
	if strings.TrimSpace(path) == "" {
		return EmbeddedSource{}
	}
	return FileSource{Path: path}
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ReadWords(file)
}

// ReadWords parses a line-oriented word resource. Lines are trimmed, blank
// lines are skipped and a line holding several words yields each of them.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	if len(words) == 0 {
		return nil, ErrEmptyResource
	}
	return words, nil
}
