// Package input reads URLs and grid layouts supplied on the command line.
package input

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
)

// URLSource yields normalized URLs to add as boxes.
type URLSource interface {
	// Name returns the source identifier (e.g., "stdin", "args").
	Name() string

	// URLs reads all URLs from the source.
	URLs(ctx context.Context) ([]string, error)
}

// NewSource returns the source for CLI arguments, where a single "-"
// means read one URL per line from stdin.
func NewSource(args []string) URLSource {
	if len(args) == 1 && args[0] == "-" {
		return NewReaderSource("stdin", os.Stdin)
	}
	return ArgSource(args)
}

// ArgSource is a fixed list of URLs given as arguments.
type ArgSource []string

// Name returns the source identifier.
func (a ArgSource) Name() string {
	return "args"
}

// URLs normalizes each argument; blank arguments are an error.
func (a ArgSource) URLs(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(a))
	for _, arg := range a {
		u, ok := NormalizeURL(arg)
		if !ok {
			return nil, &AdapterError{Source: a.Name(), Message: "empty URL"}
		}
		out = append(out, u)
	}
	return out, nil
}

// ReaderSource reads URLs line by line from a reader.
type ReaderSource struct {
	name   string
	reader io.Reader
}

// NewReaderSource creates a ReaderSource.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, reader: r}
}

// Name returns the source identifier.
func (s *ReaderSource) Name() string {
	return s.name
}

// URLs reads all URLs from the underlying reader.
func (s *ReaderSource) URLs(ctx context.Context) ([]string, error) {
	urls, err := ReadURLs(s.reader)
	if err != nil {
		return nil, &AdapterError{Source: s.name, Message: "failed to read URLs", Err: err}
	}
	return urls, nil
}

// NormalizeURL trims s and prefixes https:// when it has no http(s) scheme.
// Returns false for empty input.
func NormalizeURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}
	return s, true
}

// ReadURLs reads one URL per line, skipping blank lines and # comments.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if u, ok := NormalizeURL(line); ok {
			urls = append(urls, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// AdapterError represents an input-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
