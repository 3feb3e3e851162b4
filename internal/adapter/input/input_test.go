package input

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"example.com", "https://example.com", true},
		{"  example.com/path  ", "https://example.com/path", true},
		{"http://example.com", "http://example.com", true},
		{"https://example.com", "https://example.com", true},
		{"HTTPS://Example.com", "HTTPS://Example.com", true},
		{"ftp://example.com", "https://ftp://example.com", true},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeURL(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadURLs(t *testing.T) {
	input := `
# work
github.com
  https://news.ycombinator.com  

# personal
http://example.com
`
	urls, err := ReadURLs(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://github.com",
		"https://news.ycombinator.com",
		"http://example.com",
	}, urls)
}

func TestReadURLs_Empty(t *testing.T) {
	urls, err := ReadURLs(strings.NewReader("\n# nothing\n"))
	require.NoError(t, err)
	assert.Empty(t, urls)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestReaderSource(t *testing.T) {
	src := NewReaderSource("file", strings.NewReader("a.example\nb.example\n"))
	assert.Equal(t, "file", src.Name())

	urls, err := src.URLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)

	_, err = NewReaderSource("stdin", failingReader{}).URLs(context.Background())
	require.Error(t, err)
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, "stdin", adapterErr.Source)
	assert.Contains(t, err.Error(), "read failed")
}

func TestNewSource(t *testing.T) {
	assert.Equal(t, "stdin", NewSource([]string{"-"}).Name())
	assert.Equal(t, "args", NewSource([]string{"a.example", "-"}).Name())

	urls, err := NewSource([]string{"a.example", "http://b.example"}).URLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "http://b.example"}, urls)

	_, err = ArgSource{"a.example", " "}.URLs(context.Background())
	assert.Error(t, err)
}

func TestAdapterError(t *testing.T) {
	inner := errors.New("boom")
	err := &AdapterError{Source: "layout", Message: "invalid layout", Err: inner}
	assert.Equal(t, "layout: invalid layout: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	err = &AdapterError{Source: "args", Message: "empty URL"}
	assert.Equal(t, "args: empty URL", err.Error())
}
