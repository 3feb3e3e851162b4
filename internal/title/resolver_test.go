package title

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    string
		wantErr error
	}{
		{"simple", "<html><head><title>Example Domain</title></head></html>", "Example Domain", nil},
		{"whitespace collapsed", "<title>\n  Hello\n   World  </title>", "Hello World", nil},
		{"entities decoded", "<title>Tom &amp; Jerry</title>", "Tom & Jerry", nil},
		{"first title wins", "<title>One</title><body><title>Two</title></body>", "One", nil},
		{"no title", "<html><body>nothing</body></html>", "", ErrNoTitle},
		{"empty title", "<title>   </title>", "", ErrNoTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(strings.NewReader(tt.doc))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPResolver_Resolve(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Panelo Test</title></head></html>"))
	}))
	defer srv.Close()

	r := NewHTTPResolver(Options{Timeout: 2 * time.Second})
	title, err := r.Resolve(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Panelo Test", title)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestHTTPResolver_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<title>Not Found</title>", http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewHTTPResolver(Options{})
	_, err := r.Resolve(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPResolver_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r := NewHTTPResolver(Options{Timeout: time.Second})
	_, err := r.Resolve(context.Background(), url)
	assert.Error(t, err)
}

func TestHTTPResolver_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := NewHTTPResolver(Options{})
	_, err := r.Resolve(ctx, srv.URL)
	assert.Error(t, err)
}

func TestHTTPResolver_InvalidURL(t *testing.T) {
	r := NewHTTPResolver(Options{})
	_, err := r.Resolve(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestStatic(t *testing.T) {
	title, err := Static{Title: "Fixed"}.Resolve(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "Fixed", title)

	_, err = Static{}.Resolve(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrNoTitle)

	boom := errors.New("boom")
	_, err = Static{Err: boom}.Resolve(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, boom)
}
