package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchParsesPages(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		wantTitle   string // "" means the page URL itself
		wantFavicon string // relative to the server URL; "" means /favicon.ico
	}{
		{
			name:        "title and icon link",
			html:        `<html><head><title>Example</title><link rel="icon" href="/f.ico"></head></html>`,
			wantTitle:   "Example",
			wantFavicon: "/f.ico",
		},
		{
			name:        "shortcut icon",
			html:        `<html><head><title>Legacy</title><link rel="shortcut icon" href="/old.ico"></head></html>`,
			wantTitle:   "Legacy",
			wantFavicon: "/old.ico",
		},
		{
			name:        "icon preferred over shortcut icon",
			html:        `<html><head><title>Both</title><link rel="shortcut icon" href="/old.ico"><link rel="icon" href="/new.ico"></head></html>`,
			wantTitle:   "Both",
			wantFavicon: "/new.ico",
		},
		{
			name:        "no icon links fall back to origin favicon",
			html:        `<html><head><title>Plain</title></head></html>`,
			wantTitle:   "Plain",
			wantFavicon: "/favicon.ico",
		},
		{
			name:        "relative href resolved against page URL",
			html:        `<html><head><title>Rel</title><link rel="icon" href="assets/fav.png"></head></html>`,
			wantTitle:   "Rel",
			wantFavicon: "/assets/fav.png",
		},
		{
			name:        "whitespace title trimmed",
			html:        "<html><head><title>\n  Padded  \n</title></head></html>",
			wantTitle:   "Padded",
			wantFavicon: "/favicon.ico",
		},
		{
			name:        "empty title falls back to URL",
			html:        `<html><head><title>   </title></head></html>`,
			wantTitle:   "",
			wantFavicon: "/favicon.ico",
		},
		{
			name:        "missing title falls back to URL",
			html:        `<html><body><p>no head</p></body></html>`,
			wantTitle:   "",
			wantFavicon: "/favicon.ico",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.html)
			})

			f := New(Config{UserAgent: "Mozilla/5.0 (compatible; Waygate/1.0)"})
			meta := f.Fetch(context.Background(), srv.URL)

			wantTitle := tt.wantTitle
			if wantTitle == "" {
				wantTitle = srv.URL
			}
			if meta.Title != wantTitle {
				t.Errorf("Title = %q, want %q", meta.Title, wantTitle)
			}

			wantFavicon := srv.URL + tt.wantFavicon
			if meta.Favicon != wantFavicon {
				t.Errorf("Favicon = %q, want %q", meta.Favicon, wantFavicon)
			}
		})
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		fmt.Fprint(w, `<html><head><title>UA</title></head></html>`)
	})

	f := New(Config{UserAgent: "Mozilla/5.0 (compatible; Waygate/1.0)"})
	f.Fetch(context.Background(), srv.URL)

	if gotUA != "Mozilla/5.0 (compatible; Waygate/1.0)" {
		t.Errorf("User-Agent = %q, want the identifying header", gotUA)
	}
}

func TestFetchFailsSoft(t *testing.T) {
	tests := []struct {
		name   string
		target func(t *testing.T) string
	}{
		{
			name: "non-2xx status",
			target: func(t *testing.T) string {
				srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				})
				return srv.URL
			},
		},
		{
			name: "connection refused",
			target: func(t *testing.T) string {
				srv := httptest.NewServer(http.NotFoundHandler())
				srv.Close() // nothing listens here anymore
				return srv.URL
			},
		},
		{
			name: "unparsable URL",
			target: func(t *testing.T) string {
				return "http://bad url with spaces"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target(t)

			f := New(Config{})
			meta := f.Fetch(context.Background(), target)

			if meta.Title != target {
				t.Errorf("Title = %q, want fallback %q", meta.Title, target)
			}
			if meta.Favicon != "" {
				t.Errorf("Favicon = %q, want absent", meta.Favicon)
			}
		})
	}
}

func TestFetchTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	f := New(Config{Timeout: 50 * time.Millisecond})

	start := time.Now()
	meta := f.Fetch(context.Background(), srv.URL)
	elapsed := time.Since(start)

	if meta.Title != srv.URL || meta.Favicon != "" {
		t.Errorf("Fetch() = %+v, want fallback metadata", meta)
	}
	if elapsed > time.Second {
		t.Errorf("Fetch() took %v, want it bounded by the configured timeout", elapsed)
	}
}

func TestNewDefaultsTimeout(t *testing.T) {
	f := New(Config{})
	if f.client.Timeout != 5*time.Second {
		t.Errorf("default timeout = %v, want 5s", f.client.Timeout)
	}
}
