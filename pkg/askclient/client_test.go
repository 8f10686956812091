package askclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestAskParsesAnswer(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "I work with Go & Angular."}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/"})
	answer, err := c.Ask(context.Background(), "what's your stack? & more")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "I work with Go & Angular." {
		t.Errorf("answer = %q", answer)
	}
	if gotPath != "/ask" {
		t.Errorf("path = %q, want /ask", gotPath)
	}
	if gotQuery != "what's your stack? & more" {
		t.Errorf("q = %q, question not round-tripped through encoding", gotQuery)
	}
}

func TestAskMissingAnswer(t *testing.T) {
	bodies := []string{`{}`, `{"answer": null}`, `{"answer": 42}`, `{"answer": "  "}`, `{"other": "x"}`}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			answer, err := New(Config{BaseURL: srv.URL}).Ask(context.Background(), "q")
			if err != nil {
				t.Fatalf("missing answer should not be an error: %v", err)
			}
			if answer != "" {
				t.Errorf("answer = %q, want empty", answer)
			}
		})
	}
}

func TestAskErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"answer":"x"}`, ErrStatus},
		{"not found", http.StatusNotFound, "nope", ErrStatus},
		{"html body", http.StatusOK, "<html>down</html>", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(Config{BaseURL: srv.URL}).Ask(context.Background(), "q")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAskTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := New(Config{BaseURL: url}).Ask(context.Background(), "q"); err == nil {
		t.Error("expected an error from a closed server")
	}
}

func TestAskTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	if _, err := c.Ask(context.Background(), "q"); err == nil {
		t.Error("expected timeout error")
	}
}

func TestAskCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("q") == "unknown" {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"answer":"cached"}`))
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClock()
	c := New(Config{BaseURL: srv.URL, CacheSize: 2, CacheTTL: time.Minute, Clock: clock})
	ctx := context.Background()

	for _, q := range []string{"Your Stack?", "your   stack?"} {
		if a, err := c.Ask(ctx, q); err != nil || a != "cached" {
			t.Fatalf("Ask(%q) = %q, %v", q, a, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one upstream call for equivalent questions, got %d", n)
	}

	c.Ask(ctx, "unknown")
	c.Ask(ctx, "unknown")
	if n := calls.Load(); n != 3 {
		t.Errorf("empty answers must not be cached, upstream calls = %d", n)
	}

	clock.Advance(time.Minute)
	c.Ask(ctx, "your stack?")
	if n := calls.Load(); n != 4 {
		t.Errorf("expired entry should refetch, upstream calls = %d", n)
	}

	st := c.CacheStats()
	if st.Hits != 1 || st.Entries != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newAnswerCache(2, 0, clockwork.NewFakeClock())
	cache.put("a", "1")
	cache.put("b", "2")
	cache.get("a")
	cache.put("c", "3")

	if _, ok := cache.get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := cache.get("a"); !ok || v != "1" {
		t.Errorf("a = %q, %v", v, ok)
	}
	if st := cache.stats(); st.Evictions != 1 || st.Entries != 2 {
		t.Errorf("stats = %+v", st)
	}
}
