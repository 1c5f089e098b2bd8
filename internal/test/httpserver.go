package test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// NewHttpServerWithHandlers creates a new httptest.Server that answers the n-th request
// with the n-th handler. The test fails if requests and handlers do not match up.
func NewHttpServerWithHandlers(t *testing.T, handlers ...http.HandlerFunc) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	idx := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		if len(handlers) < idx+1 {
			mu.Unlock()
			t.Errorf("unexpected request, add missing handler func: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
			return
		}
		h := handlers[idx]
		idx++
		mu.Unlock()
		h(w, r)
	}))

	t.Cleanup(func() {
		srv.Close()
		mu.Lock()
		defer mu.Unlock()
		if diff := len(handlers) - idx; diff != 0 {
			t.Errorf("too many configured handlers, remove %d handler(s)", diff)
		}
	})
	return srv
}
