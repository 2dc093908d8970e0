package httpserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func BenchmarkHandleListMovies(b *testing.B) {
	srv := buildTestServer(b)

	for i := 0; i < 20; i++ {
		createMovie(b, srv, fmt.Sprintf("Movie %02d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/movies?take=10", nil)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
