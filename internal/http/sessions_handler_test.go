package httpserver

import (
	"fmt"
	"net/http"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	srv := buildTestServer(t)

	movie := createMovie(t, srv, "Movie A")
	cinema := createCinema(t, srv, "Cineplex")

	payload := fmt.Sprintf(`{"movieId":%d,"cinemaId":%d}`, movie.ID, cinema.ID)
	rec := doRequest(t, srv, http.MethodPost, "/sessions", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", rec.Code, rec.Body.String())
	}
	path := fmt.Sprintf("/sessions/%d/%d", movie.ID, cinema.ID)
	if got := rec.Header().Get("Location"); got != path {
		t.Fatalf("Location = %q, want %q", got, path)
	}

	got := decodeBody[sessionResponse](t, doRequest(t, srv, http.MethodGet, path, ""))
	if got.MovieID != movie.ID || got.CinemaID != cinema.ID {
		t.Fatalf("GET mismatch: %+v", got)
	}

	all := decodeBody[[]sessionResponse](t, doRequest(t, srv, http.MethodGet, "/sessions", ""))
	if len(all) != 1 {
		t.Fatalf("list length = %d, want 1", len(all))
	}

	rec = doRequest(t, srv, http.MethodDelete, path, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}
	if rec = doRequest(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want 404", rec.Code)
	}
}

func TestSessionCreateConflicts(t *testing.T) {
	srv := buildTestServer(t)

	movie := createMovie(t, srv, "Movie A")
	cinema := createCinema(t, srv, "Cineplex")

	rec := doRequest(t, srv, http.MethodPost, "/sessions", fmt.Sprintf(`{"movieId":99999,"cinemaId":%d}`, cinema.ID))
	if rec.Code != http.StatusConflict {
		t.Fatalf("POST missing movie status = %d, want 409", rec.Code)
	}

	payload := fmt.Sprintf(`{"movieId":%d,"cinemaId":%d}`, movie.ID, cinema.ID)
	if rec = doRequest(t, srv, http.MethodPost, "/sessions", payload); rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d", rec.Code)
	}
	if rec = doRequest(t, srv, http.MethodPost, "/sessions", payload); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate POST status = %d, want 409", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/sessions", `{"movieId":0,"cinemaId":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST zero ids status = %d, want 400", rec.Code)
	}

	// Screened movies and cinemas are protected from deletion.
	if rec = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/movies/%d", movie.ID), ""); rec.Code != http.StatusConflict {
		t.Fatalf("DELETE screened movie status = %d, want 409", rec.Code)
	}
	if rec = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/cinemas/%d", cinema.ID), ""); rec.Code != http.StatusConflict {
		t.Fatalf("DELETE screening cinema status = %d, want 409", rec.Code)
	}
}

func TestSessionGetUnknownPair(t *testing.T) {
	srv := buildTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/sessions/1/2", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET unknown pair status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/sessions/abc/2", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("GET malformed id status = %d, want 400", rec.Code)
	}
}
