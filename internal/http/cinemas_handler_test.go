package httpserver

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCinemaLifecycleWithOwnedAddress(t *testing.T) {
	srv := buildTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/cinemas", `{"name":"Cineplex","address":{"street":"Main St","number":10}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[cinemaResponse](t, rec)
	if created.ID == 0 || created.Address.ID == 0 {
		t.Fatalf("expected assigned ids: %+v", created)
	}
	path := fmt.Sprintf("/cinemas/%d", created.ID)
	if got := rec.Header().Get("Location"); got != path {
		t.Fatalf("Location = %q, want %q", got, path)
	}

	got := decodeBody[cinemaResponse](t, doRequest(t, srv, http.MethodGet, path, ""))
	if got.Name != "Cineplex" || got.Address.Street != "Main St" || got.Address.Number != 10 {
		t.Fatalf("GET mismatch: %+v", got)
	}

	rec = doRequest(t, srv, http.MethodPut, path, `{"name":"Grand Cineplex"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d", rec.Code)
	}
	got = decodeBody[cinemaResponse](t, doRequest(t, srv, http.MethodGet, path, ""))
	if got.Name != "Grand Cineplex" {
		t.Fatalf("PUT did not replace name: %+v", got)
	}

	rec = doRequest(t, srv, http.MethodPatch, path, `[{"op":"replace","path":"/name","value":"Cineplex"}]`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PATCH status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodDelete, path, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}
	if rec = doRequest(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want 404", rec.Code)
	}
	// The owned address goes away with the cinema.
	addressPath := fmt.Sprintf("/addresses/%d", created.Address.ID)
	if rec = doRequest(t, srv, http.MethodGet, addressPath, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET owned address after cinema delete status = %d, want 404", rec.Code)
	}
}

func TestCinemaValidation(t *testing.T) {
	srv := buildTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/cinemas", `{"name":"Cineplex"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST without address status = %d, want 400", rec.Code)
	}
	resp := decodeBody[errorResponse](t, rec)
	if resp.Code != "VALIDATION_ERROR" {
		t.Fatalf("error code = %q, want VALIDATION_ERROR", resp.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/cinemas", `{"name":"","address":{"street":"Main St","number":10}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST empty name status = %d, want 400", rec.Code)
	}
}

func TestCinemaNotFound(t *testing.T) {
	srv := buildTestServer(t)

	cases := []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"X"}`},
		{http.MethodPatch, `[{"op":"replace","path":"/name","value":"X"}]`},
		{http.MethodDelete, ""},
	}
	for _, c := range cases {
		rec := doRequest(t, srv, c.method, "/cinemas/99999", c.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s unknown id status = %d, want 404", c.method, rec.Code)
		}
	}
}

func TestAddressLifecycle(t *testing.T) {
	srv := buildTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/addresses", `{"street":"Elm St","number":7}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[addressResponse](t, rec)
	path := fmt.Sprintf("/addresses/%d", created.ID)

	got := decodeBody[addressResponse](t, doRequest(t, srv, http.MethodGet, path, ""))
	if got.Street != "Elm St" || got.Number != 7 {
		t.Fatalf("GET mismatch: %+v", got)
	}

	rec = doRequest(t, srv, http.MethodPut, path, `{"street":"Oak Ave","number":12}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPatch, path, `[{"op":"replace","path":"/number","value":13}]`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PATCH status = %d, body %s", rec.Code, rec.Body.String())
	}
	got = decodeBody[addressResponse](t, doRequest(t, srv, http.MethodGet, path, ""))
	if got.Street != "Oak Ave" || got.Number != 13 {
		t.Fatalf("patched address mismatch: %+v", got)
	}

	rec = doRequest(t, srv, http.MethodPatch, path, `[{"op":"replace","path":"/street","value":""}]`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("PATCH clearing street status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodDelete, path, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}
	if rec = doRequest(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want 404", rec.Code)
	}
}

func TestAddressDeleteStillOwnedConflict(t *testing.T) {
	srv := buildTestServer(t)
	cinema := createCinema(t, srv, "Cineplex")

	rec := doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/addresses/%d", cinema.Address.ID), "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("DELETE owned address status = %d, want 409", rec.Code)
	}
	resp := decodeBody[errorResponse](t, rec)
	if resp.Code != "CONFLICT" {
		t.Fatalf("error code = %q, want CONFLICT", resp.Code)
	}
}
