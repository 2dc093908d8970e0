package patch

import (
	"errors"
	"testing"
)

type movieUpdate struct {
	Title           string `json:"title"`
	Genre           string `json:"genre"`
	DurationMinutes int    `json:"durationMinutes"`
}

func TestApplyReplaceSingleField(t *testing.T) {
	doc := movieUpdate{Title: "Heat", Genre: "Crime", DurationMinutes: 170}
	ops := []byte(`[{"op":"replace","path":"/genre","value":"Thriller"}]`)

	var out movieUpdate
	if err := Apply(ops, doc, &out); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Genre != "Thriller" {
		t.Fatalf("Genre = %q, want Thriller", out.Genre)
	}
	if out.Title != "Heat" || out.DurationMinutes != 170 {
		t.Fatalf("untouched fields changed: %+v", out)
	}
}

func TestApplyMalformedDocument(t *testing.T) {
	doc := movieUpdate{Title: "Heat"}
	var out movieUpdate
	err := Apply([]byte(`{"op":"replace"}`), doc, &out)
	if !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("err = %v, want ErrInvalidPatch", err)
	}
}

func TestApplyUnknownPath(t *testing.T) {
	doc := movieUpdate{Title: "Heat", Genre: "Crime", DurationMinutes: 170}
	ops := []byte(`[{"op":"add","path":"/director","value":"Mann"}]`)

	var out movieUpdate
	err := Apply(ops, doc, &out)
	if !errors.Is(err, ErrInvalidResult) {
		t.Fatalf("err = %v, want ErrInvalidResult", err)
	}
}

func TestApplyRemoveMissingMember(t *testing.T) {
	doc := movieUpdate{Title: "Heat", Genre: "Crime", DurationMinutes: 170}
	ops := []byte(`[{"op":"remove","path":"/rating"}]`)

	var out movieUpdate
	err := Apply(ops, doc, &out)
	if !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("err = %v, want ErrInvalidPatch", err)
	}
}
