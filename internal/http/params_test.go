package httpserver

import (
	"net/url"
	"testing"
)

func TestPageParams(t *testing.T) {
	values, _ := url.ParseQuery("skip=10&take=25")

	skip, take, err := pageParams(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skip != 10 {
		t.Fatalf("skip = %d, want 10", skip)
	}
	if take != 25 {
		t.Fatalf("take = %d, want 25", take)
	}
}

func TestPageParams_Defaults(t *testing.T) {
	values, _ := url.ParseQuery("")

	skip, take, err := pageParams(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skip != 0 || take != 0 {
		t.Fatalf("defaults = (%d, %d), want (0, 0)", skip, take)
	}
}

func TestPageParams_Invalid(t *testing.T) {
	cases := []string{"skip=abc", "take=abc", "skip=-1", "take=0", "take=-5"}
	for _, raw := range cases {
		values, _ := url.ParseQuery(raw)
		if _, _, err := pageParams(values); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
