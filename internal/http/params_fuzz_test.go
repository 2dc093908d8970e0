package httpserver

import (
	"net/url"
	"testing"
)

func FuzzPageParams(f *testing.F) {
	seeds := []string{
		"skip=0&take=50",
		"skip=abc",
		"take=500",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		skip, take, err := pageParams(values)
		if err != nil {
			return
		}
		if skip < 0 || take < 0 {
			t.Fatalf("negative page values from %q: (%d, %d)", raw, skip, take)
		}
	})
}
