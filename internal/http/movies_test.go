package httpserver

import "testing"

func TestMovieUpsertValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       movieUpsertRequest
		wantField string
	}{
		{"valid", movieUpsertRequest{Title: "Heat", Genre: "Crime", DurationMinutes: 170}, ""},
		{"missing title", movieUpsertRequest{Genre: "Crime", DurationMinutes: 170}, "title"},
		{"blank title", movieUpsertRequest{Title: "   ", Genre: "Crime", DurationMinutes: 170}, "title"},
		{"missing genre", movieUpsertRequest{Title: "Heat", DurationMinutes: 170}, "genre"},
		{"zero duration", movieUpsertRequest{Title: "Heat", Genre: "Crime"}, "durationMinutes"},
		{"negative duration", movieUpsertRequest{Title: "Heat", Genre: "Crime", DurationMinutes: -5}, "durationMinutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := tt.req.validate()
			if tt.wantField == "" {
				if details != nil {
					t.Fatalf("validate() = %v, want nil", details)
				}
				return
			}
			if _, ok := details[tt.wantField]; !ok {
				t.Fatalf("validate() = %v, want failure on %q", details, tt.wantField)
			}
		})
	}
}
