package validate

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCoordinates(t *testing.T) {
	valid := map[string]interface{}{"lat": 40.0, "lon": -74.0}
	if terr := Coordinates(valid); terr != nil {
		t.Fatalf("expected valid coordinates, got %v", terr)
	}

	cases := []map[string]interface{}{
		{},
		{"lat": 40.0},
		{"lon": -74.0},
		{"lat": nil, "lon": -74.0},
		{"lat": 40.0, "lon": nil},
	}
	for i, args := range cases {
		terr := Coordinates(args)
		if terr == nil {
			t.Fatalf("case %d: expected error for %v", i, args)
		}
		if terr.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d", i, terr.Code)
		}
		if terr.Message != "Latitude and longitude are required." {
			t.Fatalf("case %d: unexpected message %q", i, terr.Message)
		}
	}

	// Out-of-range values are accepted as-is; the upstream rejects them.
	if terr := Coordinates(map[string]interface{}{"lat": 999.0, "lon": -999.0}); terr != nil {
		t.Fatalf("range checking is not this layer's job: %v", terr)
	}
}

func TestDateValid(t *testing.T) {
	for _, text := range []string{"2024-01-01", "2024-02-29", "2024-12-31", "1999-06-15"} {
		if terr := Date(text); terr != nil {
			t.Errorf("expected %q valid, got %v", text, terr)
		}
	}
}

func TestDateInvalid(t *testing.T) {
	cases := []string{
		"2024-13-01",
		"2024-02-30",
		"2023-02-29",
		"24-01-01",
		"2024/01/01",
		"2024-1-01",
		"2024-01-1",
		"2024-01-01T00:00:00",
		"2024-01-01 ",
		"",
		"yesterday",
	}
	for _, text := range cases {
		terr := Date(text)
		if terr == nil {
			t.Errorf("expected %q invalid", text)
			continue
		}
		if terr.Code != http.StatusBadRequest {
			t.Errorf("%q: expected 400, got %d", text, terr.Code)
		}
		want := fmt.Sprintf("Invalid date: %s. Use YYYY-MM-DD.", text)
		if terr.Message != want {
			t.Errorf("%q: unexpected message %q", text, terr.Message)
		}
	}
}

func TestDayCount(t *testing.T) {
	for days := 1; days <= 7; days++ {
		if terr := DayCount(days); terr != nil {
			t.Errorf("expected %d valid, got %v", days, terr)
		}
	}
	for _, days := range []int{-1, 0, 8, 100} {
		terr := DayCount(days)
		if terr == nil {
			t.Errorf("expected %d invalid", days)
			continue
		}
		if terr.Code != http.StatusBadRequest || terr.Message != "'days' must be between 1 and 7." {
			t.Errorf("%d: unexpected error %v", days, terr)
		}
	}
}

func TestNonEmpty(t *testing.T) {
	if terr := NonEmpty("abc123", "Station ID is required."); terr != nil {
		t.Fatalf("expected valid, got %v", terr)
	}
	terr := NonEmpty("", "Station ID is required.")
	if terr == nil {
		t.Fatal("expected error for empty string")
	}
	if terr.Code != http.StatusBadRequest || terr.Message != "Station ID is required." {
		t.Fatalf("unexpected error %v", terr)
	}
}
