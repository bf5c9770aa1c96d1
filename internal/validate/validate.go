// Package validate holds the argument checks that run before any upstream
// call. All checks are synchronous and side-effect free; a failure means
// no network round trip happens at all.
package validate

import (
	"net/http"
	"time"

	"github.com/weathermcp/weathermcp/internal/types"
)

const dateLayout = "2006-01-02"

// Coordinates rejects calls where either coordinate is absent. The values
// themselves are not range-checked; WeatherXM rejects out-of-range
// coordinates on its side.
func Coordinates(args map[string]interface{}) *types.ToolError {
	lat, latOK := args["lat"]
	lon, lonOK := args["lon"]
	if !latOK || !lonOK || lat == nil || lon == nil {
		return types.NewToolError(http.StatusBadRequest, "Latitude and longitude are required.")
	}
	return nil
}

// Date requires an exact YYYY-MM-DD calendar date: four-digit year,
// zero-padded month and day, no time component, and the day must exist in
// that month and year.
func Date(text string) *types.ToolError {
	parsed, err := time.Parse(dateLayout, text)
	if err != nil || parsed.Format(dateLayout) != text {
		return types.Errorf(http.StatusBadRequest, "Invalid date: %s. Use YYYY-MM-DD.", text)
	}
	return nil
}

// DayCount bounds the forecast horizon to WeatherXM's supported range.
func DayCount(days int) *types.ToolError {
	if days < 1 || days > 7 {
		return types.NewToolError(http.StatusBadRequest, "'days' must be between 1 and 7.")
	}
	return nil
}

// NonEmpty rejects absent or empty string arguments with the supplied
// message.
func NonEmpty(text, message string) *types.ToolError {
	if text == "" {
		return types.NewToolError(http.StatusBadRequest, message)
	}
	return nil
}
