// Package tools declares the WeatherXM tool surface as data: one table
// entry per tool with its input schema, upstream endpoint path, and an
// argument-to-query builder. A single shared handler validates, fetches,
// and maps errors, so the nine tools cannot drift apart.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/weathermcp/weathermcp/internal/telemetry"
	"github.com/weathermcp/weathermcp/internal/types"
	"github.com/weathermcp/weathermcp/internal/validate"
	"github.com/weathermcp/weathermcp/internal/weatherxm"
)

// Fetcher is the single upstream operation tools depend on.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
}

var _ Fetcher = (*weatherxm.Client)(nil)

// Definition binds a tool declaration to its upstream endpoint. Params
// validates the call arguments and builds the query string; it runs
// before any network I/O.
type Definition struct {
	Tool     mcp.Tool
	Endpoint string
	Params   func(args map[string]interface{}) (url.Values, *types.ToolError)
}

// Definitions returns the full tool table.
func Definitions() []Definition {
	return []Definition{
		{
			Tool: mcp.NewTool("weather_current",
				mcp.WithDescription("Get current weather for a location using coordinates."),
				mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude coordinate.")),
				mcp.WithNumber("lon", mcp.Required(), mcp.Description("Longitude coordinate.")),
			),
			Endpoint: "weather/current",
			Params:   coordinateParams,
		},
		{
			Tool: mcp.NewTool("weather_forecast",
				mcp.WithDescription("Get weather forecast for a location using coordinates."),
				mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude coordinate.")),
				mcp.WithNumber("lon", mcp.Required(), mcp.Description("Longitude coordinate.")),
				mcp.WithNumber("days", mcp.Description("Number of days for forecast (1-7)."),
					mcp.DefaultNumber(1), mcp.Min(1), mcp.Max(7)),
			),
			Endpoint: "weather/forecast",
			Params:   forecastParams,
		},
		{
			Tool: mcp.NewTool("weather_history",
				mcp.WithDescription("Get historical weather for a location on a given date (YYYY-MM-DD)."),
				mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude coordinate.")),
				mcp.WithNumber("lon", mcp.Required(), mcp.Description("Longitude coordinate.")),
				mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format.")),
			),
			Endpoint: "weather/history",
			Params:   datedCoordinateParams,
		},
		{
			Tool: mcp.NewTool("weather_stations",
				mcp.WithDescription("Get nearby weather stations for a location."),
				mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude coordinate.")),
				mcp.WithNumber("lon", mcp.Required(), mcp.Description("Longitude coordinate.")),
				mcp.WithNumber("radius", mcp.Description("Search radius in kilometers."),
					mcp.DefaultNumber(10.0)),
			),
			Endpoint: "stations/nearby",
			Params:   stationsNearbyParams,
		},
		{
			Tool: mcp.NewTool("weather_station_data",
				mcp.WithDescription("Get weather data from a specific station."),
				mcp.WithString("station_id", mcp.Required(), mcp.Description("Weather station ID.")),
				mcp.WithString("start_date", mcp.Description("Start date in YYYY-MM-DD format (optional).")),
				mcp.WithString("end_date", mcp.Description("End date in YYYY-MM-DD format (optional).")),
			),
			Endpoint: "stations/data",
			Params:   stationDataParams,
		},
		{
			Tool: mcp.NewTool("weather_airquality",
				mcp.WithDescription("Get air quality for a location."),
				mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude coordinate.")),
				mcp.WithNumber("lon", mcp.Required(), mcp.Description("Longitude coordinate.")),
			),
			Endpoint: "weather/air-quality",
			Params:   coordinateParams,
		},
		{
			Tool: mcp.NewTool("weather_astronomy",
				mcp.WithDescription("Get astronomy data (sunrise, sunset, moon) for a date (YYYY-MM-DD)."),
				mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude coordinate.")),
				mcp.WithNumber("lon", mcp.Required(), mcp.Description("Longitude coordinate.")),
				mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format.")),
			),
			Endpoint: "weather/astronomy",
			Params:   datedCoordinateParams,
		},
		{
			Tool: mcp.NewTool("weather_location_search",
				mcp.WithDescription("Search for locations matching a query."),
				mcp.WithString("query", mcp.Required(), mcp.Description("Location query (city name, address, etc.).")),
			),
			Endpoint: "locations/search",
			Params:   locationSearchParams,
		},
		{
			Tool: mcp.NewTool("weather_timezone",
				mcp.WithDescription("Get timezone info for a location."),
				mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude coordinate.")),
				mcp.WithNumber("lon", mcp.Required(), mcp.Description("Longitude coordinate.")),
			),
			Endpoint: "weather/timezone",
			Params:   coordinateParams,
		},
	}
}

// Register wires every definition onto the MCP server with the shared
// handler around the WeatherXM client.
func Register(s *server.MCPServer, client Fetcher) {
	for _, def := range Definitions() {
		s.AddTool(def.Tool, Handler(def, client))
	}
}

// Handler builds the tool handler for one definition: validate, fetch,
// normalize. Failures come back as MCP error results carrying the
// ToolError text; they never surface as protocol-level errors.
func Handler(def Definition, client Fetcher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params, terr := def.Params(req.GetArguments())
		if terr != nil {
			telemetry.IncToolCall(def.Tool.Name, "invalid")
			return mcp.NewToolResultError(terr.Error()), nil
		}

		raw, err := client.Fetch(ctx, def.Endpoint, params)
		if err != nil {
			telemetry.IncToolCall(def.Tool.Name, "error")
			var te *types.ToolError
			if errors.As(err, &te) {
				return mcp.NewToolResultError(te.Error()), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		telemetry.IncToolCall(def.Tool.Name, "ok")
		return mcp.NewToolResultText(string(raw)), nil
	}
}

func coordinateParams(args map[string]interface{}) (url.Values, *types.ToolError) {
	if terr := validate.Coordinates(args); terr != nil {
		return nil, terr
	}
	params := url.Values{}
	params.Set("lat", numberArg(args, "lat"))
	params.Set("lon", numberArg(args, "lon"))
	return params, nil
}

func forecastParams(args map[string]interface{}) (url.Values, *types.ToolError) {
	params, terr := coordinateParams(args)
	if terr != nil {
		return nil, terr
	}
	days := intArg(args, "days", 1)
	if terr := validate.DayCount(days); terr != nil {
		return nil, terr
	}
	params.Set("days", strconv.Itoa(days))
	return params, nil
}

func datedCoordinateParams(args map[string]interface{}) (url.Values, *types.ToolError) {
	params, terr := coordinateParams(args)
	if terr != nil {
		return nil, terr
	}
	date := stringArg(args, "date")
	if terr := validate.Date(date); terr != nil {
		return nil, terr
	}
	params.Set("date", date)
	return params, nil
}

func stationsNearbyParams(args map[string]interface{}) (url.Values, *types.ToolError) {
	params, terr := coordinateParams(args)
	if terr != nil {
		return nil, terr
	}
	radius := "10"
	if _, ok := args["radius"]; ok {
		radius = numberArg(args, "radius")
	}
	params.Set("radius", radius)
	return params, nil
}

func stationDataParams(args map[string]interface{}) (url.Values, *types.ToolError) {
	stationID := stringArg(args, "station_id")
	if terr := validate.NonEmpty(stationID, "Station ID is required."); terr != nil {
		return nil, terr
	}

	params := url.Values{}
	params.Set("station_id", stationID)
	for _, key := range []string{"start_date", "end_date"} {
		if value := stringArg(args, key); value != "" {
			if terr := validate.Date(value); terr != nil {
				return nil, terr
			}
			params.Set(key, value)
		}
	}
	return params, nil
}

func locationSearchParams(args map[string]interface{}) (url.Values, *types.ToolError) {
	query := stringArg(args, "query")
	if terr := validate.NonEmpty(query, "Location query is required."); terr != nil {
		return nil, terr
	}
	params := url.Values{}
	params.Set("q", query)
	return params, nil
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// numberArg renders a numeric argument for the query string. JSON decoding
// hands numbers over as float64, but test callers may pass native ints.
func numberArg(args map[string]interface{}, key string) string {
	switch v := args[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		return fallback
	default:
		return fallback
	}
}
