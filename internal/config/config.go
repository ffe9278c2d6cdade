package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/onecall-weather/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey string `validate:"required"`
	OpenWeatherHost   string `validate:"required"`

	// Location to track. Lat/Lon win over City/Country when both are set.
	Location       weather.Location
	HasCoordinates bool
	GeocoderAPIKey string

	Units    weather.Units `validate:"oneof=metric imperial"`
	Language string        `validate:"required"`

	// DecodeVariant is "onecall" (one document per cycle) or "split" (current + forecast).
	DecodeVariant string             `validate:"oneof=onecall split"`
	TrendOrder    weather.TrendOrder `validate:"omitempty,oneof=near-far far-near"`
	MaxReadings   int                `validate:"gte=3,lte=48"`

	FetchInterval     time.Duration `validate:"gt=0"`
	HTTPTimeout       time.Duration `validate:"gt=0"`
	RequestsPerMinute int           `validate:"gte=0"` // 0 = unlimited
	DecodeDiagnostics bool

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherHost = getenvDefault("OPENWEATHER_HOST", "api.openweathermap.org")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	loc, hasCoords, err := loadLocation()
	if err != nil {
		return nil, err
	}
	cfg.Location = loc
	cfg.HasCoordinates = hasCoords

	units, err := ParseUnits(getenvDefault("WEATHER_UNITS", "M"))
	if err != nil {
		return nil, err
	}
	cfg.Units = units
	cfg.Language = getenvDefault("WEATHER_LANGUAGE", "en")

	cfg.DecodeVariant = strings.ToLower(getenvDefault("WEATHER_DECODE_VARIANT", weather.VariantOneCall))
	cfg.TrendOrder = weather.TrendOrder(strings.ToLower(os.Getenv("PRESSURE_TREND_ORDER")))
	cfg.MaxReadings = getenvInt("MAX_READINGS", 24)

	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.RequestsPerMinute = getenvInt("REQUESTS_PER_MINUTE", 10)
	cfg.DecodeDiagnostics = getenvBool("DECODE_DIAGNOSTICS", false)
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.HasCoordinates && cfg.Location.City == "" {
		return nil, fmt.Errorf("either WEATHER_LAT/WEATHER_LON or WEATHER_LOCATION_CITY must be set")
	}

	return cfg, nil
}

// ParseUnits accepts the short M/I flags as well as metric/imperial.
func ParseUnits(s string) (weather.Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "metric":
		return weather.UnitsMetric, nil
	case "i", "imperial":
		return weather.UnitsImperial, nil
	default:
		return "", fmt.Errorf("invalid WEATHER_UNITS %q", s)
	}
}

type coordinates struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

func loadLocation() (weather.Location, bool, error) {
	loc := weather.Location{
		City:    strings.TrimSpace(os.Getenv("WEATHER_LOCATION_CITY")),
		Country: strings.TrimSpace(os.Getenv("WEATHER_LOCATION_COUNTRY")),
	}

	latStr := strings.TrimSpace(os.Getenv("WEATHER_LAT"))
	lonStr := strings.TrimSpace(os.Getenv("WEATHER_LON"))
	if latStr == "" && lonStr == "" {
		return loc, false, nil
	}
	if latStr == "" || lonStr == "" {
		return loc, false, fmt.Errorf("WEATHER_LAT and WEATHER_LON must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return loc, false, fmt.Errorf("invalid WEATHER_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return loc, false, fmt.Errorf("invalid WEATHER_LON: %w", err)
	}
	if err := validate.Struct(coordinates{Lat: lat, Lon: lon}); err != nil {
		return loc, false, fmt.Errorf("invalid coordinates: %w", err)
	}

	loc.Lat = lat
	loc.Lon = lon
	return loc, true, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
