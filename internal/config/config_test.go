package config

import (
	"testing"
	"time"

	"github.com/i474232898/onecall-weather/internal/weather"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("WEATHER_LAT", "51.5085")
	t.Setenv("WEATHER_LON", "-0.1257")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenWeatherHost != "api.openweathermap.org" {
		t.Errorf("unexpected host %q", cfg.OpenWeatherHost)
	}
	if !cfg.HasCoordinates || cfg.Location.Lat != 51.5085 || cfg.Location.Lon != -0.1257 {
		t.Errorf("unexpected location %+v", cfg.Location)
	}
	if cfg.Units != weather.UnitsMetric || cfg.Language != "en" {
		t.Errorf("unexpected units/lang %q/%q", cfg.Units, cfg.Language)
	}
	if cfg.DecodeVariant != weather.VariantOneCall || cfg.TrendOrder != weather.TrendOrderDefault {
		t.Errorf("unexpected variant/order %q/%q", cfg.DecodeVariant, cfg.TrendOrder)
	}
	if cfg.MaxReadings != 24 || cfg.FetchInterval != 30*time.Minute || cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestsPerMinute != 10 || cfg.DecodeDiagnostics || cfg.Port != "8080" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("WEATHER_UNITS", "I")
	t.Setenv("WEATHER_LANGUAGE", "fr")
	t.Setenv("WEATHER_DECODE_VARIANT", "split")
	t.Setenv("PRESSURE_TREND_ORDER", "far-near")
	t.Setenv("MAX_READINGS", "12")
	t.Setenv("FETCH_INTERVAL", "5m")
	t.Setenv("DECODE_DIAGNOSTICS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Units != weather.UnitsImperial || cfg.Language != "fr" {
		t.Errorf("unexpected units/lang %q/%q", cfg.Units, cfg.Language)
	}
	if cfg.DecodeVariant != weather.VariantSplit || cfg.TrendOrder != weather.TrendFarMinusNear {
		t.Errorf("unexpected variant/order %q/%q", cfg.DecodeVariant, cfg.TrendOrder)
	}
	if cfg.MaxReadings != 12 || cfg.FetchInterval != 5*time.Minute || !cfg.DecodeDiagnostics {
		t.Errorf("unexpected overrides %+v", cfg)
	}
}

func TestLoad_CityWithoutCoordinates(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("WEATHER_LOCATION_CITY", "London")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "GB")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HasCoordinates || cfg.Location.City != "London" {
		t.Errorf("unexpected location %+v", cfg.Location)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing api key", env: map[string]string{"OPENWEATHER_API_KEY": ""}},
		{name: "bad units", env: map[string]string{"WEATHER_UNITS": "kelvin"}},
		{name: "latitude out of range", env: map[string]string{"WEATHER_LAT": "95"}},
		{name: "only one coordinate", env: map[string]string{"WEATHER_LON": ""}},
		{name: "too few readings", env: map[string]string{"MAX_READINGS": "2"}},
		{name: "too many readings", env: map[string]string{"MAX_READINGS": "49"}},
		{name: "unknown variant", env: map[string]string{"WEATHER_DECODE_VARIANT": "weekly"}},
		{name: "unknown trend order", env: map[string]string{"PRESSURE_TREND_ORDER": "sideways"}},
		{name: "bad interval", env: map[string]string{"FETCH_INTERVAL": "often"}},
		{name: "no location", env: map[string]string{"WEATHER_LAT": "", "WEATHER_LON": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestParseUnits(t *testing.T) {
	tests := map[string]weather.Units{
		"M":         weather.UnitsMetric,
		"metric":    weather.UnitsMetric,
		"I":         weather.UnitsImperial,
		" Imperial": weather.UnitsImperial,
	}
	for in, want := range tests {
		got, err := ParseUnits(in)
		if err != nil || got != want {
			t.Errorf("ParseUnits(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseUnits("x"); err == nil {
		t.Error("expected an error for unknown units")
	}
}
