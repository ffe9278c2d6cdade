package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/onecall-weather/internal/weather"
	"github.com/sony/gobreaker"
)

const oneCallPath = "/data/3.0/onecall"

// OneCallConfig describes the request the fetcher issues.
type OneCallConfig struct {
	// Host is a bare host name (https is assumed) or a full base URL.
	Host     string
	APIKey   string
	Location weather.Location
	Units    weather.Units
	Language string
}

// OneCallFetcher implements weather.Fetcher for the OpenWeatherMap One Call API.
type OneCallFetcher struct {
	name    string
	cfg     OneCallConfig
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Fetcher = (*OneCallFetcher)(nil)

func NewOneCallFetcher(httpCfg HTTPClientConfig, cfg OneCallConfig) *OneCallFetcher {
	return &OneCallFetcher{
		name:    "openweathermap-onecall",
		cfg:     cfg,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openweather-onecall"),
	}
}

func (p *OneCallFetcher) Name() string {
	return p.name
}

// RequestURL builds the full request URL including the API key.
func (p *OneCallFetcher) RequestURL() string {
	units := string(weather.UnitsMetric)
	if p.cfg.Units.Imperial() {
		units = string(weather.UnitsImperial)
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(p.cfg.Location.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(p.cfg.Location.Lon, 'f', -1, 64))
	values.Set("appid", p.cfg.APIKey)
	values.Set("mode", "json")
	values.Set("units", units)
	values.Set("lang", p.cfg.Language)

	return fmt.Sprintf("%s%s?%s", baseURL(p.cfg.Host), oneCallPath, values.Encode())
}

func (p *OneCallFetcher) Fetch(ctx context.Context, handle func(body io.Reader) error) error {
	if p.cfg.APIKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, p.RequestURL(), nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("%s request: %w", p.name, err)
	}
	defer resp.Body.Close()

	if err := handle(resp.Body); err != nil {
		return fmt.Errorf("%s response: %w", p.name, err)
	}
	return nil
}

func baseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}
