package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/weathervane/internal/errors"
	"github.com/allisson/weathervane/internal/weather/domain"
)

// sourceOpenWeatherMap labels readings fetched from the OpenWeatherMap API.
const sourceOpenWeatherMap = "openweathermap"

// OpenWeatherConfig holds the settings for the OpenWeatherMap client.
type OpenWeatherConfig struct {
	// BaseURL is the API root, for example https://api.openweathermap.org/data/2.5.
	BaseURL string
	// APIKey authenticates requests against the provider.
	APIKey string
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// RequestsPerSec caps outbound calls to respect the provider quota.
	RequestsPerSec float64
	// Burst is the burst size for the rate limiter.
	Burst int
}

// openWeatherProvider implements Provider against the OpenWeatherMap current
// weather API. Requests are throttled by a shared limiter and retried with
// backoff on transient failures.
type openWeatherProvider struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
}

// currentWeatherResponse mirrors the fields of the provider's current weather
// document that map to a domain reading. Temperatures arrive in Celsius and
// wind speed in meters per second because requests ask for metric units.
type currentWeatherResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	ObservedAt int64 `json:"dt"`
}

// toReading maps the provider document to a domain reading. The reading keeps
// the location the caller asked for rather than the provider's resolved name,
// so stored readings always join back to subscriptions.
func (r *currentWeatherResponse) toReading(location string) *domain.WeatherReading {
	condition := ""
	if len(r.Weather) > 0 {
		condition = r.Weather[0].Main
	}

	return &domain.WeatherReading{
		Location:     location,
		TemperatureC: r.Main.Temp,
		Humidity:     r.Main.Humidity,
		WindKph:      r.Wind.Speed * 3.6,
		Condition:    condition,
		ObservedAt:   time.Unix(r.ObservedAt, 0).UTC(),
		Source:       sourceOpenWeatherMap,
	}
}

// Fetch retrieves the current conditions for a location.
func (p *openWeatherProvider) Fetch(ctx context.Context, location string) (*domain.WeatherReading, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Wrap(err, "failed to wait for provider rate limit")
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("units", "metric")
	query.Set("appid", p.apiKey)
	requestURL := fmt.Sprintf("%s/weather?%s", p.baseURL, query.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build provider request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch weather data")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrLocationNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.New(fmt.Sprintf("weather provider returned status %d", resp.StatusCode))
	}

	var payload currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode provider response")
	}

	return payload.toReading(location), nil
}

// NewOpenWeatherProvider creates a Provider backed by the OpenWeatherMap API.
func NewOpenWeatherProvider(cfg OpenWeatherConfig) (Provider, error) {
	if cfg.BaseURL == "" {
		return nil, apperrors.New("weather provider base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, apperrors.New("weather provider API key is required")
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout

	client := &retryablehttp.Client{
		HTTPClient:   httpClient,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		RetryMax:     3,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	return &openWeatherProvider{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}, nil
}
