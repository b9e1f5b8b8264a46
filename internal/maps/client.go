// Package maps - клиенты внешних геосервисов: маршруты через OSRM и обратное
// геокодирование через Nominatim. Оба сервиса необязательны: при недоступности
// маршрут считается по дуге большого круга, адрес заменяется заглушкой.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/shenikar/golden_hour_dispatch/internal/config"
	"github.com/shenikar/golden_hour_dispatch/internal/geo"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

const unknownLocation = "Unknown Location"

// Client ходит в OSRM и Nominatim с общим таймаутом из конфигурации
type Client struct {
	cfg        *config.Config
	logger     *logrus.Logger
	httpClient *http.Client
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: cfg.RoutingTimeout,
		},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // метры
		Duration float64 `json:"duration"` // секунды
	} `json:"routes"`
}

// RouteDetails возвращает оценку маршрута от origin до destination.
// Любой сбой OSRM приводит к haversine-оценке, ошибки наружу не выходят.
func (c *Client) RouteDetails(ctx context.Context, origin, destination geo.Point) (models.RouteEstimate, error) {
	log := c.logger.WithField("component", "maps")

	estimate, err := c.osrmRoute(ctx, origin, destination)
	if err != nil {
		log.WithError(err).Warn("OSRM route lookup failed, falling back to great-circle estimate")
		return c.fallbackEstimate(origin, destination), nil
	}
	return estimate, nil
}

func (c *Client) osrmRoute(ctx context.Context, origin, destination geo.Point) (models.RouteEstimate, error) {
	if c.cfg.OSRMBaseURL == "" {
		return models.RouteEstimate{}, fmt.Errorf("osrm is not configured")
	}

	// OSRM принимает координаты в порядке долгота,широта
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.cfg.OSRMBaseURL, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("failed to create osrm request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("osrm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RouteEstimate{}, fmt.Errorf("osrm returned status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.RouteEstimate{}, fmt.Errorf("failed to decode osrm response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return models.RouteEstimate{}, fmt.Errorf("osrm returned no routes (code %q)", parsed.Code)
	}

	route := parsed.Routes[0]
	return models.RouteEstimate{
		DistanceKm:  math.Round(route.Distance/1000*100) / 100,
		DurationMin: int(math.Round(route.Duration / 60)),
		Source:      "osrm",
	}, nil
}

func (c *Client) fallbackEstimate(origin, destination geo.Point) models.RouteEstimate {
	d := geo.Distance(origin, destination)
	return models.RouteEstimate{
		DistanceKm:  d,
		DurationMin: geo.ETA(d, c.cfg.TransportSpeedKmh),
		Source:      "haversine",
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode возвращает человекочитаемый адрес точки.
// При любом сбое возвращается "Unknown Location", эта граница не падает.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	log := c.logger.WithField("component", "maps")

	if c.cfg.NominatimBaseURL == "" {
		return unknownLocation
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lng))
	params.Set("format", "json")
	params.Set("zoom", "18")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.NominatimBaseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		log.WithError(err).Warn("Failed to create reverse geocode request")
		return unknownLocation
	}
	req.Header.Set("User-Agent", "GoldenHourDispatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Reverse geocode request failed")
		return unknownLocation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("Reverse geocode returned status %d", resp.StatusCode)
		return unknownLocation
	}

	var parsed nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.WithError(err).Warn("Failed to decode reverse geocode response")
		return unknownLocation
	}
	if parsed.DisplayName == "" {
		return unknownLocation
	}
	return parsed.DisplayName
}
