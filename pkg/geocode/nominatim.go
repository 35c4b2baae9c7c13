package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// NominatimClient resolves free-text locations against a Nominatim-style
// geocoding endpoint. Provider failures (non-2xx, empty result set, parse
// errors) degrade to a nil Point instead of an error, and no call is ever
// retried.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	cache     Cache
}

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, cache Cache) *NominatimClient {
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		cache:     cache,
	}
}

type nominatimCandidate struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *NominatimClient) Geocode(ctx context.Context, query string, bypassCache bool) (*Point, error) {
	if query == "" {
		return nil, nil
	}

	if !bypassCache {
		if point, ok := n.cache.Get(query); ok {
			return point, nil
		}
	}

	point := n.fetch(ctx, query)
	n.cache.Set(query, point)
	return point, nil
}

func (n *NominatimClient) fetch(ctx context.Context, query string) *Point {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", n.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		zap.L().Warn("Failed to build geocoding request",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		zap.L().Warn("Geocoding request failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zap.L().Warn("Geocoding provider returned non-2xx status",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode),
		)
		return nil
	}

	var candidates []nominatimCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		zap.L().Warn("Failed to decode geocoding response",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	if len(candidates) == 0 {
		return nil
	}

	lat, err := strconv.ParseFloat(candidates[0].Lat, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(candidates[0].Lon, 64)
	if err != nil {
		return nil
	}

	return &Point{Lat: lat, Lng: lng}
}
