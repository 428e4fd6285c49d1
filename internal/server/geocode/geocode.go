// Package geocode resolves postal addresses to coordinates through an
// external forward-geocoding HTTP API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// ErrUnresolvable means the geocoder answered but knows no coordinates for
// the address. It is surfaced to the caller before any place data is written.
var ErrUnresolvable = errors.New("could not resolve address")

type Location struct {
	Lat float64
	Lng float64
}

type Geocoder interface {
	Resolve(ctx context.Context, address string) (*Location, error)
}

// HTTPGeocoder talks to a Nominatim-compatible search endpoint.
type HTTPGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGeocoder(baseURL, apiKey string) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGeocoder) Resolve(ctx context.Context, address string) (*Location, error) {

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if g.apiKey != "" {
		q.Set("key", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geocoder response: %w", err)
	}

	first := gjson.GetBytes(body, "0")
	if !first.Exists() {
		return nil, ErrUnresolvable
	}

	lat := first.Get("lat")
	lon := first.Get("lon")
	if !lat.Exists() || !lon.Exists() {
		return nil, ErrUnresolvable
	}

	return &Location{Lat: lat.Float(), Lng: lon.Float()}, nil
}
