package geocode

import "context"

// Point is a WGS 84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves a free-text location (city/state or postal code) to a
// coordinate pair. A nil Point with a nil error means the location could not
// be resolved; callers treat that as "no location constraint" rather than a
// failure. bypassCache skips cache reads but still stores the fresh result.
type Geocoder interface {
	Geocode(ctx context.Context, query string, bypassCache bool) (*Point, error)
}
