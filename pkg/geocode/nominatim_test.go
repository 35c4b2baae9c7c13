package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*NominatimClient, *int32) {
	t.Helper()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewNominatimClient(server.URL, "burpp-test/1.0", 5*time.Second, NewTTLCache(time.Hour, 100))
	return client, &calls
}

func TestNominatimClient_ParsesFirstCandidate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "burpp-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "austin tx", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431"},{"lat":"0","lon":"0"}]`))
	})

	point, err := client.Geocode(context.Background(), "austin tx", false)
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.InDelta(t, 30.2672, point.Lat, 1e-6)
	assert.InDelta(t, -97.7431, point.Lng, 1e-6)
}

func TestNominatimClient_EmptyResultIsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	point, err := client.Geocode(context.Background(), "xyzzy nowhere", false)
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestNominatimClient_ServerErrorIsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	point, err := client.Geocode(context.Background(), "austin tx", false)
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestNominatimClient_MalformedCoordinatesAreNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"-97.7431"}]`))
	})

	point, err := client.Geocode(context.Background(), "austin tx", false)
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestNominatimClient_CachesResults(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431"}]`))
	})

	for i := 0; i < 3; i++ {
		_, err := client.Geocode(context.Background(), "austin tx", false)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestNominatimClient_CachesNegativeResults(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	for i := 0; i < 3; i++ {
		point, err := client.Geocode(context.Background(), "xyzzy nowhere", false)
		require.NoError(t, err)
		assert.Nil(t, point)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestNominatimClient_BypassCacheRefetches(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431"}]`))
	})

	_, err := client.Geocode(context.Background(), "austin tx", false)
	require.NoError(t, err)

	_, err = client.Geocode(context.Background(), "austin tx", true)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(calls))

	// The bypass still refreshed the cache for the next cached read.
	_, err = client.Geocode(context.Background(), "austin tx", false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestNominatimClient_EmptyQueryIsNil(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	point, err := client.Geocode(context.Background(), "", false)
	require.NoError(t, err)
	assert.Nil(t, point)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}
