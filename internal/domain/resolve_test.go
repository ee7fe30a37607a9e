package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodeResult
	err    error
	calls  int
	query  string
}

func (m *mockGeocoder) Geocode(_ context.Context, query, _ string) (GeocodeResult, error) {
	m.calls++
	m.query = query
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestResolver_DevicePositionWins(t *testing.T) {
	geo := &mockGeocoder{result: GeocodeResult{Lat: 53.4808, Lon: -2.2426}}
	r := NewResolver(geo, "gb", discardLogger())

	pos := Coordinate{Lat: 51.45, Lon: -2.58}
	coord, source, ok := r.Resolve(context.Background(), "Manchester", &pos)

	require.True(t, ok)
	assert.Equal(t, pos, coord)
	assert.Equal(t, ResolveDevice, source)
	assert.Equal(t, 0, geo.calls, "device position must not trigger a geocode call")
}

func TestResolver_InvalidDevicePositionIgnored(t *testing.T) {
	r := NewResolver(nil, "gb", discardLogger())

	pos := Coordinate{Lat: 200, Lon: 0}
	coord, source, ok := r.Resolve(context.Background(), "Manchester", &pos)

	require.True(t, ok)
	assert.Equal(t, ResolveFallback, source)
	assert.InDelta(t, 53.4808, coord.Lat, 1e-6)
}

func TestResolver_ShortQuerySkipsGeocoder(t *testing.T) {
	geo := &mockGeocoder{result: GeocodeResult{Lat: 1, Lon: 1}}
	r := NewResolver(geo, "gb", discardLogger())

	coord, source, ok := r.Resolve(context.Background(), "lon", nil)

	require.True(t, ok)
	assert.Equal(t, ResolveFallback, source)
	assert.InDelta(t, 51.5074, coord.Lat, 1e-6)
	assert.Equal(t, 0, geo.calls)
}

func TestResolver_GeocoderSuccess(t *testing.T) {
	geo := &mockGeocoder{result: GeocodeResult{Lat: 53.7997, Lon: -1.5492, PlaceName: "Leeds"}}
	r := NewResolver(geo, "gb", discardLogger())

	coord, source, ok := r.Resolve(context.Background(), "Leeds city centre", nil)

	require.True(t, ok)
	assert.Equal(t, ResolveGeocoder, source)
	assert.Equal(t, 53.7997, coord.Lat)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, "Leeds city centre", geo.query)
}

func TestResolver_GeocoderError_FallsBackToTable(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("upstream 503")}
	r := NewResolver(geo, "gb", discardLogger())

	coord, source, ok := r.Resolve(context.Background(), "central Manchester", nil)

	require.True(t, ok)
	assert.Equal(t, ResolveFallback, source)
	assert.InDelta(t, 53.4808, coord.Lat, 1e-6)
	assert.Equal(t, 1, geo.calls)
}

func TestResolver_GeocoderEmptyResult_FallsBackToTable(t *testing.T) {
	geo := &mockGeocoder{} // zero-valued result, nil error
	r := NewResolver(geo, "gb", discardLogger())

	_, source, ok := r.Resolve(context.Background(), "Brighton seafront", nil)

	require.True(t, ok)
	assert.Equal(t, ResolveFallback, source)
}

func TestResolver_TotalFailure(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("timeout")}
	r := NewResolver(geo, "gb", discardLogger())

	_, source, ok := r.Resolve(context.Background(), "Atlantis", nil)

	assert.False(t, ok)
	assert.Equal(t, ResolveNone, source)
}

func TestResolver_NoInputs(t *testing.T) {
	geo := &mockGeocoder{}
	r := NewResolver(geo, "gb", discardLogger())

	_, source, ok := r.Resolve(context.Background(), "", nil)

	assert.False(t, ok)
	assert.Equal(t, ResolveNone, source)
	assert.Equal(t, 0, geo.calls)
}

func TestResolver_NilGeocoder_TableOnly(t *testing.T) {
	r := NewResolver(nil, "gb", discardLogger())

	coord, source, ok := r.Resolve(context.Background(), "Glasgow", nil)

	require.True(t, ok)
	assert.Equal(t, ResolveFallback, source)
	assert.InDelta(t, 55.8642, coord.Lat, 1e-6)

	_, _, ok = r.Resolve(context.Background(), "nowhere in particular", nil)
	assert.False(t, ok)
}

func TestMatchCity(t *testing.T) {
	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{"London", "London", true},
		{"london", "London", true},
		{"central manchester", "Manchester", true},
		{"edin", "Edinburgh", true},
		{"Atlantis", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			coord, ok := matchCity(tc.query)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				want, found := matchCity(tc.want)
				require.True(t, found)
				assert.Equal(t, want, coord)
			}
		})
	}
}
