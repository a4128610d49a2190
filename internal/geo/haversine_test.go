package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/geo"
)

var (
	brussels = domain.Coordinate{Lat: 50.85, Lng: 4.35}
	paris    = domain.Coordinate{Lat: 48.85, Lng: 2.35}
)

func TestHaversineKm_BrusselsParis(t *testing.T) {
	d := geo.HaversineKm(brussels, paris)

	// Great-circle Brussels→Paris is ~264 km (road distance is ~300).
	assert.Greater(t, d, 263.0)
	assert.Less(t, d, 265.0)
}

func TestHaversineKm_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, geo.HaversineKm(brussels, brussels))
}

func TestHaversineKm_Symmetric(t *testing.T) {
	assert.InDelta(t, geo.HaversineKm(brussels, paris), geo.HaversineKm(paris, brussels), 1e-9)
}

func TestPathKm_ShortInputs(t *testing.T) {
	assert.Equal(t, 0.0, geo.PathKm(nil))
	assert.Equal(t, 0.0, geo.PathKm([]domain.Coordinate{brussels}))
}

func TestPathKm_SumsSegments(t *testing.T) {
	lyon := domain.Coordinate{Lat: 45.76, Lng: 4.84}

	total := geo.PathKm([]domain.Coordinate{brussels, paris, lyon})
	want := geo.HaversineKm(brussels, paris) + geo.HaversineKm(paris, lyon)

	assert.InDelta(t, want, total, 1e-9)
}

func TestPathKm_ReversalKeepsTotal(t *testing.T) {
	pts := []domain.Coordinate{
		brussels,
		paris,
		{Lat: 45.76, Lng: 4.84},
		{Lat: 43.3, Lng: 5.37},
	}
	rev := make([]domain.Coordinate, len(pts))
	for i, p := range pts {
		rev[len(pts)-1-i] = p
	}

	assert.InDelta(t, geo.PathKm(pts), geo.PathKm(rev), 1e-9)
}
