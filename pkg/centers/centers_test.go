package centers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, Distance(DefaultCenter, DefaultCenter), 1e-9)

	// Ameerpet to Kukatpally is roughly 6.5 km
	d := Distance(Coordinates{17.4374, 78.4487}, Coordinates{17.4849, 78.4138})
	assert.InDelta(t, 6.5, d, 0.5)

	// Symmetric
	assert.InDelta(t, d, Distance(Coordinates{17.4849, 78.4138}, Coordinates{17.4374, 78.4487}), 1e-9)
}

func TestNear(t *testing.T) {
	dir := Default()

	t.Run("closest first", func(t *testing.T) {
		got := dir.Near(Coordinates{Lat: 17.4850, Lng: 78.4140}, 50)
		require.Len(t, got, 2)
		assert.Equal(t, "ms-002", got[0].ID)
		assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
	})

	t.Run("radius filters", func(t *testing.T) {
		got := dir.Near(Coordinates{Lat: 17.4374, Lng: 78.4487}, 1)
		require.Len(t, got, 1)
		assert.Equal(t, "ms-001", got[0].ID)
	})

	t.Run("far away", func(t *testing.T) {
		// Delhi
		assert.Empty(t, dir.Near(Coordinates{Lat: 28.6139, Lng: 77.2090}, DefaultRadiusKm))
	})

	t.Run("no radius returns all", func(t *testing.T) {
		assert.Len(t, dir.Near(DefaultCenter, 0), 2)
	})
}
