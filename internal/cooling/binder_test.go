package cooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thermalkit/isp2go/internal/configuration"
	"github.com/thermalkit/isp2go/internal/ect"
	"github.com/thermalkit/isp2go/internal/throttle"
	"github.com/thermalkit/isp2go/internal/zone"
)

func TestBinderSeedsMatchingZone(t *testing.T) {
	// GIVEN
	// four calibration ranges, dedup leaves levels 60->0, 30->1, 15->2
	registry, authority := createTestRegistry(t, []configuration.ZoneConfig{
		{Name: "ISP", Trips: 4},
	})

	// WHEN
	device := registerTestDevice(t, registry, authority)

	// THEN
	instances := device.Registration().Instances()
	assert.Len(t, instances, 4)
	// trips 0 and 1 both carry the 60fps ceiling
	assert.Equal(t, uint(0), instances[0].Upper)
	assert.Equal(t, uint(0), instances[1].Upper)
	assert.Equal(t, uint(1), instances[2].Upper)
	assert.Equal(t, uint(2), instances[3].Upper)
}

func TestBinderMatchesZoneCaseInsensitively(t *testing.T) {
	// GIVEN
	registry, authority := createTestRegistry(t, []configuration.ZoneConfig{
		{Name: "isp", Trips: 1},
	})

	// WHEN
	device := registerTestDevice(t, registry, authority)

	// THEN
	results := registry.seedTripBounds(device)
	assert.Len(t, results, 1)
	assert.True(t, results[0].Bound)
}

func TestBinderSkipsForeignZones(t *testing.T) {
	// GIVEN
	registry, authority := createTestRegistry(t, []configuration.ZoneConfig{
		{Name: "BIG", Trips: 2},
	})
	device := registerTestDevice(t, registry, authority)

	// WHEN
	results := registry.seedTripBounds(device)

	// THEN
	assert.Len(t, results, 2)
	for _, result := range results {
		assert.False(t, result.Bound)
		assert.Equal(t, "zone does not match binder target", result.Reason)
		assert.Equal(t, uint(0), result.Instance.Upper)
	}
}

func TestBinderFallsBackToMaxLevel(t *testing.T) {
	// GIVEN
	// a fifth trip whose calibration range fps (45) has no table entry
	// because the table was built from a different function
	provider := ect.NewProvider(configuration.CalibrationConfig{
		Functions: []configuration.FunctionConfig{
			{
				Name: "ISP",
				Ranges: []configuration.RangeConfig{
					{LowerBound: 30, MaxFps: 60},
					{LowerBound: 50, MaxFps: 45},
					{LowerBound: 60, MaxFps: 15},
				},
			},
		},
	})

	// table only knows 60 and 15
	table, err := throttle.NewTable(ect.NewProvider(configuration.CalibrationConfig{
		Functions: []configuration.FunctionConfig{
			{
				Name: "ISP",
				Ranges: []configuration.RangeConfig{
					{LowerBound: 30, MaxFps: 60},
					{LowerBound: 60, MaxFps: 15},
				},
			},
		},
	}), "ISP")
	assert.NoError(t, err)

	authority := zone.NewAuthority(testNode, []configuration.ZoneConfig{
		{Name: "ISP", Trips: 3},
	})
	registry := NewRegistry(table, NewHub(), authority, provider, "ISP", 8)

	// WHEN
	device := registerTestDevice(t, registry, authority)
	instances := device.Registration().Instances()

	// THEN
	assert.Equal(t, uint(0), instances[0].Upper)
	// 45fps misses the table, the full throttling ceiling applies
	assert.Equal(t, uint(1), instances[1].Upper)
	assert.Equal(t, uint(1), instances[2].Upper)
}

func TestBinderSkipsTripsBeyondCalibration(t *testing.T) {
	// GIVEN
	registry, authority := createTestRegistry(t, []configuration.ZoneConfig{
		{Name: "ISP", Trips: 6},
	})
	device := registerTestDevice(t, registry, authority)

	// WHEN
	results := registry.seedTripBounds(device)

	// THEN
	assert.Len(t, results, 6)
	for _, result := range results[:4] {
		assert.True(t, result.Bound)
	}
	for _, result := range results[4:] {
		assert.False(t, result.Bound)
		assert.Equal(t, "no calibration range for trip", result.Reason)
	}
}

func TestBinderSkipsAllWhenCalibrationUnavailable(t *testing.T) {
	// GIVEN
	provider := ect.NewProvider(configuration.CalibrationConfig{})
	authority := zone.NewAuthority(testNode, []configuration.ZoneConfig{
		{Name: "ISP", Trips: 2},
	})
	registry := NewRegistry(nil, NewHub(), authority, provider, "ISP", 8)

	// WHEN
	device, err := registry.Register(&zone.Node{Name: testNode})
	assert.NoError(t, err)
	results := registry.seedTripBounds(device)

	// THEN
	assert.Len(t, results, 2)
	for _, result := range results {
		assert.False(t, result.Bound)
		assert.Equal(t, "calibration unavailable", result.Reason)
	}
}
