package cooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thermalkit/isp2go/internal/configuration"
	"github.com/thermalkit/isp2go/internal/ect"
	"github.com/thermalkit/isp2go/internal/throttle"
	"github.com/thermalkit/isp2go/internal/zone"
)

const testNode = "exynos_isp_thermal"

// helper function to create a provider for the standard ISP calibration used
// throughout these tests: dedup leaves [60, 30, 15], max level 2
func createTestProvider() ect.Provider {
	return ect.NewProvider(configuration.CalibrationConfig{
		Functions: []configuration.FunctionConfig{
			{
				Name: "ISP",
				Ranges: []configuration.RangeConfig{
					{LowerBound: 30, MaxFps: 60},
					{LowerBound: 40, MaxFps: 60},
					{LowerBound: 50, MaxFps: 30},
					{LowerBound: 60, MaxFps: 15},
				},
			},
		},
	})
}

func createTestRegistry(t *testing.T, zones []configuration.ZoneConfig) (*Registry, zone.Authority) {
	provider := createTestProvider()

	table, err := throttle.NewTable(provider, "ISP")
	assert.NoError(t, err)

	authority := zone.NewAuthority(testNode, zones)
	registry := NewRegistry(table, NewHub(), authority, provider, "ISP", 8)

	return registry, authority
}

func registerTestDevice(t *testing.T, registry *Registry, authority zone.Authority) *Device {
	node, err := authority.FindNode(testNode)
	assert.NoError(t, err)

	device, err := registry.Register(node)
	assert.NoError(t, err)

	return device
}
