package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thermalkit/isp2go/internal/configuration"
	"github.com/thermalkit/isp2go/internal/cooling"
	"github.com/thermalkit/isp2go/internal/ect"
	"github.com/thermalkit/isp2go/internal/persistence"
	"github.com/thermalkit/isp2go/internal/throttle"
	"github.com/thermalkit/isp2go/internal/zone"
)

func createTestService(t *testing.T) (*cooling.Registry, *cooling.Device, http.Handler) {
	provider := ect.NewProvider(configuration.CalibrationConfig{
		Functions: []configuration.FunctionConfig{
			{
				Name: "ISP",
				Ranges: []configuration.RangeConfig{
					{LowerBound: 30, MaxFps: 60},
					{LowerBound: 50, MaxFps: 30},
					{LowerBound: 60, MaxFps: 15},
				},
			},
		},
	})

	table, err := throttle.NewTable(provider, "ISP")
	assert.NoError(t, err)

	authority := zone.NewAuthority("exynos_isp_thermal", nil)
	registry := cooling.NewRegistry(table, cooling.NewHub(), authority, provider, "ISP", 8)

	node, err := authority.FindNode("exynos_isp_thermal")
	assert.NoError(t, err)
	device, err := registry.Register(node)
	assert.NoError(t, err)

	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "isp2go.db"))
	assert.NoError(t, pers.Init())
	assert.NoError(t, registry.Hub().Register(persistence.NewJournalListener(pers)))

	return registry, device, CreateRestService(registry, pers)
}

func TestIsAlive(t *testing.T) {
	// GIVEN
	_, _, service := createTestService(t)

	// WHEN
	request := httptest.NewRequest(http.MethodGet, "/alive/", nil)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetDevices(t *testing.T) {
	// GIVEN
	_, _, service := createTestService(t)

	// WHEN
	request := httptest.NewRequest(http.MethodGet, "/device/", nil)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "thermal-isp-0")
}

func TestGetDevice(t *testing.T) {
	// GIVEN
	_, device, service := createTestService(t)

	// WHEN
	request := httptest.NewRequest(http.MethodGet, "/device/"+device.Name()+"/", nil)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"maxLevel": 2`)
}

func TestGetUnknownDevice(t *testing.T) {
	// GIVEN
	_, _, service := createTestService(t)

	// WHEN
	request := httptest.NewRequest(http.MethodGet, "/device/thermal-isp-99/", nil)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSetDeviceLevel(t *testing.T) {
	// GIVEN
	_, device, service := createTestService(t)

	// WHEN
	request := httptest.NewRequest(http.MethodPut, "/device/"+device.Name()+"/level/", strings.NewReader(`{"level": 2}`))
	request.Header.Set(echoHeaderContentType, echoMIMEApplicationJSON)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)

	level, err := device.GetCurrentLevel()
	assert.NoError(t, err)
	assert.Equal(t, uint(2), level)
}

func TestGetTable(t *testing.T) {
	// GIVEN
	_, _, service := createTestService(t)

	// WHEN
	request := httptest.NewRequest(http.MethodGet, "/table/", nil)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"direction": "descending"`)
}

func TestGetJournal(t *testing.T) {
	// GIVEN
	_, device, service := createTestService(t)
	assert.NoError(t, device.SetLevel(1))

	// WHEN
	request := httptest.NewRequest(http.MethodGet, "/journal/", nil)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "thermal-isp-0")
}

func TestCreateMultipleServices(t *testing.T) {
	// GIVEN
	_, _, first := createTestService(t)

	// WHEN
	_, _, second := createTestService(t)

	// THEN
	for _, service := range []http.Handler{first, second} {
		request := httptest.NewRequest(http.MethodGet, "/alive/", nil)
		recorder := httptest.NewRecorder()
		service.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestGetMetrics(t *testing.T) {
	// GIVEN
	_, _, service := createTestService(t)
	request := httptest.NewRequest(http.MethodGet, "/alive/", nil)
	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// WHEN
	request = httptest.NewRequest(http.MethodGet, "/metrics/", nil)
	recorder = httptest.NewRecorder()
	service.ServeHTTP(recorder, request)

	// THEN
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "isp2go_requests_total")
}

const (
	echoHeaderContentType   = "Content-Type"
	echoMIMEApplicationJSON = "application/json"
)
