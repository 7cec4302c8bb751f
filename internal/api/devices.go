package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thermalkit/isp2go/internal/cooling"
)

type deviceDto struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	CurrentLevel uint   `json:"currentLevel"`
	MaxLevel     uint   `json:"maxLevel"`
}

type setLevelRequest struct {
	Level uint `json:"level"`
}

func registerDeviceEndpoints(rest *echo.Echo, registry *cooling.Registry) {
	group := rest.Group("/device")

	group.GET("/", func(c echo.Context) error {
		return getDevices(c, registry)
	})
	group.GET("/:"+urlParamName+"/", func(c echo.Context) error {
		return getDevice(c, registry)
	})
	group.PUT("/:"+urlParamName+"/level/", func(c echo.Context) error {
		return setDeviceLevel(c, registry)
	})
}

func toDeviceDto(device *cooling.Device) deviceDto {
	currentLevel, _ := device.GetCurrentLevel()
	// max level is 0 while the table is absent
	maxLevel, _ := device.GetMaxLevel()

	return deviceDto{
		Id:           device.Id(),
		Name:         device.Name(),
		CurrentLevel: currentLevel,
		MaxLevel:     maxLevel,
	}
}

// returns a list of all currently registered cooling devices
func getDevices(c echo.Context, registry *cooling.Registry) error {
	data := []deviceDto{}
	for _, device := range registry.Devices() {
		data = append(data, toDeviceDto(device))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getDevice(c echo.Context, registry *cooling.Registry) error {
	name := c.Param(urlParamName)
	device, exists := registry.Device(name)
	if !exists {
		return returnNotFound(c, name)
	}
	return c.JSONPretty(http.StatusOK, toDeviceDto(device), indentationChar)
}

// applies a cooling level to a device, the SetLevel capability of the device
// accepts any input so this only fails for unknown devices or a bad body
func setDeviceLevel(c echo.Context, registry *cooling.Registry) error {
	name := c.Param(urlParamName)
	device, exists := registry.Device(name)
	if !exists {
		return returnNotFound(c, name)
	}

	var request setLevelRequest
	if err := c.Bind(&request); err != nil {
		return c.JSONPretty(http.StatusBadRequest, &Result{
			Name:    "Bad Request",
			Message: err.Error(),
		}, indentationChar)
	}

	if err := device.SetLevel(request.Level); err != nil {
		return returnError(c, err)
	}

	return c.JSONPretty(http.StatusOK, toDeviceDto(device), indentationChar)
}
