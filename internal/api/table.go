package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thermalkit/isp2go/internal/cooling"
)

func registerTableEndpoints(rest *echo.Echo, registry *cooling.Registry) {
	group := rest.Group("/table")

	group.GET("/", func(c echo.Context) error {
		return getTable(c, registry)
	})
}

// returns the throttle table snapshot
func getTable(c echo.Context, registry *cooling.Registry) error {
	snapshot, err := registry.Table().Snapshot()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, snapshot, indentationChar)
}
