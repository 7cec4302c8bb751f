package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/thermalkit/isp2go/internal/persistence"
)

const defaultJournalLimit = 100

func registerJournalEndpoints(rest *echo.Echo, pers persistence.Persistence) {
	group := rest.Group("/journal")

	group.GET("/", func(c echo.Context) error {
		return getJournal(c, pers)
	})
}

// returns the most recent throttling events
func getJournal(c echo.Context, pers persistence.Persistence) error {
	limit := defaultJournalLimit
	if param := c.QueryParam("limit"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil {
			return c.JSONPretty(http.StatusBadRequest, &Result{
				Name:    "Bad Request",
				Message: "limit must be an integer",
			}, indentationChar)
		}
		limit = parsed
	}

	events, err := pers.LoadJournal(limit)
	if err != nil {
		return returnError(c, err)
	}

	return c.JSONPretty(http.StatusOK, events, indentationChar)
}
