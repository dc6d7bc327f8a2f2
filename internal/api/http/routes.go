package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-advisor/internal/store"
	"github.com/i474232898/weather-advisor/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days := service.GetForecast(c.UserContext(), weather.ForecastRequest{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
		return c.JSON(days)
	})

	v1.Get("/geocode", func(c *fiber.Ctx) error {
		q := geocodeQuery{Address: strings.TrimSpace(c.Query("address"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// A nil result encodes as JSON null.
		return c.JSON(service.Geocode(c.UserContext(), q.Address))
	})

	v1.Get("/watch", func(c *fiber.Ctx) error {
		locs := service.Watchlist()
		if locs == nil {
			locs = []weather.WatchLocation{}
		}
		return c.JSON(locs)
	})

	v1.Get("/watch/:name", func(c *fiber.Ctx) error {
		loc, err := service.FindWatch(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		snapshot, err := service.GetLatest(loc)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast snapshot for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast snapshot")
		}
		return c.JSON(snapshot)
	})

	v1.Get("/watch/:name/history", func(c *fiber.Ctx) error {
		loc, err := service.FindWatch(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := service.GetRange(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Latitude  float64   `validate:"min=-90,max=90"`
	Longitude float64   `validate:"min=-180,max=180"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtefield=StartDate"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	var err error
	if f.Latitude, err = parseCoordinate(c.Query("lat"), "lat"); err != nil {
		return err
	}
	if f.Longitude, err = parseCoordinate(c.Query("lon"), "lon"); err != nil {
		return err
	}

	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		return errors.New("startDate and endDate query parameters are required")
	}

	if f.StartDate, err = parseDate(startStr); err != nil {
		return err
	}
	if f.EndDate, err = parseDate(endStr); err != nil {
		return err
	}
	return nil
}

type geocodeQuery struct {
	Address string `validate:"required,max=200"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

func parseCoordinate(s, name string) (float64, error) {
	if s == "" {
		return 0, errors.New(name + " query parameter is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + name + "; expected a decimal number")
	}
	return v, nil
}

// parseDate accepts ISO calendar dates (YYYY-MM-DD).
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(weather.DateLayout, s)
	if err != nil {
		return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD")
	}
	return d, nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
