package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/onecall-weather/internal/store"
	"github.com/i474232898/onecall-weather/internal/weather"
)

var validate = validator.New()

// Service is what the routes need from the orchestrator.
type Service interface {
	GetLatest() (weather.Snapshot, error)
	Refresh(ctx context.Context) error
	Units() weather.Units
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		snap, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(newCurrentView(snap, service.Units()))
	})

	v1.Get("/weather/hourly", func(c *fiber.Ctx) error {
		snap, err := latest(service)
		if err != nil {
			return err
		}

		q := limitQuery{Limit: len(snap.Hourly), Max: len(snap.Hourly)}
		if err := q.bind(c, "limit"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		units := service.Units()
		out := make([]hourlyView, 0, q.Limit)
		for _, h := range snap.Hourly[:q.Limit] {
			out = append(out, hourlyView{HourlyForecast: h, Time: weather.FormatUnixTime(h.Dt, units)})
		}
		return c.JSON(fiber.Map{
			"units":     units,
			"updatedAt": snap.UpdatedAt,
			"hourly":    out,
		})
	})

	v1.Get("/weather/daily", func(c *fiber.Ctx) error {
		snap, err := latest(service)
		if err != nil {
			return err
		}

		q := limitQuery{Limit: weather.DailyDays, Max: weather.DailyDays}
		if err := q.bind(c, "days"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		units := service.Units()
		out := make([]dailyView, 0, q.Limit)
		for _, d := range snap.Daily[:q.Limit] {
			out = append(out, dailyView{DailyForecast: d, Time: weather.FormatUnixTime(d.Dt, units)})
		}
		return c.JSON(fiber.Map{
			"units":     units,
			"updatedAt": snap.UpdatedAt,
			"daily":     out,
		})
	})

	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := service.Refresh(ctx); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "decode cycle failed: "+err.Error())
		}

		snap, err := latest(service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"cycleId":   snap.CycleID,
			"updatedAt": snap.UpdatedAt,
			"trend":     snap.Current.Trend,
		})
	})
}

func latest(service Service) (weather.Snapshot, error) {
	snap, err := service.GetLatest()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return snap, fiber.NewError(fiber.StatusNotFound, "no weather data decoded yet")
		}
		return snap, fiber.NewError(fiber.StatusInternalServerError, "failed to read weather data")
	}
	return snap, nil
}

type currentView struct {
	weather.CurrentConditions
	Units        weather.Units `json:"units"`
	SunriseTime  string        `json:"sunriseTime"`
	SunsetTime   string        `json:"sunsetTime"`
	WindCardinal string        `json:"windCardinal"`
	CycleID      string        `json:"cycleId"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func newCurrentView(snap weather.Snapshot, units weather.Units) currentView {
	cur := snap.Current
	return currentView{
		CurrentConditions: cur,
		Units:             units,
		SunriseTime:       weather.FormatUnixTime(cur.Sunrise, units),
		SunsetTime:        weather.FormatUnixTime(cur.Sunset, units),
		WindCardinal:      weather.WindCardinal(cur.Winddir),
		CycleID:           snap.CycleID,
		UpdatedAt:         snap.UpdatedAt,
	}
}

type hourlyView struct {
	weather.HourlyForecast
	Time string `json:"time"`
}

type dailyView struct {
	weather.DailyForecast
	Time string `json:"time"`
}

// limitQuery bounds how many slots of a collection are returned.
type limitQuery struct {
	Limit int `validate:"gte=1,ltefield=Max"`
	Max   int
}

func (q *limitQuery) bind(c *fiber.Ctx, key string) error {
	if raw := c.Query(key); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.New(key + " must be an integer")
		}
		q.Limit = n
	}
	return validate.Struct(q)
}
