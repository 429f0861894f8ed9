package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/tweet-weather/internal/social"
	"github.com/i474232898/tweet-weather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, publisher *weather.Publisher, cities []string, units weather.UnitSystem) {
	v1 := app.Group("/api/v1")

	// One invocation per request; a failing city means nothing is posted.
	v1.Post("/publish", func(c *fiber.Ctx) error {
		res, err := publisher.PublishDailyWeather(c.UserContext(), cities)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}
		return c.JSON(res)
	})

	v1.Get("/weather/preview", func(c *fiber.Ctx) error {
		q, err := parsePreviewQuery(c, units)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		line, err := publisher.Line(c.UserContext(), q.City, weather.UnitSystem(q.Units))
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}

		return c.JSON(fiber.Map{
			"city":  q.City,
			"units": q.Units,
			"line":  line,
		})
	})
}

// previewQuery holds query parameters for the preview endpoint.
type previewQuery struct {
	City  string `validate:"required"`
	Units string `validate:"oneof=metric imperial"`
}

func parsePreviewQuery(c *fiber.Ctx, def weather.UnitSystem) (previewQuery, error) {
	q := previewQuery{
		City:  c.Query("city"),
		Units: c.Query("units", string(def)),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// statusFor maps the error taxonomy onto HTTP statuses for the trigger API.
func statusFor(err error) int {
	var (
		notFound weather.NotFoundError
		auth     weather.AuthenticationError
		upstream weather.UpstreamError
		decode   weather.DecodeError
		postErr  social.PostError
	)
	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &auth), errors.As(err, &upstream), errors.As(err, &decode), errors.As(err, &postErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
