package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"starwars/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, c.Write(&pb))
	return pb.GetCounter().GetValue()
}

func TestRecordFavoriteChange(t *testing.T) {
	m := metrics.New()
	m.RecordFavoriteChange("planet", metrics.OutcomeAdded)
	m.RecordFavoriteChange("planet", metrics.OutcomeAdded)
	m.RecordFavoriteChange("character", metrics.OutcomeMissing)

	assert.Equal(t, 2.0, counterValue(t, m.FavoriteChanges.WithLabelValues("planet", metrics.OutcomeAdded)))
	assert.Equal(t, 1.0, counterValue(t, m.FavoriteChanges.WithLabelValues("character", metrics.OutcomeMissing)))

	var nilMetrics *metrics.Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordFavoriteChange("planet", metrics.OutcomeRemoved) })
}

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	m := metrics.New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/planets/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/planets/1", "/planets/2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, counterValue(t, m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/planets/:id", "200")))
}
