package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(httputil.ContextURL), strings.TrimSuffix(url.String(), "/"))
		c.Next()
	}
}

// AuthMiddleware verifies the bearer token of the request and stores the
// session in the context. Requests without a valid token or whose user
// does not exist anymore are aborted.
func AuthMiddleware(svc *auth.Service, users store.UserCollection) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.ParseHeader(c.GetHeader("Authorization"))
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("authentication failed")

			// Details on why a token is invalid are not shown to the client
			e := auth.ErrInvalidToken
			if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrTokenRevoked) {
				e = err
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.HTTPError{
				Error: e.Error(),
			})
			return
		}

		// Tokens outlive the account they were issued for
		if _, err := users.Get(c.Request.Context(), session.UserID); err != nil {
			if errors.Is(err, models.ErrResourceNotFound) {
				log.Debug().Str("request-id", requestid.Get(c)).Str("user", session.UserID.String()).Msg("token of deleted user")
				c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.HTTPError{
					Error: auth.ErrInvalidToken.Error(),
				})
				return
			}

			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.HTTPError{
				Error: models.ErrGeneral.Error(),
			})
			return
		}

		c.Set(auth.ContextKey, session)
		c.Next()
	}
}

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

// registerPrometheusMetrics registers all Prometheus metrics
// with the default registry.
func registerPrometheusMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics unregisters all Prometheus metrics.
//
// This is needed to cleanly exit.
func unregisterPrometheusMetrics() bool {
	ok := true
	for _, c := range metrics {
		if !prometheus.Unregister(c) {
			ok = false
		}
	}

	return ok
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
