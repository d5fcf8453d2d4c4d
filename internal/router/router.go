package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-directory/internal/config"     // cache and rate-limit settings
	"github.com/iliyamo/venue-directory/internal/handler"    // handlers that translate HTTP to directory calls
	"github.com/iliyamo/venue-directory/internal/metrics"    // Prometheus scrape endpoint
	"github.com/iliyamo/venue-directory/internal/middleware" // response cache and rate limiting
)

// RegisterRoutes registers the operational endpoints on the provided Echo
// instance: liveness, readiness and the Prometheus scrape handler.  None
// of them are cached or rate limited.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	// Map GET /healthz to the liveness handler used by load balancers.
	e.GET("/healthz", handler.Health)
	// Readiness also pings the store.
	e.GET("/readyz", handler.Ready(db))
	// Expose the default Prometheus registry.
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// RegisterDirectory registers the venue, artist and show endpoints under
// /v1.  Any extra middleware (cache, rate limit) is applied to the group
// in the order given, so pass the rate limiter first to reject excess
// traffic before a cache lookup.
func RegisterDirectory(e *echo.Echo, h *handler.DirectoryHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)

	// Venues.  The search route is registered before /:id so Echo's static
	// segment wins over the parameter.
	g.GET("/venues", h.ListVenues)
	g.GET("/venues/search", h.SearchVenues)
	g.POST("/venues/search", h.SearchVenues)
	g.GET("/venues/:id", h.ShowVenue)
	g.POST("/venues", h.CreateVenue)
	g.PUT("/venues/:id", h.UpdateVenue)
	g.DELETE("/venues/:id", h.DeleteVenue)

	// Artists mirror the venue routes.
	g.GET("/artists", h.ListArtists)
	g.GET("/artists/search", h.SearchArtists)
	g.POST("/artists/search", h.SearchArtists)
	g.GET("/artists/:id", h.ShowArtist)
	g.POST("/artists", h.CreateArtist)
	g.PUT("/artists/:id", h.UpdateArtist)
	g.DELETE("/artists/:id", h.DeleteArtist)

	// Shows can only be listed, booked and cancelled.
	g.GET("/shows", h.ListShows)
	g.POST("/shows", h.CreateShow)
	g.DELETE("/shows/:id", h.DeleteShow)
}

// Middlewares builds the cache and rate-limit chain for the /v1 group.
// Both degrade to pass-through handlers when Redis is not configured.
func Middlewares(rl config.RateLimitConfig, cc config.CacheConfig, rdb *redis.Client) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.NewTokenBucket(rl, rdb),
		middleware.NewRedisCache(cc, rdb),
	}
}
