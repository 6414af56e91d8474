package http

import (
	"time"

	"github.com/dkeye/Meetme/internal/clock"
	"github.com/dkeye/Meetme/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	requestIDHeader = "X-Request-ID"

	hangupLimit  = 3
	hangupWindow = 10 * time.Second
)

// RequestIDMiddleware reuses the caller's request id or mints one, and logs
// each request with it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		started := time.Now()
		c.Next()

		log.Debug().
			Str("module", "adapters.http").
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(started)).
			Msg("request")
	}
}

func SetupRouter(cfg *config.Config, rooms RoomDirectory) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	h := &handlers{
		rooms:   rooms,
		hangups: NewRoomRateLimiter(clock.Real(), hangupLimit, hangupWindow),
	}
	api := r.Group("/api")
	api.GET("/health", h.health)
	api.GET("/rooms", h.listRooms)
	api.GET("/rooms/:number", h.getRoom)
	api.POST("/rooms/:number/hangup", h.hangupRoom)

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
