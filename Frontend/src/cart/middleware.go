package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const ctxUserID = "uid"

// userIDFrom prueba la cookie uid y luego el header X-User-ID. 0 = sin usuario.
func userIDFrom(c *gin.Context) int64 {
	if raw, err := c.Cookie("uid"); err == nil {
		if id := parseUserID(raw); id != 0 {
			return id
		}
	}
	return parseUserID(c.GetHeader("X-User-ID"))
}

func parseUserID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFrom(c)
		if uid == 0 {
			respondError(c, http.StatusUnauthorized, "login required")
			return
		}
		c.Set(ctxUserID, uid)
		c.Next()
	}
}

func currentUser(c *gin.Context) int64 { return c.GetInt64(ctxUserID) }

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ev := log.Info()
		if len(c.Errors) > 0 {
			ev = log.Error().Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Int("status", c.Writer.Status()).
			Int64("user", c.GetInt64(ctxUserID)).
			Dur("took", time.Since(start)).
			Msg("http")
	}
}
