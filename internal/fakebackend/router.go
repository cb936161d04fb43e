// Package fakebackend serves the room backend JSON shape locally, for
// offline development and tests.
//
//	GET /room/:room/info  -> {"apiKey": ..., "sessionId": ..., "token": ...}
//	GET /room/:room       -> plain text room page
//	GET /:room            -> same JSON as /room/:room/info (meet style)
//
// Session ids are derived from the room name, so the same room always maps to
// the same session. Tokens are fresh on every request.
package fakebackend

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/r9s-ai/room-snippet/internal/logx"
	"github.com/r9s-ai/room-snippet/internal/requestid"
)

// DefaultAPIKey is served when Options.APIKey is empty.
const DefaultAPIKey = "46000000"

// Options configures NewRouter.
type Options struct {
	APIKey string
	// Logger receives one access line per request. nil disables access logs.
	Logger *log.Logger
	Color  bool
}

// SessionID returns the session id served for room.
func SessionID(room string) string {
	return "1_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("room:"+room)).String()
}

// NewRouter returns the fake room backend handler.
func NewRouter(opts Options) *gin.Engine {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}

	r := gin.New()
	r.Use(requestIDMiddleware())
	if opts.Logger != nil {
		r.Use(requestLogger(opts.Logger, opts.Color))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	info := func(c *gin.Context) {
		room := strings.TrimSpace(c.Param("room"))
		if room == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "room is empty"})
			return
		}
		c.Set("roomsnip.room", room)
		c.JSON(http.StatusOK, gin.H{
			"apiKey":    apiKey,
			"sessionId": SessionID(room),
			"token":     "T1==" + uuid.NewString(),
			"room":      room,
		})
	}

	r.GET("/room/:room/info", info)
	r.GET("/room/:room", func(c *gin.Context) {
		c.String(http.StatusOK, "room %s\n", c.Param("room"))
	})
	r.GET("/:room", info)

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestid.Ensure(c.Request.Header)
		c.Header(requestid.HeaderKey, id)
		c.Set(requestid.HeaderKey, id)
		c.Next()
	}
}

func requestLogger(l *log.Logger, color bool) gin.HandlerFunc {
	if l == nil {
		l = log.New(os.Stderr, "", 0)
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]any{}
		if v := c.GetString(requestid.HeaderKey); v != "" {
			fields["request_id"] = v
		}
		if v := c.GetString("roomsnip.room"); v != "" {
			fields["room"] = v
		}
		l.Println(logx.FormatRequestLine(start, c.Writer.Status(), time.Since(start), c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
	}
}
