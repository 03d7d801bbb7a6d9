package middleware

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/identi-digital/identi-modules/internal/pkg"
)

const (
	actorHeader = "X-Actor"
	maxActorLen = 100
)

// Actor copies the X-Actor header into the request context so audit records
// and log lines name who acted. A missing header leaves pkg.DefaultActor.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := normalizeActor(c.GetHeader(actorHeader))
		if actor != "" {
			ctx := pkg.WithActor(c.Request.Context(), actor)
			ctx = logger.WithContextAttrs(ctx, slog.String("actor", actor))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func normalizeActor(s string) string {
	s = strings.TrimSpace(s)
	if !utf8.ValidString(s) {
		return ""
	}
	if utf8.RuneCountInString(s) > maxActorLen {
		s = string([]rune(s)[:maxActorLen])
	}
	return s
}
