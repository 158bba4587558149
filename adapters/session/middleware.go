package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const DefaultSessionKeyForContext = "gavel-session-context"

var ErrSessionNotFound = fmt.Errorf("session not found")

type MiddlewareOptions struct {
	sessionKeyForCookie  string
	sessionKeyForContext string
	cookieMaxAge         time.Duration
	cookiePath           string
	cookieDomain         string
	cookieSecure         bool
	cookieHTTPOnly       bool
}

type MiddlewareOption func(*MiddlewareOptions)

func WithSessionKeyForCookie(key string) MiddlewareOption {
	return func(options *MiddlewareOptions) {
		options.sessionKeyForCookie = key
	}
}

func WithSessionKeyForContext(key string) MiddlewareOption {
	return func(options *MiddlewareOptions) {
		options.sessionKeyForContext = key
	}
}

func WithCookieMaxAge(maxAge time.Duration) MiddlewareOption {
	return func(options *MiddlewareOptions) {
		options.cookieMaxAge = maxAge
	}
}

func WithCookieSecure(secure bool) MiddlewareOption {
	return func(options *MiddlewareOptions) {
		options.cookieSecure = secure
	}
}

// GinMiddleware attaches a session to every request. A missing or empty
// cookie gets a fresh session id; the cookie is refreshed on the way out and
// pending session writes are flushed after the handler chain runs.
func GinMiddleware(store IStore, opts ...MiddlewareOption) gin.HandlerFunc {
	options := MiddlewareOptions{
		sessionKeyForCookie:  "session",
		sessionKeyForContext: DefaultSessionKeyForContext,
		cookieMaxAge:         24 * time.Hour,
		cookiePath:           "/",
		cookieSecure:         true,
		cookieHTTPOnly:       true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(options.sessionKeyForCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
		}

		// The cookie must go out before any handler writes the response.
		c.SetCookie(
			options.sessionKeyForCookie,
			sessionID,
			int(options.cookieMaxAge/time.Second),
			options.cookiePath,
			options.cookieDomain,
			options.cookieSecure,
			options.cookieHTTPOnly,
		)

		sess := NewSession(c.Request.Context(), sessionID, store)
		c.Set(options.sessionKeyForContext, sess)

		c.Next()

		if err := sess.Save(); err != nil {
			_ = c.Error(err)
		}
	}
}

// GetSession pulls the request's session out of the gin context and loads it.
func GetSession(ctx context.Context, opts ...MiddlewareOption) (ISession, error) {
	const op = "session.GetSession"
	options := MiddlewareOptions{
		sessionKeyForContext: DefaultSessionKeyForContext,
	}
	for _, opt := range opts {
		opt(&options)
	}
	v := ctx.Value(options.sessionKeyForContext)
	if v == nil {
		return nil, ErrSessionNotFound
	}
	sess, ok := v.(ISession)
	if !ok {
		return nil, fmt.Errorf("%s: invalid session type in context", op)
	}
	if err := sess.Load(); err != nil {
		return nil, fmt.Errorf("%s: failed to load session: %w", op, err)
	}
	return sess, nil
}
