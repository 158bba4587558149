package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gavel/adapters/session"
	"gavel/models"
)

const SESSION_KEY_USER_ID = "user_id"

func (impl *ServerImpl) sessionMiddleware() gin.HandlerFunc {
	opts := []session.MiddlewareOption{
		session.WithCookieSecure(impl.config.Session.CookieSecure),
	}
	if impl.config.Session.KeyForCookie != "" {
		opts = append(opts, session.WithSessionKeyForCookie(impl.config.Session.KeyForCookie))
	}
	if impl.config.Session.CookieMaxAge > 0 {
		opts = append(opts, session.WithCookieMaxAge(impl.config.Session.CookieMaxAge))
	}
	return session.GinMiddleware(impl.sessionStore, opts...)
}

// callerID resolves the authenticated user id carried by the session.
// uuid.Nil means anonymous; domain operations treat it the same way.
func (impl *ServerImpl) callerID(c *gin.Context) uuid.UUID {
	sess, err := session.GetSession(c)
	if err != nil {
		return uuid.Nil
	}
	raw := sess.Get(SESSION_KEY_USER_ID)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		slog.Warn("Drop malformed session user id", slog.String("value", raw))
		sess.Delete(SESSION_KEY_USER_ID)
		return uuid.Nil
	}
	return id
}

// currentUser loads the signed-in user's record for page headers. A stale
// session pointing at a missing user renders as anonymous.
func (impl *ServerImpl) currentUser(c *gin.Context) *models.User {
	id := impl.callerID(c)
	if id == uuid.Nil {
		return nil
	}
	user, err := impl.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		return nil
	}
	return user
}

func (impl *ServerImpl) signIn(c *gin.Context, userID uuid.UUID) error {
	sess, err := session.GetSession(c)
	if err != nil {
		return err
	}
	sess.Set(SESSION_KEY_USER_ID, userID.String())
	// Flush before the redirect goes out so the next request sees the login.
	return sess.Save()
}

func (impl *ServerImpl) signOut(c *gin.Context) {
	sess, err := session.GetSession(c)
	if err != nil {
		return
	}
	sess.Clear()
	_ = sess.Save()
}
