package ui

import (
	"net/http"

	"carviz/app"
	"carviz/domain/core"
	"carviz/internal/errors"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "carviz_session"
	sessionKey    = "session"
)

// sessionMiddleware attaches the viewer's session ID, issuing a new session
// cookie when the request carries none or an unparsable one. No session
// state is stored until the viewer makes a selection.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.service.Failed() != nil {
			c.Next()
			return
		}

		raw, _ := c.Cookie(sessionCookie)
		id, err := core.ParseSessionID(raw)
		if err != nil {
			id = core.NewSessionID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id.String(), 0, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// rateLimitMiddleware rejects selection requests beyond the viewer's own
// allowance.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			c.Next()
			return
		}
		if !s.sessions.AllowSelect(id) {
			s.abortWithError(c, errors.RateLimited("too many selections"))
			return
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) (core.SessionID, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return "", false
	}
	id, ok := v.(core.SessionID)
	return id, ok
}

// controller returns the viewer's controller. Without create, a viewer with
// no stored session gets a detached controller with nothing selected.
func (s *Server) controller(c *gin.Context, create bool) (*app.ViewController, bool) {
	id, ok := sessionID(c)
	if !ok {
		return nil, false
	}
	if create {
		return s.sessions.Get(id), true
	}
	if ctrl, found := s.sessions.Lookup(id); found {
		return ctrl, true
	}
	return app.NewViewController(s.service), true
}

// statusFor maps an error code to its HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeRateLimited:
		return http.StatusTooManyRequests
	case errors.CodeSourceUnavailable, errors.CodeParseFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
