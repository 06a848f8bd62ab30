package auth

import (
	"net/http"

	"attendance-dashboard/internal/middleware"
	"attendance-dashboard/internal/shared/apperror"
	"attendance-dashboard/internal/shared/contextutil"
	"attendance-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service      Service
	secureCookie bool
}

// NewHandler: secureCookie=true di production (HTTPS).
func NewHandler(s Service, secureCookie bool) *Handler {
	return &Handler{service: s, secureCookie: secureCookie}
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	res, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// remember=false: cookie session browser (MaxAge 0), ikut hilang saat browser ditutup
	maxAge := 0
	if res.Remember {
		maxAge = int(res.TTL.Seconds())
	}
	ctrl.setSessionCookie(c, res.SessionID, maxAge)

	response.Success(c, http.StatusOK, SessionResponse{
		User:      res.User,
		Role:      res.Role,
		Remember:  res.Remember,
		ExpiresIn: int64(res.TTL.Seconds()),
	}, nil)
}

func (ctrl *Handler) Me(c *gin.Context) {
	user, err := ctrl.service.Me(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SessionResponse{
		User: user,
		Role: contextutil.GetRole(c.Request.Context()),
	}, nil)
}

func (ctrl *Handler) Logout(c *gin.Context) {
	if err := ctrl.service.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		response.FromError(c, err)
		return
	}

	ctrl.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (ctrl *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ctrl.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
