package auth

import (
	"errors"
	"net/http"

	"dashflow/internal/apierr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	msgLoginFailed   = "Erreur lors de la connexion"
	msgSessionGone   = "Session expirée, veuillez vous reconnecter"
	msgLogoutFailed  = "Erreur lors de la déconnexion"
	msgProfileFailed = "Erreur lors du chargement du profil"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.MsgInvalidInput})
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		Respond(c, err, msgLoginFailed)
		return
	}

	c.JSON(http.StatusOK, session)
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.MsgInvalidInput})
		return
	}

	session, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		Respond(c, err, msgLoginFailed)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetString("userEmail")); err != nil {
		Respond(c, err, msgLogoutFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetString("userEmail"))
	if err != nil {
		Respond(c, err, msgProfileFailed)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Respond writes the error payload for the session endpoints, which fail
// with 401 rather than 404 when the session record is gone.
func Respond(c *gin.Context, err error, fallback string) {
	var ve *apierr.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgSessionGone})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
