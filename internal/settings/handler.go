package settings

import (
	"context"
	"net/http"

	"dashflow/internal/apierr"
	"dashflow/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	msgLoadFailed = "Erreur lors du chargement des paramètres"
	msgSaveFailed = "Erreur lors de l'enregistrement des paramètres"
)

// ProfileService reads and edits the session user's profile.
type ProfileService interface {
	Me(ctx context.Context, email string) (*auth.SessionUser, error)
	UpdateProfile(ctx context.Context, email, name, avatar string) (*auth.SessionUser, error)
}

// Preferences are server-side settings the page displays read-only.
type Preferences struct {
	PageSize int `json:"page_size"`
}

type updateRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Handler struct {
	profiles ProfileService
	prefs    Preferences
}

func NewHandler(profiles ProfileService, prefs Preferences) *Handler {
	return &Handler{profiles: profiles, prefs: prefs}
}

// GET /api/settings
func (h *Handler) Get(c *gin.Context) {
	user, err := h.profiles.Me(c.Request.Context(), c.GetString("userEmail"))
	if err != nil {
		auth.Respond(c, err, msgLoadFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":     user,
		"preferences": h.prefs,
	})
}

// PUT /api/settings
// Email is the session key and is not editable.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.MsgInvalidInput})
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), c.GetString("userEmail"), req.Name, req.Avatar)
	if err != nil {
		auth.Respond(c, err, msgSaveFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Paramètres enregistrés avec succès",
		"profile": user,
	})
}
