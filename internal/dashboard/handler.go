package dashboard

import (
	"errors"
	"net/http"

	"dashflow/internal/apierr"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /api/dashboard
func (h *Handler) Get(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		var se *SourceError
		if errors.As(err, &se) {
			apierr.Respond(c, se.Err, se.Message)
			return
		}
		apierr.Respond(c, err, "Erreur lors du chargement du tableau de bord")
		return
	}

	c.JSON(http.StatusOK, overview)
}
