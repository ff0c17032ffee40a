package users

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"dashflow/internal/apierr"
	"dashflow/internal/confirm"
	"dashflow/internal/listing"

	"github.com/gin-gonic/gin"
)

const (
	msgListFailed   = "Erreur lors du chargement des utilisateurs"
	msgGetFailed    = "Erreur lors du chargement de l'utilisateur"
	msgCreateFailed = "Erreur lors de la création de l'utilisateur"
	msgUpdateFailed = "Erreur lors de la mise à jour de l'utilisateur"
	msgDeleteFailed = "Erreur lors de la suppression de l'utilisateur"
)

type Handler struct {
	service  *Service
	confirms *confirm.Store
	pageSize int
}

func NewHandler(service *Service, confirms *confirm.Store, pageSize int) *Handler {
	return &Handler{service: service, confirms: confirms, pageSize: pageSize}
}

// GET /api/users
func (h *Handler) List(c *gin.Context) {
	params, err := listing.ParseParams(c.Request.URL.Query(), h.pageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres de liste invalides"})
		return
	}

	page, err := h.service.List(c.Request.Context(), params, Filter{
		Status: c.Query("status"),
		Role:   c.Query("role"),
	})
	if err != nil {
		apierr.Respond(c, err, msgListFailed)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/users/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Respond(c, err, msgGetFailed)
		return
	}

	c.JSON(http.StatusOK, user)
}

// POST /api/users
func (h *Handler) Create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.MsgInvalidInput})
		return
	}

	user, err := h.service.Create(c.Request.Context(), c.GetString("userEmail"), in)
	if err != nil {
		apierr.Respond(c, err, msgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilisateur créé avec succès",
		"user":    user,
	})
}

// PUT /api/users/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.MsgInvalidInput})
		return
	}

	user, err := h.service.Update(c.Request.Context(), c.GetString("userEmail"), id, in)
	if err != nil {
		apierr.Respond(c, err, msgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateur mis à jour avec succès",
		"user":    user,
	})
}

// DELETE /api/users/:id only queues the deletion; it runs once the session
// confirms it through /api/confirmations/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Respond(c, err, msgDeleteFailed)
		return
	}

	actor := c.GetString("userEmail")
	pending := h.confirms.For(actor).Request(confirm.Prompt{
		Title:   "Supprimer l'utilisateur",
		Message: fmt.Sprintf("Êtes-vous sûr de vouloir supprimer %s ? Cette action est irréversible.", user.Name),
		Success: "Utilisateur supprimé avec succès",
		Failure: msgDeleteFailed,
	}, func(ctx context.Context) error {
		return h.service.Delete(ctx, actor, id)
	})

	c.JSON(http.StatusAccepted, gin.H{"confirmation": pending})
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return 0, false
	}
	return id, true
}
