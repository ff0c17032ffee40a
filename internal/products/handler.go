package products

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"dashflow/internal/apierr"
	"dashflow/internal/confirm"
	"dashflow/internal/listing"

	"github.com/gin-gonic/gin"
)

const (
	msgListFailed       = "Erreur lors du chargement des produits"
	msgCategoriesFailed = "Erreur lors du chargement des catégories"
	msgGetFailed        = "Erreur lors du chargement du produit"
	msgCreateFailed     = "Erreur lors de la création du produit"
	msgUpdateFailed     = "Erreur lors de la mise à jour du produit"
	msgDeleteFailed     = "Erreur lors de la suppression du produit"
	msgUploadFailed     = "Erreur lors de l'envoi de l'image"
)

type Handler struct {
	service  *Service
	confirms *confirm.Store
	pageSize int
}

func NewHandler(service *Service, confirms *confirm.Store, pageSize int) *Handler {
	return &Handler{service: service, confirms: confirms, pageSize: pageSize}
}

// GET /api/products
func (h *Handler) List(c *gin.Context) {
	params, err := listing.ParseParams(c.Request.URL.Query(), h.pageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres de liste invalides"})
		return
	}

	page, err := h.service.List(c.Request.Context(), params, Filter{Category: c.Query("category")})
	if err != nil {
		apierr.Respond(c, err, msgListFailed)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/products/categories
func (h *Handler) Categories(c *gin.Context) {
	cats, err := h.service.Categories(c.Request.Context())
	if err != nil {
		apierr.Respond(c, err, msgCategoriesFailed)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GET /api/products/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Respond(c, err, msgGetFailed)
		return
	}

	c.JSON(http.StatusOK, product)
}

// POST /api/products
func (h *Handler) Create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apierr.MsgInvalidInput})
		return
	}

	product, err := h.service.Create(c.Request.Context(), c.GetString("userEmail"), in)
	if err != nil {
		apierr.Respond(c, err, msgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit créé avec succès",
		"product": product,
	})
}

// PUT /api/products/:id
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

	product, err := h.service.Update(c.Request.Context(), c.GetString("userEmail"), id, in)
	if err != nil {
		apierr.Respond(c, err, msgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit mis à jour avec succès",
		"product": product,
	})
}

// DELETE /api/products/:id queues the deletion behind a confirmation.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Respond(c, err, msgDeleteFailed)
		return
	}

	actor := c.GetString("userEmail")
	pending := h.confirms.For(actor).Request(confirm.Prompt{
		Title:   "Supprimer le produit",
		Message: fmt.Sprintf("Êtes-vous sûr de vouloir supprimer « %s » ? Cette action est irréversible.", product.Title),
		Success: "Produit supprimé avec succès",
		Failure: msgDeleteFailed,
	}, func(ctx context.Context) error {
		return h.service.Delete(ctx, actor, id)
	})

	c.JSON(http.StatusAccepted, gin.H{"confirmation": pending})
}

// POST /api/products/images
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une image est requise"})
		return
	}

	f, err := file.Open()
	if err != nil {
		apierr.Respond(c, err, msgUploadFailed)
		return
	}
	defer f.Close()

	url, err := h.service.UploadImage(
		c.Request.Context(),
		file.Filename,
		file.Header.Get("Content-Type"),
		file.Size,
		f,
	)
	if errors.Is(err, ErrStorageDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Le stockage des images n'est pas configuré"})
		return
	}
	if err != nil {
		apierr.Respond(c, err, msgUploadFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return 0, false
	}
	return id, true
}
