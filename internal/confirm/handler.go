package confirm

import (
	"errors"
	"net/http"

	"dashflow/internal/apierr"

	"github.com/gin-gonic/gin"
)

const msgNoPending = "Aucune confirmation en attente"

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// GET /api/confirmations
func (h *Handler) Current(c *gin.Context) {
	p, ok := h.store.For(c.GetString("userEmail")).Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoPending})
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/confirmations/:id
func (h *Handler) Confirm(c *gin.Context) {
	slot := h.store.For(c.GetString("userEmail"))

	p, err := slot.Confirm(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, ErrNoPending):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoPending})
		return
	case errors.Is(err, ErrMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "Cette confirmation n'est plus valide"})
		return
	case err != nil:
		apierr.Respond(c, err, p.Failure)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": p.Success})
}

// DELETE /api/confirmations
func (h *Handler) Cancel(c *gin.Context) {
	if !h.store.For(c.GetString("userEmail")).Cancel() {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoPending})
		return
	}
	c.Status(http.StatusNoContent)
}

// ForgetOnSuccess drops the caller's slot once the wrapped handler has
// succeeded. It is mounted on logout.
func (h *Handler) ForgetOnSuccess(c *gin.Context) {
	owner := c.GetString("userEmail")
	c.Next()
	if c.Writer.Status() < http.StatusMultipleChoices {
		h.store.Forget(owner)
	}
}
