// Package apierr turns errors into the JSON error payload the dashboard
// shows to the user. Messages are in French, like the UI toasts.
package apierr

import (
	"context"
	"errors"
	"net"
	"net/http"

	"dashflow/internal/listing"
	"dashflow/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	MsgNotFound     = "Ressource introuvable"
	MsgInvalidInput = "Données invalides"
	MsgTimeout      = "Le serveur distant ne répond pas, veuillez réessayer"
	MsgUnauthorized = "Veuillez vous connecter"
	MsgForbidden    = "Accès refusé"
	MsgInternal     = "Une erreur inattendue est survenue"
	MsgUnknownSort  = "Champ de tri inconnu"
)

// ValidationError reports a rejected field with a user facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Status picks the HTTP status for err.
func Status(err error) int {
	var ve *ValidationError
	var se *upstream.StatusError

	switch {
	case errors.As(err, &ve), errors.Is(err, listing.ErrUnknownSortField):
		return http.StatusBadRequest
	case errors.Is(err, upstream.ErrNotFound):
		return http.StatusNotFound
	case isTimeout(err):
		return http.StatusGatewayTimeout
	case errors.As(err, &se):
		if se.Code >= 400 && se.Code < 500 {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// Message picks the text shown to the user; fallback describes the failed
// operation, e.g. "Erreur lors du chargement des utilisateurs".
func Message(err error, fallback string) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, listing.ErrUnknownSortField):
		return MsgUnknownSort
	case errors.Is(err, upstream.ErrNotFound):
		return MsgNotFound
	case isTimeout(err):
		return MsgTimeout
	default:
		return fallback
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Respond logs err and writes {"error": message} with the matching status.
func Respond(c *gin.Context, err error, fallback string) {
	status := Status(err)
	msg := Message(err, fallback)

	evt := log.Warn()
	if status >= 500 {
		evt = log.Error()
	}
	evt.Err(err).
		Str("path", c.FullPath()).
		Int("status", status).
		Msg(fallback)

	c.JSON(status, gin.H{"error": msg})
}

// Abort writes a fixed status and message and stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
