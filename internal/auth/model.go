package auth

import (
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// SessionUser is the signed-in dashboard user. It is fabricated at login
// and stored keyed by email until logout.
type SessionUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func newSessionUser(name, email string) *SessionUser {
	if name == "" {
		name = nameFromEmail(email)
	}
	return &SessionUser{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      RoleAdmin,
		Avatar:    AvatarURL(name),
		CreatedAt: time.Now().UTC(),
	}
}

// AvatarURL returns a generated initials avatar for name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?background=random&name=" + url.QueryEscape(name)
}

// "jane.doe@example.com" -> "Jane Doe"
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, p := range parts {
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	if len(parts) == 0 {
		return email
	}
	return strings.Join(parts, " ")
}
