package users

import (
	"net/mail"
	"strings"

	"dashflow/internal/apierr"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

type Company struct {
	Name string `json:"name"`
}

// User mirrors a JSONPlaceholder user plus the role and status the
// dashboard manages.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
}

// Input is the body of a create or update request.
type Input struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
}

// Filter narrows a list beyond the free-text query.
type Filter struct {
	Status string
	Role   string
}

// Validate trims the input, applies defaults and checks required fields.
func (in *Input) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)

	if in.Name == "" {
		return apierr.Invalid("name", "Le nom est requis")
	}
	if in.Email == "" {
		return apierr.Invalid("email", "L'email est requis")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apierr.Invalid("email", "L'email n'est pas valide")
	}

	if in.Status == "" {
		in.Status = StatusActive
	}
	if in.Status != StatusActive && in.Status != StatusInactive {
		return apierr.Invalid("status", "Le statut doit être actif ou inactif")
	}

	if in.Role == "" {
		in.Role = RoleUser
	}
	switch in.Role {
	case RoleAdmin, RoleEditor, RoleUser:
	default:
		return apierr.Invalid("role", "Rôle inconnu")
	}

	return nil
}

func (in Input) toUser(id int) User {
	return User{
		ID:       id,
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Website:  in.Website,
		Company:  in.Company,
		Role:     in.Role,
		Status:   in.Status,
	}
}

// withDefaults fills role and status, which JSONPlaceholder does not store.
func (u User) withDefaults() User {
	if u.Role == "" {
		u.Role = RoleUser
		if u.ID == 1 {
			u.Role = RoleAdmin
		}
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return u
}
