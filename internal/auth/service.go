package auth

import (
	"context"
	"errors"
	"strings"

	"dashflow/internal/apierr"

	"github.com/rs/zerolog/log"
)

// Session is what login and register hand back to the browser.
type Session struct {
	Token string       `json:"token"`
	User  *SessionUser `json:"user"`
}

type Service struct {
	repo   SessionRepository
	tokens *TokenManager
}

func NewService(repo SessionRepository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// LOGIN
// Any non-empty email is accepted; the password is never checked.
// A session that already exists for the email is reused so profile edits
// survive a second login.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apierr.Invalid("email", "L'email est requis")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrSessionNotFound) {
		user = newSessionUser("", email)
		if err := s.repo.Save(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Invalid("name", "Le nom est requis")
	}
	if email == "" {
		return nil, apierr.Invalid("email", "L'email est requis")
	}

	user := newSessionUser(name, email)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// LOGOUT
func (s *Service) Logout(ctx context.Context, email string) error {
	if err := s.repo.Delete(ctx, normalizeEmail(email)); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("session closed")
	return nil
}

func (s *Service) Me(ctx context.Context, email string) (*SessionUser, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

// UpdateProfile changes the display name and avatar. An empty avatar is
// regenerated from the name.
func (s *Service) UpdateProfile(ctx context.Context, email, name, avatar string) (*SessionUser, error) {
	name = strings.TrimSpace(name)
	avatar = strings.TrimSpace(avatar)
	if name == "" {
		return nil, apierr.Invalid("name", "Le nom est requis")
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Avatar = avatar
	if user.Avatar == "" {
		user.Avatar = AvatarURL(name)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) issue(user *SessionUser) (*Session, error) {
	token, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", user.Email).Msg("session opened")
	return &Session{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
