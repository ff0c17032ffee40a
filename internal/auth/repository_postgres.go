package auth

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Save(ctx context.Context, user *SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO sessions (email, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, user.Email, data)
	return err
}

func (r *PostgresSessionRepository) FindByEmail(ctx context.Context, email string) (*SessionUser, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `
		SELECT data
		FROM sessions
		WHERE email = $1
	`, email).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var user SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE email = $1`, email)
	return err
}
