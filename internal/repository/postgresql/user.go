package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByUID(ctx context.Context, uid string) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, `
        SELECT uid, email, role, active, online, fcm_token, identity_document
        FROM users WHERE uid = $1
    `, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListEligibleRiders returns approved riders currently online.
func (r *UserRepo) ListEligibleRiders(ctx context.Context) ([]*repository.User, error) {
	var users []*repository.User
	err := r.db.Select(ctx, &users, `
        SELECT uid, email, role, active, online, fcm_token, identity_document
        FROM users
        WHERE role = 'rider' AND active = true AND online = true
    `)
	if err != nil {
		return nil, fmt.Errorf("list eligible riders: %w", err)
	}
	return users, nil
}
