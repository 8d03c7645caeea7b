package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/papinesquik/SmokeRider/internal/db"
	"github.com/papinesquik/SmokeRider/internal/repository"
)

type PositionRepo struct {
	db db.DB
}

func NewPositionRepo(db db.DB) *PositionRepo {
	return &PositionRepo{db: db}
}

func (r *PositionRepo) GetByUID(ctx context.Context, uid string) (*repository.Position, error) {
	var pos repository.Position
	err := r.db.Get(ctx, &pos, `
        SELECT uid, city, street, latitude, longitude, updated_at
        FROM positions WHERE uid = $1
    `, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &pos, nil
}

// Upsert replaces the user's single position record. Positions are written
// only by their owner, so last-write-wins is fine here.
func (r *PositionRepo) Upsert(ctx context.Context, pos *repository.Position) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO positions (uid, city, street, latitude, longitude, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (uid) DO UPDATE
        SET city = EXCLUDED.city,
            street = EXCLUDED.street,
            latitude = EXCLUDED.latitude,
            longitude = EXCLUDED.longitude,
            updated_at = EXCLUDED.updated_at
    `, pos.UID, pos.City, pos.Street, pos.Latitude, pos.Longitude, time.Now().UTC())
	return err
}
