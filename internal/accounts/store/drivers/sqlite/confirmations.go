package sqlite

import (
	"context"
	"time"

	"github.com/harbourlight/accountd/internal/accounts/domain"
	"github.com/harbourlight/accountd/internal/accounts/store/drivers/sqlite/gen"
)

type confirmationsRepo struct {
	q *gen.Queries
}

func (r *confirmationsRepo) CreateConfirmation(ctx context.Context, c domain.Confirmation) error {
	return mapConflict(r.q.CreateConfirmation(ctx, gen.CreateConfirmationParams{
		ID:        c.ID,
		TokenHash: c.TokenHash,
		UserID:    c.UserID,
		ExpiresAt: c.ExpiresAt,
	}))
}

func (r *confirmationsRepo) GetConfirmationByTokenHash(
	ctx context.Context,
	hash string,
) (domain.Confirmation, error) {
	row, err := r.q.GetConfirmationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Confirmation{}, mapNotFound(err)
	}
	return mapConfirmation(row), nil
}

func (r *confirmationsRepo) MarkConfirmationUsed(ctx context.Context, id string) error {
	return r.q.MarkConfirmationUsed(ctx, id)
}

func (r *confirmationsRepo) DeleteExpiredConfirmations(ctx context.Context) error {
	return r.q.DeleteExpiredConfirmations(ctx, time.Now())
}
