package sqlite

import (
	"context"

	"github.com/harbourlight/accountd/internal/accounts/domain"
	"github.com/harbourlight/accountd/internal/accounts/store/drivers/sqlite/gen"
)

type accessTokensRepo struct {
	q *gen.Queries
}

func (r *accessTokensRepo) GetAccessTokenByUserID(
	ctx context.Context,
	userID string,
) (domain.AccessToken, error) {
	row, err := r.q.GetAccessTokenByUserID(ctx, userID)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return mapAccessToken(row), nil
}

func (r *accessTokensRepo) GetAccessTokenByToken(
	ctx context.Context,
	token string,
) (domain.AccessToken, error) {
	row, err := r.q.GetAccessTokenByToken(ctx, token)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return mapAccessToken(row), nil
}

func (r *accessTokensRepo) CreateAccessToken(ctx context.Context, t domain.AccessToken) error {
	return mapConflict(r.q.CreateAccessToken(ctx, gen.CreateAccessTokenParams{
		UserID: t.UserID,
		Token:  t.Token,
	}))
}
