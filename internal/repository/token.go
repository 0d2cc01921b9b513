package repository

import (
	"context"
	"fmt"
)

type TokenDAO interface {
	Insert(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
}

type TokenRepository struct {
	dao TokenDAO
}

func NewTokenRepository(dao TokenDAO) *TokenRepository {
	return &TokenRepository{
		dao: dao,
	}
}

func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	if err := r.dao.Insert(ctx, token); err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := r.dao.Exists(ctx, token)
	if err != nil {
		return false, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	return revoked, nil
}
