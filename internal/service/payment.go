package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

var ErrPaymentInfoNotFound = repository.ErrPaymentInfoNotFound

type PaymentRepository interface {
	Find(ctx context.Context) (domain.PaymentInfo, error)
}

type PaymentService struct {
	repo PaymentRepository
}

func NewPaymentService(repo PaymentRepository) *PaymentService {
	return &PaymentService{
		repo: repo,
	}
}

func (s *PaymentService) GetPaymentInfo(ctx context.Context) (domain.PaymentInfo, error) {
	info, err := s.repo.Find(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentInfoNotFound) {
			return domain.PaymentInfo{}, ErrPaymentInfoNotFound
		}

		return domain.PaymentInfo{}, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return info, nil
}
