package repository

import (
	"context"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository/dao"
)

var ErrPaymentInfoNotFound = dao.ErrPaymentInfoNotFound

type PaymentInfoDAO interface {
	Find(ctx context.Context) (dao.PaymentInfo, error)
}

type PaymentRepository struct {
	dao PaymentInfoDAO
}

func NewPaymentRepository(dao PaymentInfoDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) Find(ctx context.Context) (domain.PaymentInfo, error) {
	found, err := r.dao.Find(ctx)
	if err != nil {
		return domain.PaymentInfo{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return domain.PaymentInfo{
		ID:          found.ID,
		Beneficiary: found.Beneficiary,
		IBAN:        found.IBAN,
		BIC:         found.BIC,
		Bank:        found.Bank,
	}, nil
}
