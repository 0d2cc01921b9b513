package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrPaymentInfoNotFound = errors.New("payment info not available")

type PaymentInfo struct {
	ID uint `gorm:"primaryKey"`

	Beneficiary string `gorm:"size:128;not null"`
	IBAN        string `gorm:"size:64;not null"`
	BIC         string `gorm:"size:16;not null"`
	Bank        string `gorm:"size:128;not null"`
}

type PaymentInfoDAO struct {
	db *gorm.DB
}

func NewPaymentInfoDAO(db *gorm.DB) *PaymentInfoDAO {
	return &PaymentInfoDAO{
		db: db,
	}
}

func (d *PaymentInfoDAO) Find(ctx context.Context) (PaymentInfo, error) {
	var info PaymentInfo

	result := d.db.WithContext(ctx).First(&info)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PaymentInfo{}, ErrPaymentInfoNotFound
		}

		return PaymentInfo{}, result.Error
	}

	return info, nil
}
