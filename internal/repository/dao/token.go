package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// TokenBlocklist stores revoked JWTs; membership makes a token invalid
// regardless of its expiry.
type TokenBlocklist struct {
	ID uint `gorm:"primaryKey"`

	Token string `gorm:"size:512;not null;index"`

	CreatedAt time.Time `gorm:"not null"`
}

type TokenDAO struct {
	db *gorm.DB
}

func NewTokenDAO(db *gorm.DB) *TokenDAO {
	return &TokenDAO{
		db: db,
	}
}

func (d *TokenDAO) Insert(ctx context.Context, token string) error {
	return d.db.WithContext(ctx).Create(&TokenBlocklist{Token: token}).Error
}

func (d *TokenDAO) Exists(ctx context.Context, token string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&TokenBlocklist{}).
		Where("token = ?", token).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
