package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrWishNotFound = errors.New("wish does not exist")

type Wish struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"size:64;not null"`
	Description string `gorm:"size:512"`
	PictureURL  string `gorm:"size:100"`

	Quantity int `gorm:"not null;default:1"`
	Price    int `gorm:"not null"`
}

type WishDAO struct {
	db *gorm.DB
}

func NewWishDAO(db *gorm.DB) *WishDAO {
	return &WishDAO{
		db: db,
	}
}

func (d *WishDAO) Insert(ctx context.Context, wish Wish) (Wish, error) {
	result := d.db.WithContext(ctx).Create(&wish)
	if result.Error != nil {
		return Wish{}, result.Error
	}

	return wish, nil
}

func (d *WishDAO) FindByID(ctx context.Context, id uint) (Wish, error) {
	var wish Wish

	result := d.db.WithContext(ctx).First(&wish, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Wish{}, ErrWishNotFound
		}

		return Wish{}, result.Error
	}

	return wish, nil
}

func (d *WishDAO) FindAll(ctx context.Context) ([]Wish, error) {
	var wishes []Wish

	result := d.db.WithContext(ctx).Order("id").Find(&wishes)
	if result.Error != nil {
		return nil, result.Error
	}

	return wishes, nil
}

func (d *WishDAO) Update(ctx context.Context, wish Wish) (Wish, error) {
	result := d.db.WithContext(ctx).Save(&wish)
	if result.Error != nil {
		return Wish{}, result.Error
	}

	return wish, nil
}

// Delete removes a wish together with every reservation held on it.
func (d *WishDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wish_id = ?", id).Delete(&CartReservation{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Wish{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWishNotFound
		}

		return nil
	})
}
