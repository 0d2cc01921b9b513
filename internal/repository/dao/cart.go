package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCapacityExceeded  = errors.New("not enough items left of this wish")
	ErrNoSuchReservation = errors.New("group holds no reservation on this wish")
)

// CartReservation is the association entity between wishes and groups,
// keyed by (wish, group).
type CartReservation struct {
	WishID  uint `gorm:"primaryKey;autoIncrement:false"`
	GroupID uint `gorm:"primaryKey;autoIncrement:false"`

	Quantity int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CartDAO struct {
	db *gorm.DB
}

func NewCartDAO(db *gorm.DB) *CartDAO {
	return &CartDAO{
		db: db,
	}
}

// Reserve sets (not increments) the quantity a group holds on a wish. The
// capacity check and the write run in one transaction holding a row lock on
// the wish, so two concurrent reserves on the same wish serialize and the
// sum of reservations cannot exceed the wish quantity.
func (d *CartDAO) Reserve(ctx context.Context, groupID, wishID uint, quantity int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wish Wish
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wish, wishID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWishNotFound
			}

			return err
		}

		var existing CartReservation
		err := tx.First(&existing, "wish_id = ? AND group_id = ?", wishID, groupID).Error
		switch {
		case err == nil:
			// The group already holds a reservation; the new quantity
			// replaces it and only has to fit the total.
			if quantity > wish.Quantity {
				return ErrCapacityExceeded
			}
			existing.Quantity = quantity

			return tx.Save(&existing).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			var reserved int
			err = tx.Model(&CartReservation{}).
				Where("wish_id = ?", wishID).
				Select("COALESCE(SUM(quantity), 0)").
				Scan(&reserved).Error
			if err != nil {
				return err
			}

			remaining := wish.Quantity - reserved
			if remaining < 0 {
				remaining = 0
			}
			if quantity > remaining {
				return ErrCapacityExceeded
			}

			return tx.Create(&CartReservation{
				WishID:   wishID,
				GroupID:  groupID,
				Quantity: quantity,
			}).Error

		default:
			return err
		}
	})
}

func (d *CartDAO) FindReservation(ctx context.Context, groupID, wishID uint) (CartReservation, error) {
	var reservation CartReservation

	result := d.db.WithContext(ctx).
		First(&reservation, "wish_id = ? AND group_id = ?", wishID, groupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CartReservation{}, ErrNoSuchReservation
		}

		return CartReservation{}, result.Error
	}

	return reservation, nil
}

func (d *CartDAO) DeleteReservation(ctx context.Context, groupID, wishID uint) error {
	result := d.db.WithContext(ctx).
		Where("wish_id = ? AND group_id = ?", wishID, groupID).
		Delete(&CartReservation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoSuchReservation
	}

	return nil
}

func (d *CartDAO) ListReservationsForWish(ctx context.Context, wishID uint) ([]CartReservation, error) {
	var reservations []CartReservation

	result := d.db.WithContext(ctx).
		Where("wish_id = ?", wishID).
		Order("group_id").
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

func (d *CartDAO) ListReservationsForGroup(ctx context.Context, groupID uint) ([]CartReservation, error) {
	var reservations []CartReservation

	result := d.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("wish_id").
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

// ClearCart deletes every reservation the group holds and resets its paid
// flag, all-or-nothing.
func (d *CartDAO) ClearCart(ctx context.Context, groupID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&CartReservation{}).Error; err != nil {
			return err
		}

		result := tx.Model(&Group{}).Where("id = ?", groupID).Update("paid", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}

		return nil
	})
}

func (d *CartDAO) SetPaid(ctx context.Context, groupID uint, paid bool) error {
	result := d.db.WithContext(ctx).
		Model(&Group{}).
		Where("id = ?", groupID).
		Update("paid", paid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}
