package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrGroupNameExists = errors.New("group name already taken")
	ErrGroupNotFound   = errors.New("group does not exist")
)

type Group struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"uniqueIndex;size:32;not null"`
	Password string `gorm:"size:128;not null"`

	SuperGroup    bool `gorm:"not null;default:false"`
	Paid          bool `gorm:"not null;default:false"`
	SessionActive bool `gorm:"not null;default:false"`

	Users []User `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type GroupDAO struct {
	db *gorm.DB
}

func NewGroupDAO(db *gorm.DB) *GroupDAO {
	return &GroupDAO{
		db: db,
	}
}

func (d *GroupDAO) Insert(ctx context.Context, group Group) (Group, error) {
	result := d.db.WithContext(ctx).Create(&group)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.ConstraintName, "name") {
			return Group{}, ErrGroupNameExists
		}

		return Group{}, result.Error
	}

	return group, nil
}

func (d *GroupDAO) FindByID(ctx context.Context, id uint) (Group, error) {
	var group Group

	result := d.db.WithContext(ctx).First(&group, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Group{}, ErrGroupNotFound
		}

		return Group{}, result.Error
	}

	return group, nil
}

func (d *GroupDAO) FindByName(ctx context.Context, name string) (Group, error) {
	var group Group

	result := d.db.WithContext(ctx).First(&group, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Group{}, ErrGroupNotFound
		}

		return Group{}, result.Error
	}

	return group, nil
}

func (d *GroupDAO) FindAll(ctx context.Context) ([]Group, error) {
	var groups []Group

	result := d.db.WithContext(ctx).Order("id").Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}

	return groups, nil
}

func (d *GroupDAO) Update(ctx context.Context, group Group) (Group, error) {
	result := d.db.WithContext(ctx).Save(&group)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.ConstraintName, "name") {
			return Group{}, ErrGroupNameExists
		}

		return Group{}, result.Error
	}

	return group, nil
}

// Delete removes a group, its users (FK cascade) and any cart reservations
// the group still holds, in one transaction.
func (d *GroupDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&CartReservation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("group_id = ?", id).Delete(&User{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Group{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}

		return nil
	})
}

func (d *GroupDAO) SetSessionActive(ctx context.Context, id uint, active bool) error {
	result := d.db.WithContext(ctx).
		Model(&Group{}).
		Where("id = ?", id).
		Update("session_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}
