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
	ErrUserNameExists = errors.New("user name already taken")
	ErrUserNotFound   = errors.New("user does not exist")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	FirstName string `gorm:"size:64;not null;uniqueIndex:idx_users_full_name"`
	LastName  string `gorm:"size:64;not null;uniqueIndex:idx_users_full_name"`

	GroupID uint `gorm:"not null;index"`

	RegistrationStatus  string `gorm:"size:32;not null;default:'Not registered'"`
	AttendanceStatus    string `gorm:"size:32;not null;default:'Unknown'"`
	DietaryRestrictions string `gorm:"size:32;not null;default:'None'"`

	DietaryInfo string `gorm:"size:512"`
	SongRequest string `gorm:"size:512"`

	CampingOnSite bool `gorm:"not null;default:false"`
	BrunchSunday  bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.ConstraintName, "full_name") {
			return User{}, ErrUserNameExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByName(ctx context.Context, firstName, lastName string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).
		First(&user, "first_name = ? AND last_name = ?", firstName, lastName)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByGroupID(ctx context.Context, groupID uint) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("group_id = ?", groupID).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Save(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.ConstraintName, "full_name") {
			return User{}, ErrUserNameExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
