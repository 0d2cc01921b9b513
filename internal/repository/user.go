package repository

import (
	"context"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository/dao"
)

var (
	ErrUserNameExists = dao.ErrUserNameExists
	ErrUserNotFound   = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByName(ctx context.Context, firstName, lastName string) (dao.User, error)
	FindByGroupID(ctx context.Context, groupID uint) ([]dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByName(ctx context.Context, firstName, lastName string) (domain.User, error) {
	found, err := r.dao.FindByName(ctx, firstName, lastName)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByGroupID(ctx context.Context, groupID uint) ([]domain.User, error) {
	found, err := r.dao.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByGroupID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = r.daoToDomain(u)
	}

	return result
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		GroupID:             u.GroupID,
		RegistrationStatus:  domain.RegistrationStatus(u.RegistrationStatus),
		AttendanceStatus:    domain.AttendanceStatus(u.AttendanceStatus),
		DietaryRestrictions: domain.DietaryRestrictions(u.DietaryRestrictions),
		DietaryInfo:         u.DietaryInfo,
		SongRequest:         u.SongRequest,
		CampingOnSite:       u.CampingOnSite,
		BrunchSunday:        u.BrunchSunday,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		GroupID:             u.GroupID,
		RegistrationStatus:  string(u.RegistrationStatus),
		AttendanceStatus:    string(u.AttendanceStatus),
		DietaryRestrictions: string(u.DietaryRestrictions),
		DietaryInfo:         u.DietaryInfo,
		SongRequest:         u.SongRequest,
		CampingOnSite:       u.CampingOnSite,
		BrunchSunday:        u.BrunchSunday,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}
