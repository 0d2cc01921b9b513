package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

var (
	ErrUserNotFound   = repository.ErrUserNotFound
	ErrUserNameExists = repository.ErrUserNameExists
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByName(ctx context.Context, firstName, lastName string) (domain.User, error)
	FindByGroupID(ctx context.Context, groupID uint) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserGroupRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Group, error)
}

type UserService struct {
	repo   UserRepository
	groups UserGroupRepository
}

func NewUserService(repo UserRepository, groups UserGroupRepository) *UserService {
	return &UserService{
		repo:   repo,
		groups: groups,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUsersByGroup(ctx context.Context, groupID uint) ([]domain.User, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, fmt.Errorf("s.groups.FindByID -> %w", err)
	}

	users, err := s.repo.FindByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByGroupID -> %w", err)
	}

	return users, nil
}

// CreateUser registers a new attendee. The (first, last) name pair is unique
// across the whole system.
func (s *UserService) CreateUser(ctx context.Context, firstName, lastName string, groupID uint) (domain.User, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return domain.User{}, ErrGroupNotFound
		}

		return domain.User{}, fmt.Errorf("s.groups.FindByID -> %w", err)
	}

	if _, err := s.repo.FindByName(ctx, firstName, lastName); err == nil {
		return domain.User{}, ErrUserNameExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByName -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.User{
		FirstName:           firstName,
		LastName:            lastName,
		GroupID:             groupID,
		RegistrationStatus:  domain.NotRegistered,
		AttendanceStatus:    domain.AttendanceUnknown,
		DietaryRestrictions: domain.DietNone,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UserUpdate carries the optional fields of a user edit; nil means "leave
// unchanged".
type UserUpdate struct {
	FirstName           *string
	LastName            *string
	RegistrationStatus  *domain.RegistrationStatus
	AttendanceStatus    *domain.AttendanceStatus
	DietaryRestrictions *domain.DietaryRestrictions
	DietaryInfo         *string
	SongRequest         *string
	GroupID             *uint
	CampingOnSite       *bool
	BrunchSunday        *bool
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.RegistrationStatus != nil {
		user.RegistrationStatus = *update.RegistrationStatus
	}
	if update.AttendanceStatus != nil {
		user.AttendanceStatus = *update.AttendanceStatus
	}
	if update.DietaryRestrictions != nil {
		user.DietaryRestrictions = *update.DietaryRestrictions
	}
	if update.DietaryInfo != nil {
		user.DietaryInfo = *update.DietaryInfo
	}
	if update.SongRequest != nil {
		user.SongRequest = *update.SongRequest
	}
	if update.GroupID != nil {
		if _, err = s.groups.FindByID(ctx, *update.GroupID); err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return domain.User{}, ErrGroupNotFound
			}

			return domain.User{}, fmt.Errorf("s.groups.FindByID -> %w", err)
		}
		user.GroupID = *update.GroupID
	}
	if update.CampingOnSite != nil {
		user.CampingOnSite = *update.CampingOnSite
	}
	if update.BrunchSunday != nil {
		user.BrunchSunday = *update.BrunchSunday
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
