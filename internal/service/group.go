package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

var ErrGroupNameExists = repository.ErrGroupNameExists

type GroupRepository interface {
	Create(ctx context.Context, group domain.Group) (domain.Group, error)
	FindByID(ctx context.Context, id uint) (domain.Group, error)
	FindByName(ctx context.Context, name string) (domain.Group, error)
	FindAll(ctx context.Context) ([]domain.Group, error)
	Update(ctx context.Context, group domain.Group) (domain.Group, error)
	Delete(ctx context.Context, id uint) error
}

type GroupUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByGroupID(ctx context.Context, groupID uint) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

type GroupService struct {
	repo  GroupRepository
	users GroupUserRepository
}

func NewGroupService(repo GroupRepository, users GroupUserRepository) *GroupService {
	return &GroupService{
		repo:  repo,
		users: users,
	}
}

func (s *GroupService) GetGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return groups, nil
}

func (s *GroupService) GetGroup(ctx context.Context, id uint) (domain.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Group{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return group, nil
}

// GetGroupWithUsers returns a group with its member list attached.
func (s *GroupService) GetGroupWithUsers(ctx context.Context, id uint) (domain.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Group{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	users, err := s.users.FindByGroupID(ctx, group.ID)
	if err != nil {
		return domain.Group{}, fmt.Errorf("s.users.FindByGroupID -> %w", err)
	}
	group.Users = users

	return group, nil
}

// CreateGroup registers a new group and optionally reassigns existing users
// into it.
func (s *GroupService) CreateGroup(ctx context.Context, name, password string, superGroup bool, memberIDs []uint) (domain.Group, error) {
	name = NormalizeGroupName(name)

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return domain.Group{}, ErrGroupNameExists
	} else if !errors.Is(err, repository.ErrGroupNotFound) {
		return domain.Group{}, fmt.Errorf("s.repo.FindByName -> %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return domain.Group{}, err
	}

	created, err := s.repo.Create(ctx, domain.Group{
		Name:       name,
		Password:   hash,
		SuperGroup: superGroup,
	})
	if err != nil {
		return domain.Group{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.assignMembers(ctx, created.ID, memberIDs); err != nil {
		return domain.Group{}, err
	}

	return created, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, id uint, name, password *string, superGroup *bool, memberIDs []uint) (domain.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return domain.Group{}, ErrGroupNotFound
		}

		return domain.Group{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if name != nil {
		normalized := NormalizeGroupName(*name)
		if normalized != group.Name {
			if _, err = s.repo.FindByName(ctx, normalized); err == nil {
				return domain.Group{}, ErrGroupNameExists
			} else if !errors.Is(err, repository.ErrGroupNotFound) {
				return domain.Group{}, fmt.Errorf("s.repo.FindByName -> %w", err)
			}
			group.Name = normalized
		}
	}
	if password != nil {
		hash, err := HashPassword(*password)
		if err != nil {
			return domain.Group{}, err
		}
		group.Password = hash
	}
	if superGroup != nil {
		group.SuperGroup = *superGroup
	}

	updated, err := s.repo.Update(ctx, group)
	if err != nil {
		return domain.Group{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if err = s.assignMembers(ctx, updated.ID, memberIDs); err != nil {
		return domain.Group{}, err
	}

	return updated, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return ErrGroupNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *GroupService) assignMembers(ctx context.Context, groupID uint, memberIDs []uint) error {
	for _, userID := range memberIDs {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}

			return fmt.Errorf("s.users.FindByID -> %w", err)
		}

		user.GroupID = groupID
		if _, err = s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("s.users.Update -> %w", err)
		}
	}

	return nil
}
