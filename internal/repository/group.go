package repository

import (
	"context"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository/dao"
)

var (
	ErrGroupNameExists = dao.ErrGroupNameExists
	ErrGroupNotFound   = dao.ErrGroupNotFound
)

type GroupDAO interface {
	Insert(ctx context.Context, group dao.Group) (dao.Group, error)
	FindByID(ctx context.Context, id uint) (dao.Group, error)
	FindByName(ctx context.Context, name string) (dao.Group, error)
	FindAll(ctx context.Context) ([]dao.Group, error)
	Update(ctx context.Context, group dao.Group) (dao.Group, error)
	Delete(ctx context.Context, id uint) error
	SetSessionActive(ctx context.Context, id uint, active bool) error
}

type GroupRepository struct {
	dao GroupDAO
}

func NewGroupRepository(dao GroupDAO) *GroupRepository {
	return &GroupRepository{
		dao: dao,
	}
}

func (r *GroupRepository) Create(ctx context.Context, group domain.Group) (domain.Group, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(group))
	if err != nil {
		return domain.Group{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint) (domain.Group, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Group{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GroupRepository) FindByName(ctx context.Context, name string) (domain.Group, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.Group{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GroupRepository) FindAll(ctx context.Context) ([]domain.Group, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	groups := make([]domain.Group, len(found))
	for i, g := range found {
		groups[i] = r.daoToDomain(g)
	}

	return groups, nil
}

func (r *GroupRepository) Update(ctx context.Context, group domain.Group) (domain.Group, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(group))
	if err != nil {
		return domain.Group{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GroupRepository) SetSessionActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetSessionActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetSessionActive -> %w", err)
	}

	return nil
}

func (r *GroupRepository) daoToDomain(g dao.Group) domain.Group {
	return domain.Group{
		ID:            g.ID,
		Name:          g.Name,
		Password:      g.Password,
		SuperGroup:    g.SuperGroup,
		Paid:          g.Paid,
		SessionActive: g.SessionActive,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func (r *GroupRepository) domainToDao(g domain.Group) dao.Group {
	return dao.Group{
		ID:            g.ID,
		Name:          g.Name,
		Password:      g.Password,
		SuperGroup:    g.SuperGroup,
		Paid:          g.Paid,
		SessionActive: g.SessionActive,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
