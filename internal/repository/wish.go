package repository

import (
	"context"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository/dao"
)

var (
	ErrWishNotFound      = dao.ErrWishNotFound
	ErrCapacityExceeded  = dao.ErrCapacityExceeded
	ErrNoSuchReservation = dao.ErrNoSuchReservation
)

type WishDAO interface {
	Insert(ctx context.Context, wish dao.Wish) (dao.Wish, error)
	FindByID(ctx context.Context, id uint) (dao.Wish, error)
	FindAll(ctx context.Context) ([]dao.Wish, error)
	Update(ctx context.Context, wish dao.Wish) (dao.Wish, error)
	Delete(ctx context.Context, id uint) error
}

type CartDAO interface {
	Reserve(ctx context.Context, groupID, wishID uint, quantity int) error
	FindReservation(ctx context.Context, groupID, wishID uint) (dao.CartReservation, error)
	DeleteReservation(ctx context.Context, groupID, wishID uint) error
	ListReservationsForWish(ctx context.Context, wishID uint) ([]dao.CartReservation, error)
	ListReservationsForGroup(ctx context.Context, groupID uint) ([]dao.CartReservation, error)
	ClearCart(ctx context.Context, groupID uint) error
	SetPaid(ctx context.Context, groupID uint, paid bool) error
}

// WishRepository covers the wish catalog and the cart reservations on it.
type WishRepository struct {
	dao     WishDAO
	cartDAO CartDAO
}

func NewWishRepository(dao WishDAO, cartDAO CartDAO) *WishRepository {
	return &WishRepository{
		dao:     dao,
		cartDAO: cartDAO,
	}
}

func (r *WishRepository) Create(ctx context.Context, wish domain.Wish) (domain.Wish, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(wish))
	if err != nil {
		return domain.Wish{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *WishRepository) FindByID(ctx context.Context, id uint) (domain.Wish, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Wish{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *WishRepository) FindAll(ctx context.Context) ([]domain.Wish, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	wishes := make([]domain.Wish, len(found))
	for i, w := range found {
		wishes[i] = r.daoToDomain(w)
	}

	return wishes, nil
}

func (r *WishRepository) Update(ctx context.Context, wish domain.Wish) (domain.Wish, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(wish))
	if err != nil {
		return domain.Wish{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *WishRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *WishRepository) Reserve(ctx context.Context, groupID, wishID uint, quantity int) error {
	if err := r.cartDAO.Reserve(ctx, groupID, wishID, quantity); err != nil {
		return fmt.Errorf("r.cartDAO.Reserve -> %w", err)
	}

	return nil
}

func (r *WishRepository) FindReservation(ctx context.Context, groupID, wishID uint) (domain.CartReservation, error) {
	found, err := r.cartDAO.FindReservation(ctx, groupID, wishID)
	if err != nil {
		return domain.CartReservation{}, fmt.Errorf("r.cartDAO.FindReservation -> %w", err)
	}

	return r.reservationDaoToDomain(found), nil
}

func (r *WishRepository) DeleteReservation(ctx context.Context, groupID, wishID uint) error {
	if err := r.cartDAO.DeleteReservation(ctx, groupID, wishID); err != nil {
		return fmt.Errorf("r.cartDAO.DeleteReservation -> %w", err)
	}

	return nil
}

// ListReservationsForWish returns value snapshots of every reservation on a
// wish; callers never share live records.
func (r *WishRepository) ListReservationsForWish(ctx context.Context, wishID uint) ([]domain.CartReservation, error) {
	found, err := r.cartDAO.ListReservationsForWish(ctx, wishID)
	if err != nil {
		return nil, fmt.Errorf("r.cartDAO.ListReservationsForWish -> %w", err)
	}

	return r.reservationsDaoToDomain(found), nil
}

func (r *WishRepository) ListReservationsForGroup(ctx context.Context, groupID uint) ([]domain.CartReservation, error) {
	found, err := r.cartDAO.ListReservationsForGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("r.cartDAO.ListReservationsForGroup -> %w", err)
	}

	return r.reservationsDaoToDomain(found), nil
}

func (r *WishRepository) ClearCart(ctx context.Context, groupID uint) error {
	if err := r.cartDAO.ClearCart(ctx, groupID); err != nil {
		return fmt.Errorf("r.cartDAO.ClearCart -> %w", err)
	}

	return nil
}

func (r *WishRepository) SetPaid(ctx context.Context, groupID uint, paid bool) error {
	if err := r.cartDAO.SetPaid(ctx, groupID, paid); err != nil {
		return fmt.Errorf("r.cartDAO.SetPaid -> %w", err)
	}

	return nil
}

func (r *WishRepository) reservationsDaoToDomain(reservations []dao.CartReservation) []domain.CartReservation {
	result := make([]domain.CartReservation, len(reservations))
	for i, res := range reservations {
		result[i] = r.reservationDaoToDomain(res)
	}

	return result
}

func (r *WishRepository) reservationDaoToDomain(res dao.CartReservation) domain.CartReservation {
	return domain.CartReservation{
		WishID:    res.WishID,
		GroupID:   res.GroupID,
		Quantity:  res.Quantity,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func (r *WishRepository) daoToDomain(w dao.Wish) domain.Wish {
	return domain.Wish{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		PictureURL:  w.PictureURL,
		Quantity:    w.Quantity,
		Price:       w.Price,
	}
}

func (r *WishRepository) domainToDao(w domain.Wish) dao.Wish {
	return dao.Wish{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		PictureURL:  w.PictureURL,
		Quantity:    w.Quantity,
		Price:       w.Price,
	}
}
