package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

var (
	ErrWishNotFound      = repository.ErrWishNotFound
	ErrCapacityExceeded  = repository.ErrCapacityExceeded
	ErrNoSuchReservation = repository.ErrNoSuchReservation
	ErrInvalidQuantity   = errors.New("reservation quantity must be at least 1")
)

type CartWishRepository interface {
	Create(ctx context.Context, wish domain.Wish) (domain.Wish, error)
	FindByID(ctx context.Context, id uint) (domain.Wish, error)
	FindAll(ctx context.Context) ([]domain.Wish, error)
	Update(ctx context.Context, wish domain.Wish) (domain.Wish, error)
	Delete(ctx context.Context, id uint) error
	Reserve(ctx context.Context, groupID, wishID uint, quantity int) error
	FindReservation(ctx context.Context, groupID, wishID uint) (domain.CartReservation, error)
	DeleteReservation(ctx context.Context, groupID, wishID uint) error
	ListReservationsForWish(ctx context.Context, wishID uint) ([]domain.CartReservation, error)
	ListReservationsForGroup(ctx context.Context, groupID uint) ([]domain.CartReservation, error)
	ClearCart(ctx context.Context, groupID uint) error
	SetPaid(ctx context.Context, groupID uint, paid bool) error
}

// CartService tracks the remaining quantity of every wish across the carts
// of all groups and mediates reservation changes.
type CartService struct {
	repo CartWishRepository
}

func NewCartService(repo CartWishRepository) *CartService {
	return &CartService{
		repo: repo,
	}
}

func (s *CartService) GetWish(ctx context.Context, wishID uint) (domain.Wish, error) {
	wish, err := s.repo.FindByID(ctx, wishID)
	if err != nil {
		if errors.Is(err, repository.ErrWishNotFound) {
			return domain.Wish{}, ErrWishNotFound
		}

		return domain.Wish{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return wish, nil
}

func (s *CartService) CreateWish(ctx context.Context, wish domain.Wish) (domain.Wish, error) {
	created, err := s.repo.Create(ctx, wish)
	if err != nil {
		return domain.Wish{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CartService) UpdateWish(ctx context.Context, wish domain.Wish) (domain.Wish, error) {
	if _, err := s.repo.FindByID(ctx, wish.ID); err != nil {
		if errors.Is(err, repository.ErrWishNotFound) {
			return domain.Wish{}, ErrWishNotFound
		}

		return domain.Wish{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, wish)
	if err != nil {
		return domain.Wish{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CartService) DeleteWish(ctx context.Context, wishID uint) error {
	if err := s.repo.Delete(ctx, wishID); err != nil {
		if errors.Is(err, repository.ErrWishNotFound) {
			return ErrWishNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// RemainingQuantity is the wish total minus every group's reservation,
// floored at zero so it is never reported negative.
func (s *CartService) RemainingQuantity(ctx context.Context, wishID uint) (int, error) {
	wish, err := s.repo.FindByID(ctx, wishID)
	if err != nil {
		if errors.Is(err, repository.ErrWishNotFound) {
			return 0, ErrWishNotFound
		}

		return 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	reservations, err := s.repo.ListReservationsForWish(ctx, wishID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.ListReservationsForWish -> %w", err)
	}

	remaining := wish.Quantity
	for _, res := range reservations {
		remaining -= res.Quantity
	}
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

// GetWishlist returns every wish with its remaining quantity and the amount
// the calling group has reserved.
func (s *CartService) GetWishlist(ctx context.Context, groupID uint) ([]domain.WishStatus, error) {
	wishes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	ownCart := make(map[uint]int)
	reservations, err := s.repo.ListReservationsForGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListReservationsForGroup -> %w", err)
	}
	for _, res := range reservations {
		ownCart[res.WishID] = res.Quantity
	}

	statuses := make([]domain.WishStatus, len(wishes))
	for i, wish := range wishes {
		remaining, err := s.RemainingQuantity(ctx, wish.ID)
		if err != nil {
			return nil, err
		}

		statuses[i] = domain.WishStatus{
			Wish:      wish,
			Remaining: remaining,
			InOwnCart: ownCart[wish.ID],
		}
	}

	return statuses, nil
}

// Reserve sets the quantity a group claims on a wish. An existing
// reservation is overwritten (set, not increment) and only has to fit the
// wish total; a new reservation has to fit what is still remaining. The
// bound check and the write are one atomic step in the repository, so a
// failed reserve leaves no partial effect.
func (s *CartService) Reserve(ctx context.Context, groupID, wishID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if err := s.repo.Reserve(ctx, groupID, wishID, quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrWishNotFound):
			return ErrWishNotFound
		case errors.Is(err, repository.ErrCapacityExceeded):
			return ErrCapacityExceeded
		}

		return fmt.Errorf("s.repo.Reserve -> %w", err)
	}

	return nil
}

func (s *CartService) Unreserve(ctx context.Context, groupID, wishID uint) error {
	if err := s.repo.DeleteReservation(ctx, groupID, wishID); err != nil {
		if errors.Is(err, repository.ErrNoSuchReservation) {
			return ErrNoSuchReservation
		}

		return fmt.Errorf("s.repo.DeleteReservation -> %w", err)
	}

	return nil
}

// ClearCart drops every reservation the group holds and resets its paid
// flag, atomically.
func (s *CartService) ClearCart(ctx context.Context, groupID uint) error {
	if err := s.repo.ClearCart(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return ErrGroupNotFound
		}

		return fmt.Errorf("s.repo.ClearCart -> %w", err)
	}

	return nil
}

// MarkPaid flips the manual payment flag. It deliberately does not validate
// the cart contents; payment confirmation happens out-of-band.
func (s *CartService) MarkPaid(ctx context.Context, groupID uint, paid bool) error {
	if err := s.repo.SetPaid(ctx, groupID, paid); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return ErrGroupNotFound
		}

		return fmt.Errorf("s.repo.SetPaid -> %w", err)
	}

	return nil
}
