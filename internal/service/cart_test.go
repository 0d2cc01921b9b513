package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saamb/saamb-api/internal/domain"
	"github.com/saamb/saamb-api/internal/repository"
)

type resKey struct {
	groupID uint
	wishID  uint
}

// fakeWishRepo mirrors the reservation semantics of the real repository:
// reserving sets (not increments), an existing reservation only has to fit
// the wish total, a new one has to fit what is remaining.
type fakeWishRepo struct {
	nextID       uint
	wishes       map[uint]domain.Wish
	reservations map[resKey]int
	paid         map[uint]bool
}

func newFakeWishRepo() *fakeWishRepo {
	return &fakeWishRepo{
		wishes:       make(map[uint]domain.Wish),
		reservations: make(map[resKey]int),
		paid:         make(map[uint]bool),
	}
}

func (f *fakeWishRepo) Create(_ context.Context, wish domain.Wish) (domain.Wish, error) {
	f.nextID++
	wish.ID = f.nextID
	f.wishes[wish.ID] = wish

	return wish, nil
}

func (f *fakeWishRepo) FindByID(_ context.Context, id uint) (domain.Wish, error) {
	wish, ok := f.wishes[id]
	if !ok {
		return domain.Wish{}, repository.ErrWishNotFound
	}

	return wish, nil
}

func (f *fakeWishRepo) FindAll(_ context.Context) ([]domain.Wish, error) {
	wishes := make([]domain.Wish, 0, len(f.wishes))
	for id := uint(1); id <= f.nextID; id++ {
		if wish, ok := f.wishes[id]; ok {
			wishes = append(wishes, wish)
		}
	}

	return wishes, nil
}

func (f *fakeWishRepo) Update(_ context.Context, wish domain.Wish) (domain.Wish, error) {
	if _, ok := f.wishes[wish.ID]; !ok {
		return domain.Wish{}, repository.ErrWishNotFound
	}
	f.wishes[wish.ID] = wish

	return wish, nil
}

func (f *fakeWishRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.wishes[id]; !ok {
		return repository.ErrWishNotFound
	}
	delete(f.wishes, id)
	for key := range f.reservations {
		if key.wishID == id {
			delete(f.reservations, key)
		}
	}

	return nil
}

func (f *fakeWishRepo) Reserve(_ context.Context, groupID, wishID uint, quantity int) error {
	wish, ok := f.wishes[wishID]
	if !ok {
		return repository.ErrWishNotFound
	}

	key := resKey{groupID: groupID, wishID: wishID}
	if _, exists := f.reservations[key]; exists {
		if quantity > wish.Quantity {
			return repository.ErrCapacityExceeded
		}
		f.reservations[key] = quantity

		return nil
	}

	remaining := wish.Quantity
	for k, qty := range f.reservations {
		if k.wishID == wishID {
			remaining -= qty
		}
	}
	if remaining < 0 {
		remaining = 0
	}
	if quantity > remaining {
		return repository.ErrCapacityExceeded
	}
	f.reservations[key] = quantity

	return nil
}

func (f *fakeWishRepo) FindReservation(_ context.Context, groupID, wishID uint) (domain.CartReservation, error) {
	qty, ok := f.reservations[resKey{groupID: groupID, wishID: wishID}]
	if !ok {
		return domain.CartReservation{}, repository.ErrNoSuchReservation
	}

	return domain.CartReservation{GroupID: groupID, WishID: wishID, Quantity: qty}, nil
}

func (f *fakeWishRepo) DeleteReservation(_ context.Context, groupID, wishID uint) error {
	key := resKey{groupID: groupID, wishID: wishID}
	if _, ok := f.reservations[key]; !ok {
		return repository.ErrNoSuchReservation
	}
	delete(f.reservations, key)

	return nil
}

func (f *fakeWishRepo) ListReservationsForWish(_ context.Context, wishID uint) ([]domain.CartReservation, error) {
	var reservations []domain.CartReservation
	for key, qty := range f.reservations {
		if key.wishID == wishID {
			reservations = append(reservations, domain.CartReservation{
				GroupID:  key.groupID,
				WishID:   key.wishID,
				Quantity: qty,
			})
		}
	}

	return reservations, nil
}

func (f *fakeWishRepo) ListReservationsForGroup(_ context.Context, groupID uint) ([]domain.CartReservation, error) {
	var reservations []domain.CartReservation
	for key, qty := range f.reservations {
		if key.groupID == groupID {
			reservations = append(reservations, domain.CartReservation{
				GroupID:  key.groupID,
				WishID:   key.wishID,
				Quantity: qty,
			})
		}
	}

	return reservations, nil
}

func (f *fakeWishRepo) ClearCart(_ context.Context, groupID uint) error {
	for key := range f.reservations {
		if key.groupID == groupID {
			delete(f.reservations, key)
		}
	}
	f.paid[groupID] = false

	return nil
}

func (f *fakeWishRepo) SetPaid(_ context.Context, groupID uint, paid bool) error {
	f.paid[groupID] = paid

	return nil
}

func newCartFixture(t *testing.T) (*CartService, *fakeWishRepo, domain.Wish) {
	t.Helper()

	repo := newFakeWishRepo()
	svc := NewCartService(repo)

	wish, err := svc.CreateWish(context.Background(), domain.Wish{
		Title:    "Fondue set",
		Quantity: 4,
		Price:    90,
	})
	require.NoError(t, err)

	return svc, repo, wish
}

func TestCartService_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("reserving reduces the remaining quantity", func(t *testing.T) {
		svc, _, wish := newCartFixture(t)

		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 3))

		remaining, err := svc.RemainingQuantity(ctx, wish.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})

	t.Run("reserving again replaces the previous quantity", func(t *testing.T) {
		svc, _, wish := newCartFixture(t)

		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 3))
		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 1))

		remaining, err := svc.RemainingQuantity(ctx, wish.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, remaining)
	})

	t.Run("an existing reservation may grow up to the wish total", func(t *testing.T) {
		svc, _, wish := newCartFixture(t)

		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 1))
		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 4))

		remaining, err := svc.RemainingQuantity(ctx, wish.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("a new reservation must fit what is left", func(t *testing.T) {
		svc, repo, wish := newCartFixture(t)

		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 4))

		err := svc.Reserve(ctx, 2, wish.ID, 1)
		assert.ErrorIs(t, err, ErrCapacityExceeded)

		// A failed reserve leaves nothing behind.
		_, err = repo.FindReservation(ctx, 2, wish.ID)
		assert.ErrorIs(t, err, repository.ErrNoSuchReservation)
	})

	t.Run("a single-item wish can only be claimed once", func(t *testing.T) {
		svc, _, _ := newCartFixture(t)

		bike, err := svc.CreateWish(ctx, domain.Wish{Title: "Bicycle", Quantity: 1, Price: 800})
		require.NoError(t, err)

		require.NoError(t, svc.Reserve(ctx, 1, bike.ID, 1))
		assert.ErrorIs(t, svc.Reserve(ctx, 2, bike.ID, 1), ErrCapacityExceeded)
	})

	t.Run("zero and negative quantities are rejected", func(t *testing.T) {
		svc, _, wish := newCartFixture(t)

		assert.ErrorIs(t, svc.Reserve(ctx, 1, wish.ID, 0), ErrInvalidQuantity)
		assert.ErrorIs(t, svc.Reserve(ctx, 1, wish.ID, -2), ErrInvalidQuantity)
	})

	t.Run("reserving an unknown wish fails", func(t *testing.T) {
		svc, _, _ := newCartFixture(t)

		assert.ErrorIs(t, svc.Reserve(ctx, 1, 99, 1), ErrWishNotFound)
	})
}

func TestCartService_Unreserve(t *testing.T) {
	ctx := context.Background()

	t.Run("releasing restores the remaining quantity", func(t *testing.T) {
		svc, _, wish := newCartFixture(t)

		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 3))
		require.NoError(t, svc.Unreserve(ctx, 1, wish.ID))

		remaining, err := svc.RemainingQuantity(ctx, wish.ID)
		require.NoError(t, err)
		assert.Equal(t, wish.Quantity, remaining)
	})

	t.Run("releasing without a reservation fails", func(t *testing.T) {
		svc, _, wish := newCartFixture(t)

		assert.ErrorIs(t, svc.Unreserve(ctx, 1, wish.ID), ErrNoSuchReservation)
	})
}

func TestCartService_RemainingQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("never reports below zero", func(t *testing.T) {
		svc, repo, wish := newCartFixture(t)

		// Simulate stale data: the wish total was lowered after groups
		// had already reserved more than the new total.
		require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 3))
		lowered := wish
		lowered.Quantity = 2
		_, err := repo.Update(ctx, lowered)
		require.NoError(t, err)

		remaining, err := svc.RemainingQuantity(ctx, wish.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})
}

func TestCartService_GetWishlist(t *testing.T) {
	ctx := context.Background()
	svc, _, wish := newCartFixture(t)

	second, err := svc.CreateWish(ctx, domain.Wish{Title: "Wine glasses", Quantity: 6, Price: 60})
	require.NoError(t, err)

	require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 2))
	require.NoError(t, svc.Reserve(ctx, 2, wish.ID, 1))
	require.NoError(t, svc.Reserve(ctx, 2, second.ID, 4))

	statuses, err := svc.GetWishlist(ctx, 2)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, wish.ID, statuses[0].ID)
	assert.Equal(t, 1, statuses[0].Remaining)
	assert.Equal(t, 1, statuses[0].InOwnCart)

	assert.Equal(t, second.ID, statuses[1].ID)
	assert.Equal(t, 2, statuses[1].Remaining)
	assert.Equal(t, 4, statuses[1].InOwnCart)
}

func TestCartService_ClearCart(t *testing.T) {
	ctx := context.Background()
	svc, repo, wish := newCartFixture(t)

	require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 2))
	require.NoError(t, svc.MarkPaid(ctx, 1, true))

	require.NoError(t, svc.ClearCart(ctx, 1))

	remaining, err := svc.RemainingQuantity(ctx, wish.ID)
	require.NoError(t, err)
	assert.Equal(t, wish.Quantity, remaining)
	assert.False(t, repo.paid[1])
}

func TestCartService_DeleteWish(t *testing.T) {
	ctx := context.Background()
	svc, repo, wish := newCartFixture(t)

	require.NoError(t, svc.Reserve(ctx, 1, wish.ID, 2))
	require.NoError(t, svc.DeleteWish(ctx, wish.ID))

	_, err := repo.FindReservation(ctx, 1, wish.ID)
	assert.ErrorIs(t, err, repository.ErrNoSuchReservation)

	assert.ErrorIs(t, svc.DeleteWish(ctx, wish.ID), ErrWishNotFound)
}
