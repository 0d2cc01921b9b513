package domain

import "time"

// Wish is a giftable catalog item with a finite shared quantity.
type Wish struct {
	ID          uint   `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PictureURL  string `json:"pictureUrl"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"`
}

// CartReservation is a group's claim on some quantity of a wish.
type CartReservation struct {
	WishID    uint      `json:"wish_id"`
	GroupID   uint      `json:"group_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// WishStatus is a wish as presented to a group: the catalog entry plus how
// many items are still available and how many this group has in its cart.
type WishStatus struct {
	Wish
	Remaining int `json:"remaining"`
	InOwnCart int `json:"in_own_cart"`
}
