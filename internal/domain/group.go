package domain

import "time"

// Group is a team/household unit and the API's authentication principal.
type Group struct {
	ID            uint      `json:"_id"`
	Name          string    `json:"name"`
	Password      string    `json:"-"`
	SuperGroup    bool      `json:"super_group"`
	Paid          bool      `json:"paid"`
	SessionActive bool      `json:"-"`
	Users         []User    `json:"users,omitempty"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
