package domain

import "time"

type RegistrationStatus string

const (
	NotRegistered RegistrationStatus = "Not registered"
	Registered    RegistrationStatus = "Registered"
)

type AttendanceStatus string

const (
	Attending         AttendanceStatus = "Attending"
	NotAttending      AttendanceStatus = "Not Attending"
	AttendanceUnknown AttendanceStatus = "Unknown"
)

type DietaryRestrictions string

const (
	DietNone   DietaryRestrictions = "None"
	Vegetarian DietaryRestrictions = "Vegetarian"
	Vegan      DietaryRestrictions = "Vegan"
)

type User struct {
	ID                  uint                `json:"_id"`
	FirstName           string              `json:"firstName"`
	LastName            string              `json:"lastName"`
	GroupID             uint                `json:"groupId"`
	RegistrationStatus  RegistrationStatus  `json:"registrationStatus"`
	AttendanceStatus    AttendanceStatus    `json:"attendanceStatus"`
	DietaryRestrictions DietaryRestrictions `json:"dietaryRestrictions"`
	DietaryInfo         string              `json:"dietaryInfo"`
	SongRequest         string              `json:"songRequest"`
	CampingOnSite       bool                `json:"camping"`
	BrunchSunday        bool                `json:"brunch"`
	CreatedAt           time.Time           `json:"-"`
	UpdatedAt           time.Time           `json:"-"`
}
