package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errInvalidQuantity = errors.New("quantity must be at least 1")

type AddGroupRequest struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	SuperGroup bool   `json:"super_group"`
	MembersID  []uint `json:"members_id"`
}

func (req *AddGroupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 32)),
		validation.Field(&req.Password, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type EditGroupRequest struct {
	GroupID    uint    `json:"group_id"`
	Name       *string `json:"name"`
	Password   *string `json:"password"`
	SuperGroup *bool   `json:"super_group"`
	MembersID  []uint  `json:"members_id"`
}

func (req *EditGroupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.GroupID, validation.Required, validation.Min(uint(1))),
	)
	if err != nil {
		return err
	}

	if req.Name != nil {
		if err = validation.Validate(*req.Name, validation.Required, validation.Length(2, 32)); err != nil {
			return err
		}
	}
	if req.Password != nil {
		return validatePassword(*req.Password)
	}

	return nil
}

type DeleteGroupRequest struct {
	GroupID uint `json:"group_id"`
}

func (req *DeleteGroupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GroupID, validation.Required, validation.Min(uint(1))),
	)
}

type AddUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	GroupID   uint   `json:"group_id"`
}

func (req *AddUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.GroupID, validation.Required, validation.Min(uint(1))),
	)
}

type EditUserRequest struct {
	UserID              uint    `json:"user_id"`
	FirstName           *string `json:"first_name"`
	LastName            *string `json:"last_name"`
	RegistrationStatus  *string `json:"registration_status"`
	AttendanceStatus    *string `json:"attendance_status"`
	DietaryRestrictions *string `json:"dietary_restrictions"`
	DietaryInfo         *string `json:"dietary_info"`
	SongRequest         *string `json:"song_request"`
	GroupID             *uint   `json:"group_id"`
	CampingOnSite       *bool   `json:"camping"`
	BrunchSunday        *bool   `json:"brunch"`
}

func (req *EditUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
	)
	if err != nil {
		return err
	}

	if req.RegistrationStatus != nil {
		if err = validation.Validate(*req.RegistrationStatus, validation.In("Not registered", "Registered")); err != nil {
			return err
		}
	}
	if req.AttendanceStatus != nil {
		if err = validation.Validate(*req.AttendanceStatus, validation.In("Attending", "Not Attending", "Unknown")); err != nil {
			return err
		}
	}
	if req.DietaryRestrictions != nil {
		if err = validation.Validate(*req.DietaryRestrictions, validation.In("None", "Vegetarian", "Vegan")); err != nil {
			return err
		}
	}

	return nil
}

type DeleteUserRequest struct {
	UserID uint `json:"user_id"`
}

func (req *DeleteUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
	)
}

type AddWishRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PictureURL  string `json:"pictureUrl"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"`
}

func (req *AddWishRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 128)),
		validation.Field(&req.Description, validation.Length(0, 1024)),
		validation.Field(&req.PictureURL, is.URL),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.Price, validation.Min(0)),
	)
}

type EditWishRequest struct {
	WishID      uint   `json:"wish_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PictureURL  string `json:"pictureUrl"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"`
}

func (req *EditWishRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WishID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 128)),
		validation.Field(&req.Description, validation.Length(0, 1024)),
		validation.Field(&req.PictureURL, is.URL),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.Price, validation.Min(0)),
	)
}

type DeleteWishRequest struct {
	WishID uint `json:"wish_id"`
}

func (req *DeleteWishRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WishID, validation.Required, validation.Min(uint(1))),
	)
}

type PurchaseRequest struct {
	WishID       uint `json:"wish_id"`
	IsPurchasing bool `json:"is_purchasing"`
	Quantity     int  `json:"quantity"`
}

func (req *PurchaseRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.WishID, validation.Required, validation.Min(uint(1))),
	)
	if err != nil {
		return err
	}

	// Quantity only matters when reserving; unreserving ignores it.
	if req.IsPurchasing && req.Quantity < 1 {
		return errInvalidQuantity
	}

	return nil
}

type PayRequest struct {
	Paid bool `json:"paid"`
}

type AddQuestionRequest struct {
	Difficulty string `json:"difficulty"`
}

func (req *AddQuestionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Difficulty, validation.Required, validation.In("EASY", "HARD")),
	)
}

type EditQuestionRequest struct {
	QuestionID    int    `json:"question_id"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
	Difficulty    string `json:"difficulty"`
}

func (req *EditQuestionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.QuestionID, validation.Required, validation.Min(1)),
		validation.Field(&req.Question, validation.Required),
		validation.Field(&req.OptionA, validation.Required),
		validation.Field(&req.OptionB, validation.Required),
		validation.Field(&req.OptionC, validation.Required),
		validation.Field(&req.OptionD, validation.Required),
		validation.Field(&req.CorrectOption, validation.Required),
		validation.Field(&req.Difficulty, validation.Required, validation.In("EASY", "HARD")),
	)
}

type DeleteQuestionRequest struct {
	QuestionID int `json:"question_id"`
}

func (req *DeleteQuestionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.QuestionID, validation.Required, validation.Min(1)),
	)
}

type AnswerRequest struct {
	UserID     uint   `json:"user_id"`
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

func (req *AnswerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.QuestionID, validation.Required, validation.Min(1)),
		validation.Field(&req.Answer, validation.Required),
	)
}
