package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Run("letters and digits, eight characters minimum", func(t *testing.T) {
		assert.NoError(t, validatePassword("jardin_du_lac_2"))
		assert.NoError(t, validatePassword("abcdefg1"))
	})

	t.Run("too short", func(t *testing.T) {
		assert.ErrorIs(t, validatePassword("abc1"), errInvalidPassword)
	})

	t.Run("no digit", func(t *testing.T) {
		assert.ErrorIs(t, validatePassword("onlyletters"), errInvalidPassword)
	})

	t.Run("no letter", func(t *testing.T) {
		assert.ErrorIs(t, validatePassword("12345678"), errInvalidPassword)
	})
}

func TestAddGroupRequest_Validate(t *testing.T) {
	req := AddGroupRequest{Name: "famille_mean", Password: "jardin_du_lac_2"}
	assert.NoError(t, req.Validate())

	req.Name = "x"
	assert.Error(t, req.Validate())

	req.Name = "famille_mean"
	req.Password = "short"
	assert.ErrorIs(t, req.Validate(), errInvalidPassword)
}

func TestEditUserRequest_Validate(t *testing.T) {
	attending := "Attending"
	req := EditUserRequest{UserID: 1, AttendanceStatus: &attending}
	assert.NoError(t, req.Validate())

	bogus := "Maybe"
	req.AttendanceStatus = &bogus
	assert.Error(t, req.Validate())

	vegan := "Vegan"
	req = EditUserRequest{UserID: 1, DietaryRestrictions: &vegan}
	assert.NoError(t, req.Validate())

	req.UserID = 0
	assert.Error(t, req.Validate())
}

func TestPurchaseRequest_Validate(t *testing.T) {
	t.Run("reserving needs a positive quantity", func(t *testing.T) {
		req := PurchaseRequest{WishID: 1, IsPurchasing: true, Quantity: 0}
		assert.ErrorIs(t, req.Validate(), errInvalidQuantity)

		req.Quantity = 2
		assert.NoError(t, req.Validate())
	})

	t.Run("unreserving ignores the quantity", func(t *testing.T) {
		req := PurchaseRequest{WishID: 1, IsPurchasing: false, Quantity: 0}
		assert.NoError(t, req.Validate())
	})
}

func TestAddQuestionRequest_Validate(t *testing.T) {
	req := AddQuestionRequest{Difficulty: "EASY"}
	assert.NoError(t, req.Validate())

	req.Difficulty = "MEDIUM"
	assert.Error(t, req.Validate())
}
