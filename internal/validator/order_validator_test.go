package validator

import (
	"testing"

	"menucraft/internal/usecase"

	"github.com/stretchr/testify/assert"
)

// 正常な注文入力（2 × 10.00ドル＋税8% = 21.60ドル、最小通貨単位）
func validInput() usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		CustomerName:  "Aiko",
		CustomerPhone: "555-0101",
		OrderType:     "DINE_IN",
		TableNumber:   "7",
		Items: []usecase.PlaceOrderItemInput{
			{MenuItemID: 1, Name: "Margherita", Quantity: 2, UnitPrice: 1000},
		},
		Subtotal: 2000,
		Tax:      160,
		Total:    2160,
	}
}

func TestValidateSubmission_OK(t *testing.T) {
	v := NewOrderValidator()
	assert.NoError(t, v.ValidateSubmission(validInput()))
}

func TestValidateSubmission_RequiredCustomer(t *testing.T) {
	v := NewOrderValidator()

	in := validInput()
	in.CustomerName = "  "
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrMissingCustomer)

	in = validInput()
	in.CustomerPhone = ""
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrMissingCustomer)
}

func TestValidateSubmission_OrderTypeConditionals(t *testing.T) {
	v := NewOrderValidator()

	// DINE_INはtable必須
	in := validInput()
	in.TableNumber = ""
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrMissingTableNumber)

	// DRIVE_INはcar_color＋license_plate必須
	in = validInput()
	in.OrderType = "DRIVE_IN"
	in.TableNumber = ""
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrMissingCarInfo)

	in.CarColor = "red"
	in.LicensePlate = "ABC-123"
	assert.NoError(t, v.ValidateSubmission(in))

	// TAKEOUTは条件付きフィールドなし
	in = validInput()
	in.OrderType = "TAKEOUT"
	in.TableNumber = ""
	assert.NoError(t, v.ValidateSubmission(in))

	// 未知のtype
	in = validInput()
	in.OrderType = "DELIVERY"
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrInvalidOrderType)
}

func TestValidateSubmission_Items(t *testing.T) {
	v := NewOrderValidator()

	in := validInput()
	in.Items = nil
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrEmptyItems)

	in = validInput()
	in.Items[0].Quantity = 0
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrInvalidQuantity)

	in = validInput()
	in.Items[0].UnitPrice = -1
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrInvalidPrice)

	in = validInput()
	in.Items[0].Name = ""
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrMissingItemName)
}

func TestValidateSubmission_TotalInvariant(t *testing.T) {
	v := NewOrderValidator()

	// subtotalが明細の合計と合わない
	in := validInput()
	in.Subtotal = 1999
	in.Total = 2159
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrSubtotalMismatch)

	// total ≠ subtotal + tax（1セントずれ）
	in = validInput()
	in.Total = 2159
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrTotalMismatch)

	in = validInput()
	in.Tax = -1
	in.Total = 1999
	assert.ErrorIs(t, v.ValidateSubmission(in), ErrTotalMismatch)
}
