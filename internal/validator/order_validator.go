package validator

import (
	"errors"
	"strings"

	"menucraft/internal/domain/model"
	"menucraft/internal/usecase"
)

var (
	// 必須項目が無い・形式が不正
	ErrMissingCustomer  = errors.New("customer name and phone are required")
	ErrInvalidOrderType = errors.New("invalid order type")

	// order typeで決まる条件付きフィールドが無い
	ErrMissingTableNumber = errors.New("table_number is required for dine-in")
	ErrMissingCarInfo     = errors.New("car_color and license_plate are required for drive-in")

	// 明細が不正
	ErrEmptyItems      = errors.New("items must not be empty")
	ErrInvalidQuantity = errors.New("item quantity must be >= 1")
	ErrInvalidPrice    = errors.New("item unit_price must be >= 0")
	ErrMissingItemName = errors.New("item name is required")

	// クライアント計算の金額が合わない
	ErrSubtotalMismatch = errors.New("subtotal does not match items")
	ErrTotalMismatch    = errors.New("total must equal subtotal + tax")
)

type orderValidator struct{}

// Usecaseはinterfaceを依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// ValidateSubmissionは注文送信の入力を検証する
func (v *orderValidator) ValidateSubmission(in usecase.PlaceOrderInput) error {
	// 必須チェック
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerPhone) == "" {
		return ErrMissingCustomer
	}

	orderType := model.OrderType(in.OrderType)
	if !model.ValidOrderType(orderType) {
		return ErrInvalidOrderType
	}

	// 条件付きフィールド（DINE_IN: table / DRIVE_IN: car）
	switch orderType {
	case model.OrderTypeDineIn:
		if strings.TrimSpace(in.TableNumber) == "" {
			return ErrMissingTableNumber
		}
	case model.OrderTypeDriveIn:
		if strings.TrimSpace(in.CarColor) == "" || strings.TrimSpace(in.LicensePlate) == "" {
			return ErrMissingCarInfo
		}
	}

	// 明細チェック
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}

	var itemsSubtotal int64
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" {
			return ErrMissingItemName
		}
		if it.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if it.UnitPrice < 0 {
			return ErrInvalidPrice
		}
		itemsSubtotal += it.Quantity * it.UnitPrice
	}

	// 金額の整合（最小通貨単位で完全一致）
	if in.Subtotal != itemsSubtotal {
		return ErrSubtotalMismatch
	}
	if in.Total != in.Subtotal+in.Tax {
		return ErrTotalMismatch
	}
	if in.Tax < 0 {
		return ErrTotalMismatch
	}

	return nil
}
