package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"menucraft/internal/domain/model"
	repo "menucraft/internal/repository"
)

// 注文送信の入力検証。実装はinternal/validator
type OrderValidator interface {
	ValidateSubmission(in PlaceOrderInput) error
}

// 注文イベントをキッチンへ配信する。実装はinternal/realtime。
// 配信はfire-and-forget（失敗しても注文処理は成功扱い）
type OrderEventPublisher interface {
	PublishOrderNew(restaurantID int64, order OrderOutput)
	PublishOrderUpdated(restaurantID int64, order OrderOutput)
}

type OrderUsecase struct {
	tx          repo.TransactionManager
	restaurants repo.RestaurantRepository
	validator   OrderValidator
	events      OrderEventPublisher
	clock       Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	restaurants repo.RestaurantRepository,
	validator OrderValidator,
	events OrderEventPublisher,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		restaurants: restaurants,
		validator:   validator,
		events:      events,
		clock:       clock,
	}
}

type PlaceOrderItemInput struct {
	MenuItemID     int64    `json:"menu_item_id"`
	Name           string   `json:"name"`
	Quantity       int64    `json:"quantity"`
	UnitPrice      int64    `json:"unit_price"`
	Customizations []string `json:"customizations"`
}

type PlaceOrderInput struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	OrderType     string `json:"order_type"`

	TableNumber  string `json:"table_number"`
	CarColor     string `json:"car_color"`
	LicensePlate string `json:"license_plate"`
	CarModel     string `json:"car_model"`

	SpecialNotes string `json:"special_notes"`

	Items []PlaceOrderItemInput `json:"items"`

	// クライアント計算値。サーバ側で整合性を再検証する（最小通貨単位）
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type OrderItemOutput struct {
	ID             int64    `json:"id"`
	MenuItemID     int64    `json:"menu_item_id"`
	Name           string   `json:"name"`
	Quantity       int64    `json:"quantity"`
	UnitPrice      int64    `json:"unit_price"`
	Subtotal       int64    `json:"subtotal"`
	Customizations []string `json:"customizations"`
}

type OrderOutput struct {
	ID           int64  `json:"id"`
	OrderNumber  int64  `json:"order_number"`
	RestaurantID int64  `json:"restaurant_id"`
	Status       string `json:"status"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	OrderType     string `json:"order_type"`

	TableNumber  string `json:"table_number,omitempty"`
	CarColor     string `json:"car_color,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	CarModel     string `json:"car_model,omitempty"`

	SpecialNotes string `json:"special_notes,omitempty"`

	Items []OrderItemOutput `json:"items"`

	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`

	PlacedAt    time.Time  `json:"placed_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// PlaceOrderは注文＋明細を1トランザクションで保存してorder:newを配信する。
// 返り値のid/注文番号/status/タイムスタンプはサーバが正
func (u *OrderUsecase) PlaceOrder(ctx context.Context, slug string, in PlaceOrderInput) (OrderOutput, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}

	//店舗の存在＋active確認
	rest, err := u.restaurants.FindActiveBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//入力検証（必須項目・条件付きフィールド・金額の整合）
	if err := u.validator.ValidateSubmission(in); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := u.clock.Now()
	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//店舗スコープの連番を採番
		seq, err := r.Restaurants().NextOrderNumber(ctx, rest.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			RestaurantID:  rest.ID,
			OrderNumber:   seq,
			Status:        model.OrderStatusPending,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			OrderType:     model.OrderType(in.OrderType),
			TableNumber:   strings.TrimSpace(in.TableNumber),
			CarColor:      strings.TrimSpace(in.CarColor),
			LicensePlate:  strings.TrimSpace(in.LicensePlate),
			CarModel:      strings.TrimSpace(in.CarModel),
			SpecialNotes:  strings.TrimSpace(in.SpecialNotes),
			Subtotal:      in.Subtotal,
			Tax:           in.Tax,
			Total:         in.Total,
			PlacedAt:      now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細スナップショット
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, model.OrderItem{
				MenuItemID:        it.MenuItemID,
				NameSnapshot:      it.Name,
				UnitPriceSnapshot: it.UnitPrice,
				Quantity:          it.Quantity,
				Subtotal:          it.Quantity * it.UnitPrice,
				Customizations:    it.Customizations,
				CreatedAt:         now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:            orderID,
			RestaurantID:  rest.ID,
			OrderNumber:   seq,
			Status:        model.OrderStatusPending,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			OrderType:     model.OrderType(in.OrderType),
			TableNumber:   strings.TrimSpace(in.TableNumber),
			CarColor:      strings.TrimSpace(in.CarColor),
			LicensePlate:  strings.TrimSpace(in.LicensePlate),
			CarModel:      strings.TrimSpace(in.CarModel),
			SpecialNotes:  strings.TrimSpace(in.SpecialNotes),
			Subtotal:      in.Subtotal,
			Tax:           in.Tax,
			Total:         in.Total,
			PlacedAt:      now,
		}
		out = toOrderOutput(created, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//commit後に配信（fire-and-forget）
	u.events.PublishOrderNew(rest.ID, out)

	return out, nil
}

// ListOrdersはキッチン向けの注文一覧（新しい順）。
// callerRestaurantIDはJWTの店舗。slugの店舗と一致しないと403
func (u *OrderUsecase) ListOrders(ctx context.Context, callerRestaurantID int64, slug string, status string, limit int) ([]OrderOutput, error) {
	rest, err := u.restaurants.FindActiveBySlug(ctx, strings.TrimSpace(slug))
	if errors.Is(err, repo.ErrNotFound) {
		return []OrderOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//テナント越え禁止
	if rest.ID != callerRestaurantID {
		return []OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	f := repo.OrderListFilter{Limit: limit}
	if status != "" {
		s := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
		if !model.ValidOrderStatus(s) {
			return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		f.Status = &s
	}

	var outs []OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByRestaurant(ctx, rest.ID, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// UpdateStatusは遷移表に従ってステータスを進める。
// すでに目標ステータスならno-op成功（リトライの二重送信対策）。
// 成功した遷移（no-op以外）はorder:updatedを配信する
func (u *OrderUsecase) UpdateStatus(ctx context.Context, callerRestaurantID int64, orderID int64, status string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !model.ValidOrderStatus(newStatus) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	now := u.clock.Now()

	var out OrderOutput
	var restaurantID int64
	noop := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//他店舗の注文は「存在しない扱い」にする
		if o.RestaurantID != callerRestaurantID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//冪等：すでに目標ステータスなら何も書かずに現状を返す
		if o.Status == newStatus {
			noop = true
			out = toOrderOutput(o, items)
			return nil
		}

		if !model.CanTransition(o.Status, newStatus) {
			return NewHTTPError(http.StatusBadRequest, "invalid transition")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = newStatus
		switch newStatus {
		case model.OrderStatusInProgress:
			o.StartedAt = &now
		case model.OrderStatusCompleted:
			o.CompletedAt = &now
		case model.OrderStatusCancelled:
			o.CancelledAt = &now
		}

		restaurantID = o.RestaurantID
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	if !noop {
		u.events.PublishOrderUpdated(restaurantID, out)
	}
	return out, nil
}

// DeleteOrderは注文＋明細を物理削除する。COMPLETEDだけ削除不可。
// 存在しないidは成功扱い（冪等）
func (u *OrderUsecase) DeleteOrder(ctx context.Context, callerRestaurantID int64, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			//すでに無いなら成功
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.RestaurantID != callerRestaurantID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if o.Status == model.OrderStatusCompleted {
			return NewHTTPError(http.StatusBadRequest, "cannot delete completed order")
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:             it.ID,
			MenuItemID:     it.MenuItemID,
			Name:           it.NameSnapshot,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPriceSnapshot,
			Subtotal:       it.Subtotal,
			Customizations: it.Customizations,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		RestaurantID:  o.RestaurantID,
		Status:        string(o.Status),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		OrderType:     string(o.OrderType),
		TableNumber:   o.TableNumber,
		CarColor:      o.CarColor,
		LicensePlate:  o.LicensePlate,
		CarModel:      o.CarModel,
		SpecialNotes:  o.SpecialNotes,
		Items:         outItems,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
		PlacedAt:      o.PlacedAt,
		StartedAt:     o.StartedAt,
		CompletedAt:   o.CompletedAt,
		CancelledAt:   o.CancelledAt,
	}
}
