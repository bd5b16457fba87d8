package kitchen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIはバックエンドの注文エンドポイント。テストではfakeを差す
type API interface {
	FetchOrders(ctx context.Context, slug string, status string, limit int) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

type HTTPAPI struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPAPI(baseURL string, token string) *HTTPAPI {
	return &HTTPAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *HTTPAPI) FetchOrders(ctx context.Context, slug string, status string, limit int) ([]Order, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/orders/slug/" + url.PathEscape(slug)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var orders []Order
	if err := a.doJSON(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *HTTPAPI) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (Order, error) {
	body := map[string]string{"status": status}

	var o Order
	err := a.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), body, &o)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (a *HTTPAPI) DeleteOrder(ctx context.Context, orderID int64) error {
	return a.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), nil, nil)
}

// Loginはキッチン用JWTを取る
func Login(ctx context.Context, baseURL string, username string, password string, slug string) (token string, restaurantID int64, err error) {
	api := NewHTTPAPI(baseURL, "")

	body := map[string]string{
		"username":        username,
		"password":        password,
		"restaurant_slug": slug,
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			RestaurantID int64 `json:"restaurant_id"`
		} `json:"user"`
	}
	if err := api.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return "", 0, err
	}
	return out.Token, out.User.RestaurantID, nil
}

func (a *HTTPAPI) doJSON(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	res, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		//エラーレスポンスは{"error": "..."}
		var er struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&er); err == nil && er.Error != "" {
			return fmt.Errorf("server: %s (%d)", er.Error, res.StatusCode)
		}
		return fmt.Errorf("server: status %d", res.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
