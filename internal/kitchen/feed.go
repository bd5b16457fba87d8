package kitchen

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const reconnectDelay = 5 * time.Second

// Feedはwebsocketでorder:new/order:updatedを受けてEventに変換する。
// 切断されたら一定間隔で繋ぎ直す。切断中のイベントは永遠に来ない前提で、
// 穴はClientの定期再取得が埋める
type Feed struct {
	url          string
	restaurantID int64
	token        string
	log          zerolog.Logger
}

func NewFeed(wsURL string, restaurantID int64, token string, log zerolog.Logger) *Feed {
	return &Feed{
		url:          wsURL,
		restaurantID: restaurantID,
		token:        token,
		log:          log,
	}
}

type envelope struct {
	Type         string          `json:"type"`
	RestaurantID int64           `json:"restaurant_id,omitempty"`
	Token        string          `json:"token,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// Runは受信チャンネルを返してバックグラウンドで回る。ctxで止まる
func (f *Feed) Run(ctx context.Context) <-chan Event {
	events := make(chan Event, 32)

	go func() {
		defer close(events)
		for {
			if ctx.Err() != nil {
				return
			}

			if err := f.consume(ctx, events); err != nil {
				f.log.Warn().Err(err).Msg("feed disconnected")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
		}
	}()

	return events
}

func (f *Feed) consume(ctx context.Context, events chan<- Event) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	//接続したらまずjoin
	join := envelope{
		Type:         "join:restaurant",
		RestaurantID: f.restaurantID,
		Token:        f.token,
	}
	if err := conn.WriteJSON(join); err != nil {
		return err
	}

	//ctxが切れたら読みループをReadMessageのエラーで抜けさせる
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}

		switch env.Type {
		case "joined":
			f.log.Info().Int64("restaurant_id", env.RestaurantID).Msg("joined channel")
		case "order:new", "order:updated":
			var o Order
			if err := json.Unmarshal(env.Payload, &o); err != nil {
				f.log.Warn().Err(err).Str("type", env.Type).Msg("bad event payload")
				continue
			}
			select {
			case events <- Event{Type: env.Type, Order: o}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case "error":
			f.log.Warn().Str("error", env.Error).Msg("server rejected message")
		}
	}
}
