package realtime

import "encoding/json"

// ワイヤ上のメッセージ種別
const (
	// client → server
	MessageJoinRestaurant = "join:restaurant"

	// server → client
	EventOrderNew     = "order:new"
	EventOrderUpdated = "order:updated"
	EventJoined       = "joined"
	EventError        = "error"
)

// Envelopeはwebsocketで流れる全メッセージの形
type Envelope struct {
	Type string `json:"type"`

	// join:restaurant / joined
	RestaurantID int64  `json:"restaurant_id,omitempty"`
	Token        string `json:"token,omitempty"`

	// order:new / order:updatedの注文スナップショット全体
	Payload json.RawMessage `json:"payload,omitempty"`

	// error
	Error string `json:"error,omitempty"`
}
