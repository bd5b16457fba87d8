package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 1イベント＝注文スナップショット1件なのでこれで十分
	sendBufferSize = 32
)

// JWT検証。実装はinternal/middleware
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}

type Claims struct {
	UserID       int64
	RestaurantID int64
	Role         string
}

// Sessionはwebsocket接続1本。join:restaurantで店舗チャンネルに入ってから
// イベントを受け取る
type Session struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	verify TokenVerifier
	log    zerolog.Logger

	send chan []byte

	// joinとcloseは別ゴルーチンから来るのでmuで守る
	mu sync.Mutex

	// joinは1回だけ。0なら未参加
	restaurantID int64
	closed       bool
}

func NewSession(hub *Hub, conn *websocket.Conn, verify TokenVerifier, log zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		hub:    hub,
		conn:   conn,
		verify: verify,
		log:    log.With().Str("session_id", id).Logger(),
		send:   make(chan []byte, sendBufferSize),
	}
}

// Runは読み書きループを回して接続が終わるまでブロックする
func (s *Session) Run() {
	go s.writePump()
	s.readPump()
}

func (s *Session) readPump() {
	defer s.drop()

	s.conn.SetReadLimit(4096)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.sendError("invalid message")
			continue
		}

		switch env.Type {
		case MessageJoinRestaurant:
			if err := s.handleJoin(env); err != nil {
				//認可に失敗したセッションは閉じる
				return
			}
		default:
			s.sendError("unknown message type")
		}
	}
}

// handleJoinはjoin:restaurantを処理する。tokenの店舗と要求された店舗が
// 一致しない限り参加させない
func (s *Session) handleJoin(env Envelope) error {
	s.mu.Lock()
	joined := s.restaurantID != 0
	s.mu.Unlock()
	if joined {
		s.sendError("already joined")
		return nil
	}
	if env.RestaurantID <= 0 {
		s.sendError("restaurant_id is required")
		return errors.New("missing restaurant_id")
	}

	claims, err := s.verify.Verify(env.Token)
	if err != nil {
		s.sendError("unauthorized")
		return err
	}
	if claims.RestaurantID != env.RestaurantID {
		s.sendError("forbidden")
		return errors.New("restaurant mismatch")
	}

	//dropと競合したとき、閉じたセッションをhubに残さない
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("session closed")
	}
	s.restaurantID = env.RestaurantID
	s.hub.join(env.RestaurantID, s)
	s.mu.Unlock()

	s.enqueue(Envelope{Type: EventJoined, RestaurantID: env.RestaurantID})
	return nil
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.drop()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) enqueue(env Envelope) {
	msg, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case s.send <- msg:
	default:
	}
}

func (s *Session) sendError(msg string) {
	s.enqueue(Envelope{Type: EventError, Error: msg})
}

// dropはチャンネルから抜けて接続を閉じる。何度呼んでもいい
func (s *Session) drop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	restaurantID := s.restaurantID
	s.mu.Unlock()

	if restaurantID != 0 {
		s.hub.leave(restaurantID, s)
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
