package realtime

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestSession(h *Hub, buf int) *Session {
	return &Session{
		id:   "test-session",
		hub:  h,
		log:  zerolog.Nop(),
		send: make(chan []byte, buf),
	}
}

func recvEnvelope(t *testing.T, s *Session) Envelope {
	t.Helper()
	select {
	case msg := <-s.send:
		var env Envelope
		assert.NoError(t, json.Unmarshal(msg, &env))
		return env
	default:
		t.Fatal("expected a message in send buffer")
		return Envelope{}
	}
}

func TestHubPublish_TenantIsolation(t *testing.T) {
	h := NewHub(zerolog.Nop())

	a1 := newTestSession(h, 4)
	a2 := newTestSession(h, 4)
	b := newTestSession(h, 4)
	a1.restaurantID, a2.restaurantID, b.restaurantID = 5, 5, 6
	h.join(5, a1)
	h.join(5, a2)
	h.join(6, b)

	h.Publish(5, EventOrderNew, map[string]int64{"id": 100})

	// 店舗5の両セッションに届く
	env := recvEnvelope(t, a1)
	assert.Equal(t, EventOrderNew, env.Type)
	env = recvEnvelope(t, a2)
	assert.Equal(t, EventOrderNew, env.Type)

	var payload map[string]int64
	assert.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, int64(100), payload["id"])

	// 店舗6には漏れない
	assert.Empty(t, b.send)
}

func TestHubPublish_DropsSlowSession(t *testing.T) {
	h := NewHub(zerolog.Nop())

	slow := newTestSession(h, 1)
	fast := newTestSession(h, 4)
	slow.restaurantID, fast.restaurantID = 5, 5
	h.join(5, slow)
	h.join(5, fast)

	// slowのバッファを先に埋めておく
	slow.send <- []byte("{}")

	h.Publish(5, EventOrderUpdated, map[string]int64{"id": 1})

	// 詰まったセッションだけ外れて、残りには届く
	assert.Equal(t, 1, h.SessionCount(5))
	env := recvEnvelope(t, fast)
	assert.Equal(t, EventOrderUpdated, env.Type)
}

func TestHubJoinLeave(t *testing.T) {
	h := NewHub(zerolog.Nop())

	s := newTestSession(h, 4)
	s.restaurantID = 5

	assert.Equal(t, 0, h.SessionCount(5))
	h.join(5, s)
	assert.Equal(t, 1, h.SessionCount(5))

	h.leave(5, s)
	assert.Equal(t, 0, h.SessionCount(5))

	// 二重leaveは無害
	h.leave(5, s)
	assert.Equal(t, 0, h.SessionCount(5))
}

type stubTokenVerifier struct {
	claims Claims
	err    error
}

func (v stubTokenVerifier) Verify(token string) (Claims, error) { return v.claims, v.err }

func TestHandleJoin_Success(t *testing.T) {
	h := NewHub(zerolog.Nop())
	s := newTestSession(h, 4)
	s.verify = stubTokenVerifier{claims: Claims{UserID: 3, RestaurantID: 5, Role: "KITCHEN"}}

	err := s.handleJoin(Envelope{Type: MessageJoinRestaurant, RestaurantID: 5, Token: "tok"})

	assert.NoError(t, err)
	assert.Equal(t, 1, h.SessionCount(5))

	ack := recvEnvelope(t, s)
	assert.Equal(t, EventJoined, ack.Type)
	assert.Equal(t, int64(5), ack.RestaurantID)
}

func TestHandleJoin_RestaurantMismatch(t *testing.T) {
	h := NewHub(zerolog.Nop())
	s := newTestSession(h, 4)
	// tokenは店舗5、参加要求は店舗6
	s.verify = stubTokenVerifier{claims: Claims{RestaurantID: 5}}

	err := s.handleJoin(Envelope{Type: MessageJoinRestaurant, RestaurantID: 6, Token: "tok"})

	assert.Error(t, err)
	assert.Equal(t, 0, h.SessionCount(6))

	env := recvEnvelope(t, s)
	assert.Equal(t, EventError, env.Type)
	assert.Equal(t, "forbidden", env.Error)
}

func TestHandleJoin_BadToken(t *testing.T) {
	h := NewHub(zerolog.Nop())
	s := newTestSession(h, 4)
	s.verify = stubTokenVerifier{err: errors.New("expired")}

	err := s.handleJoin(Envelope{Type: MessageJoinRestaurant, RestaurantID: 5, Token: "tok"})

	assert.Error(t, err)
	assert.Equal(t, 0, h.SessionCount(5))
}

func TestHandleJoin_MissingRestaurantID(t *testing.T) {
	h := NewHub(zerolog.Nop())
	s := newTestSession(h, 4)
	s.verify = stubTokenVerifier{claims: Claims{RestaurantID: 5}}

	err := s.handleJoin(Envelope{Type: MessageJoinRestaurant, Token: "tok"})

	assert.Error(t, err)
	env := recvEnvelope(t, s)
	assert.Equal(t, EventError, env.Type)
}

func TestHandleJoin_ClosedSessionNotRegistered(t *testing.T) {
	h := NewHub(zerolog.Nop())
	s := newTestSession(h, 4)
	s.verify = stubTokenVerifier{claims: Claims{RestaurantID: 5}}

	// writePump側が先に落ちたあとにjoinフレームが処理されるケース。
	// 閉じたセッションをhubに登録してはいけない
	s.drop()

	err := s.handleJoin(Envelope{Type: MessageJoinRestaurant, RestaurantID: 5, Token: "tok"})

	assert.Error(t, err)
	assert.Equal(t, 0, h.SessionCount(5))
}

func TestDrop_AfterJoinLeavesRoom(t *testing.T) {
	h := NewHub(zerolog.Nop())
	s := newTestSession(h, 4)
	s.verify = stubTokenVerifier{claims: Claims{RestaurantID: 5}}

	assert.NoError(t, s.handleJoin(Envelope{Type: MessageJoinRestaurant, RestaurantID: 5, Token: "tok"}))
	assert.Equal(t, 1, h.SessionCount(5))

	s.drop()
	assert.Equal(t, 0, h.SessionCount(5))

	// 二重dropしても登録が復活したりはしない
	s.drop()
	assert.Equal(t, 0, h.SessionCount(5))
}

func TestHandleJoin_AlreadyJoined(t *testing.T) {
	h := NewHub(zerolog.Nop())
	s := newTestSession(h, 4)
	s.verify = stubTokenVerifier{claims: Claims{RestaurantID: 5}}

	assert.NoError(t, s.handleJoin(Envelope{Type: MessageJoinRestaurant, RestaurantID: 5, Token: "tok"}))
	_ = recvEnvelope(t, s) // joined ack

	// 2回目はエラー通知だけで接続は維持
	err := s.handleJoin(Envelope{Type: MessageJoinRestaurant, RestaurantID: 5, Token: "tok"})
	assert.NoError(t, err)
	assert.Equal(t, 1, h.SessionCount(5))

	env := recvEnvelope(t, s)
	assert.Equal(t, EventError, env.Type)
	assert.Equal(t, "already joined", env.Error)
}
