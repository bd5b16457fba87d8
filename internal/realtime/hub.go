package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Hubは店舗id→参加セッションのレジストリ。
// join/leave/配信が別ゴルーチンから同時に来るのでmutexで守る
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[*Session]struct{}
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms: make(map[int64]map[*Session]struct{}),
		log:   log,
	}
}

func (h *Hub) join(restaurantID int64, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[restaurantID]
	if !ok {
		room = make(map[*Session]struct{})
		h.rooms[restaurantID] = room
	}
	room[s] = struct{}{}

	h.log.Info().
		Str("session_id", s.id).
		Int64("restaurant_id", restaurantID).
		Msg("session joined")
}

func (h *Hub) leave(restaurantID int64, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[restaurantID]
	if !ok {
		return
	}
	if _, ok := room[s]; !ok {
		return
	}
	delete(room, s)
	if len(room) == 0 {
		delete(h.rooms, restaurantID)
	}

	h.log.Info().
		Str("session_id", s.id).
		Int64("restaurant_id", restaurantID).
		Msg("session left")
}

// Publishは店舗のチャンネルにイベントを配る。fire-and-forget：
// 送信バッファが詰まったセッションは落とすだけで、再送も永続化もしない。
// 取りこぼしはキッチン側の定期再取得が拾う
func (h *Hub) Publish(restaurantID int64, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal event payload")
		return
	}
	msg, err := json.Marshal(Envelope{Type: event, Payload: raw})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal event envelope")
		return
	}

	h.mu.RLock()
	var slow []*Session
	for s := range h.rooms[restaurantID] {
		select {
		case s.send <- msg:
		default:
			//遅いセッションを待たない
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		h.log.Warn().
			Str("session_id", s.id).
			Int64("restaurant_id", restaurantID).
			Msg("send buffer full, dropping session")
		s.drop()
	}
}

// SessionCountは店舗チャンネルの参加数
func (h *Hub) SessionCount(restaurantID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[restaurantID])
}
