package kitchen

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// イベント取りこぼしを拾う定期再取得の間隔
const PollInterval = 10 * time.Second

type Clock interface {
	Now() time.Time
}

// Eventはリアルタイム配信から届いた注文イベント
type Event struct {
	Type  string
	Order Order
}

// Clientはキッチン1店舗分のローカルビュー。
// リアルタイムイベントで更新しつつ、10秒ごとの全件再取得で自己修復する。
// スナップショットはlast-fetch-wins（マージしない）
type Client struct {
	mu sync.Mutex

	api   API
	slug  string
	clock Clock
	log   zerolog.Logger

	//サーバ順（新しい順）のスナップショット
	orders []Order
	loaded bool
}

func NewClient(api API, slug string, clock Clock, log zerolog.Logger) *Client {
	return &Client{
		api:   api,
		slug:  slug,
		clock: clock,
		log:   log,
	}
}

// Refreshは全件取得してスナップショットを丸ごと差し替える。
// 失敗したら前のスナップショットを残す（画面を消さない）
func (c *Client) Refresh(ctx context.Context) error {
	orders, err := c.api.FetchOrders(ctx, c.slug, "", 0)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.orders = orders
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Runはイベント消化と定期再取得を回す。ctxで止まる
func (c *Client) Run(ctx context.Context, events <-chan Event) {
	//初回ロード。失敗しても次のpollで拾う
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn().Err(err).Msg("initial fetch failed")
	}

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.ApplyEvent(ev)
		case <-ticker.C:
			//pollの失敗は黙って次に回す（10秒ごとに画面が点滅しないように）
			if err := c.Refresh(ctx); err != nil {
				c.log.Warn().Err(err).Msg("poll failed, keeping last snapshot")
			}
		}
	}
}

// ApplyEventはイベント1件をローカルビューに反映する。
// サーバのスナップショットが正なのでdeltaではなく丸ごと置き換える
func (c *Client) ApplyEvent(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Type {
	case "order:new":
		c.upsertLocked(ev.Order, true)
	case "order:updated":
		c.upsertLocked(ev.Order, false)
	}
}

func (c *Client) upsertLocked(o Order, prepend bool) {
	for i := range c.orders {
		if c.orders[i].ID == o.ID {
			c.orders[i] = o
			return
		}
	}
	if prepend {
		c.orders = append([]Order{o}, c.orders...)
	} else {
		c.orders = append(c.orders, o)
	}
}

// UpdateStatusは楽観更新→サーバ反映。失敗したら巻き戻して即時再取得する
func (c *Client) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	now := c.clock.Now()

	c.mu.Lock()
	var prev *Order
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			saved := c.orders[i]
			prev = &saved

			c.orders[i].Status = status
			switch status {
			case StatusInProgress:
				c.orders[i].StartedAt = &now
			case StatusCompleted:
				c.orders[i].CompletedAt = &now
			case StatusCancelled:
				c.orders[i].CancelledAt = &now
			}
			break
		}
	}
	c.mu.Unlock()

	updated, err := c.api.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		//楽観更新を戻してサーバ真実を取り直す
		if prev != nil {
			c.mu.Lock()
			for i := range c.orders {
				if c.orders[i].ID == orderID {
					c.orders[i] = *prev
					break
				}
			}
			c.mu.Unlock()
		}
		if rerr := c.Refresh(ctx); rerr != nil {
			c.log.Warn().Err(rerr).Msg("refetch after failed update")
		}
		return err
	}

	//サーバのスナップショットで上書き
	c.ApplyEvent(Event{Type: "order:updated", Order: updated})
	return nil
}

// Deleteは楽観削除→サーバ反映。失敗したら再取得で復元する
func (c *Client) Delete(ctx context.Context, orderID int64) error {
	c.mu.Lock()
	kept := c.orders[:0:0]
	for _, o := range c.orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	c.orders = kept
	c.mu.Unlock()

	if err := c.api.DeleteOrder(ctx, orderID); err != nil {
		if rerr := c.Refresh(ctx); rerr != nil {
			c.log.Warn().Err(rerr).Msg("refetch after failed delete")
		}
		return err
	}
	return nil
}

// Snapshotは現在のローカルビューのコピー
func (c *Client) Snapshot() []Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Order, len(c.orders))
	copy(out, c.orders)
	return out
}

func (c *Client) filter(status string) []Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Order
	for _, o := range c.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// 表示用の3キュー
func (c *Client) Pending() []Order    { return c.filter(StatusPending) }
func (c *Client) InProgress() []Order { return c.filter(StatusInProgress) }
func (c *Client) Completed() []Order  { return c.filter(StatusCompleted) }

type TodayStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
}

// Statsは今日の注文数の内訳
func (c *Client) Stats() TodayStats {
	now := c.clock.Now()
	y, m, d := now.Date()

	c.mu.Lock()
	defer c.mu.Unlock()

	var st TodayStats
	for _, o := range c.orders {
		oy, om, od := o.PlacedAt.In(now.Location()).Date()
		if oy != y || om != m || od != d {
			continue
		}
		st.Total++
		switch o.Status {
		case StatusPending:
			st.Pending++
		case StatusInProgress:
			st.InProgress++
		case StatusCompleted:
			st.Completed++
		}
	}
	return st
}
