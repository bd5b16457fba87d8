package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// 正常系の遷移
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusInProgress))
	assert.True(t, CanTransition(OrderStatusInProgress, OrderStatusCompleted))

	// キャンセルはPENDING/IN_PROGRESSからだけ
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusCancelled))
	assert.True(t, CanTransition(OrderStatusInProgress, OrderStatusCancelled))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusCancelled))

	// スキップ・巻き戻しは不可
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusCompleted))
	assert.False(t, CanTransition(OrderStatusInProgress, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusInProgress))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusInProgress))

	// 同一ステータスは遷移表上はfalse（冪等no-opはusecase側の扱い)
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusInProgress, OrderStatusInProgress))
}

func TestIsTerminalStatus(t *testing.T) {
	assert.False(t, IsTerminalStatus(OrderStatusPending))
	assert.False(t, IsTerminalStatus(OrderStatusInProgress))
	assert.True(t, IsTerminalStatus(OrderStatusCompleted))
	assert.True(t, IsTerminalStatus(OrderStatusCancelled))

	// 未知のステータスはterminal扱いしない
	assert.False(t, IsTerminalStatus(OrderStatus("SHIPPED")))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusInProgress))
	assert.True(t, ValidOrderStatus(OrderStatusCompleted))
	assert.True(t, ValidOrderStatus(OrderStatusCancelled))
	assert.False(t, ValidOrderStatus(OrderStatus("")))
	assert.False(t, ValidOrderStatus(OrderStatus("pending")))
}

func TestValidOrderType(t *testing.T) {
	assert.True(t, ValidOrderType(OrderTypeDineIn))
	assert.True(t, ValidOrderType(OrderTypeDriveIn))
	assert.True(t, ValidOrderType(OrderTypeTakeout))
	assert.False(t, ValidOrderType(OrderType("DELIVERY")))
}
