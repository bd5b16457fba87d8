package kitchen

import (
	"fmt"
	"time"
)

// 緊急表示のしきい値（分、これを超えたら urgent）
const (
	urgentPendingMinutes    = 10
	urgentInProgressMinutes = 30
)

// Elapsedはplaced_atからの経過表示（"Just now" / "5m ago" / "1h 5m ago"）
func Elapsed(now time.Time, placedAt time.Time) string {
	mins := int(now.Sub(placedAt) / time.Minute)

	if mins < 1 {
		return "Just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	return fmt.Sprintf("%dh %dm ago", mins/60, mins%60)
}

// IsUrgentは表示エスカレーション用のフラグ。保存しない・自動遷移もしない。
// 境界は排他（ちょうど10分はまだurgentではない）
func IsUrgent(now time.Time, o Order) bool {
	mins := int(now.Sub(o.PlacedAt) / time.Minute)

	switch o.Status {
	case StatusPending:
		return mins > urgentPendingMinutes
	case StatusInProgress:
		return mins > urgentInProgressMinutes
	default:
		return false
	}
}
