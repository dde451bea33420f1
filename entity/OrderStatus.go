package entity

// Canonical order statuses. Upstream and legacy records use several spellings
// ("preparing", "orderStatus", "paymentStatus"...); pkg/normalize translates
// them to this set at the boundary.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusReady      = "Ready"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
