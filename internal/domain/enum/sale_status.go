package enum

// SaleStatus represents the lifecycle state of a sale on the backend.
// A pending sale can move to completed or cancelled; both are final.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one the backend can return.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// Final reports whether the sale can no longer change state.
func (s SaleStatus) Final() bool {
	return s == SaleStatusCompleted || s == SaleStatusCancelled
}
