package enum

// PaymentMethod represents how a sale is settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentDebt PaymentMethod = "debt"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether the method is one of the accepted settlement types.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentDebt:
		return true
	}
	return false
}

// Label returns the Uzbek display name printed on receipts.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Naqd"
	case PaymentCard:
		return "Karta"
	case PaymentDebt:
		return "Qarz"
	}
	return string(m)
}
