package inventory

import "time"

// MovementKind tells why stock changed
type MovementKind string

const (
	MovementSale   MovementKind = "sale"
	MovementReturn MovementKind = "return"
)

// IsValid checks if the kind is known
func (k MovementKind) IsValid() bool {
	return k == MovementSale || k == MovementReturn
}

// String returns the string representation of MovementKind
func (k MovementKind) String() string {
	return string(k)
}

// Movement records a stock change caused by a sale. SaleID is detached
// (set to nil) when the sale is deleted so the stock history survives.
type Movement struct {
	ID        int64
	ProductID int64
	SaleID    *int64
	Quantity  int // signed: negative leaves stock, positive returns it
	Kind      MovementKind
	CreatedAt time.Time
}

// MovementsFor builds one movement per stock update
func MovementsFor(updates []StockUpdate, saleID int64, kind MovementKind, at time.Time) []Movement {
	movements := make([]Movement, 0, len(updates))
	for _, u := range updates {
		id := saleID
		movements = append(movements, Movement{
			ProductID: u.ProductID,
			SaleID:    &id,
			Quantity:  u.NewQuantity - u.Previous,
			Kind:      kind,
			CreatedAt: at,
		})
	}
	return movements
}
