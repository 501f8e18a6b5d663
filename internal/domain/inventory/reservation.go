package inventory

import (
	"fmt"
	"sort"

	"github.com/retail/backoffice/internal/domain/shared"
)

// StockRequest asks for Quantity units of a product
type StockRequest struct {
	ProductID int64
	Quantity  int
}

// StockUpdate is the quantity to write back for a finite-stock product
type StockUpdate struct {
	ProductID   int64
	Previous    int
	NewQuantity int
}

// DistinctProductIDs returns the products named by requests in ascending
// order, the order in which row locks must be taken to avoid deadlocks
func DistinctProductIDs(requests []StockRequest) []int64 {
	seen := make(map[int64]struct{}, len(requests))
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reserve checks the accumulated demand of requests against the locked
// products and returns the stock to write back. Duplicate lines for the same
// product are summed before the check. Unlimited products are never
// written. Nothing is mutated when an error is returned.
func Reserve(requests []StockRequest, products map[int64]*Product) ([]StockUpdate, error) {
	demand := make(map[int64]int, len(requests))
	for _, r := range requests {
		if r.Quantity <= 0 {
			return nil, shared.NewValidationError("quantity for product %d must be positive", r.ProductID)
		}
		if _, ok := products[r.ProductID]; !ok {
			return nil, shared.NewDomainError(shared.CodeProductNotFound,
				fmt.Sprintf("product %d not found", r.ProductID))
		}
		demand[r.ProductID] += r.Quantity
	}

	updates := make([]StockUpdate, 0, len(demand))
	for _, id := range DistinctProductIDs(requests) {
		p := products[id]
		if p.IsUnlimited() {
			continue
		}
		available := p.Available()
		if demand[id] > available {
			return nil, shared.NewDomainError(shared.CodeInsufficientStock,
				fmt.Sprintf("insufficient stock for product %d (%s): requested %d, available %d",
					id, p.Name, demand[id], available))
		}
		remaining := available - demand[id]
		if remaining < 0 {
			remaining = 0
		}
		updates = append(updates, StockUpdate{ProductID: id, Previous: available, NewQuantity: remaining})
	}
	return updates, nil
}

// Restock returns the stock to write back when the requested units come
// back into inventory. Unlimited and missing products are skipped.
func Restock(requests []StockRequest, products map[int64]*Product) []StockUpdate {
	returned := make(map[int64]int, len(requests))
	for _, r := range requests {
		returned[r.ProductID] += r.Quantity
	}
	updates := make([]StockUpdate, 0, len(returned))
	for _, id := range DistinctProductIDs(requests) {
		p, ok := products[id]
		if !ok || p.IsUnlimited() {
			continue
		}
		updates = append(updates, StockUpdate{ProductID: id, Previous: p.Available(), NewQuantity: p.Available() + returned[id]})
	}
	return updates
}
