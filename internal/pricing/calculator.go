// Package pricing turns order line requests into priced lines against a
// snapshot of the menu. It performs no I/O.
package pricing

import (
	"restaurant-ops/internal/domain"

	"github.com/shopspring/decimal"
)

type Line struct {
	MenuItem  domain.MenuItem
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Quote struct {
	Lines []Line
	Total decimal.Decimal
}

// OrderItems copies the quoted unit prices onto new order items.
func (q Quote) OrderItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(q.Lines))
	for _, line := range q.Lines {
		items = append(items, domain.OrderItem{
			MenuItemID: line.MenuItem.ID,
			Name:       line.MenuItem.Name,
			Quantity:   line.Quantity,
			Price:      line.UnitPrice,
		})
	}
	return items
}

// Calculate prices lines in request order. Every quantity is checked before
// any menu item is resolved, so a bad quantity is reported even when the item
// is also unknown. Items belonging to a different restaurant than
// restaurantID are treated as missing.
func Calculate(restaurantID int64, menu map[int64]domain.MenuItem, lines []domain.LineRequest) (Quote, error) {
	for _, line := range lines {
		if line.Quantity < 1 {
			return Quote{}, domain.Invalid(domain.ErrInvalidQuantity, line.Quantity)
		}
	}

	quote := Quote{Lines: make([]Line, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		item, ok := menu[line.MenuItemID]
		if !ok || item.RestaurantID != restaurantID {
			return Quote{}, domain.NotFound("menu item", line.MenuItemID)
		}
		priced := Line{MenuItem: item, Quantity: line.Quantity, UnitPrice: item.Price}
		quote.Lines = append(quote.Lines, priced)
		quote.Total = quote.Total.Add(priced.Total())
	}
	return quote, nil
}
