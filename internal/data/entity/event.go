package entity

type Event struct {
	Base
	Name string `db:"name"`
	Slug string `db:"slug"`
	// HasSeats selects the pricing mode: false means flat event-level
	// pricing, true means per-zone pricing with seat reservations.
	HasSeats        bool     `db:"has_seats"`
	OriginalPrice   *float64 `db:"original_price"`
	DiscountedPrice *float64 `db:"discounted_price"`
	Currency        string   `db:"currency"`
	IsActive        bool     `db:"is_active"`
}
