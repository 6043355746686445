package domain

import "github.com/google/uuid"

// Rental is one customer's lease of a set of tools. Everything except the
// remaining-day counter is fixed at creation.
type Rental struct {
	id            uuid.UUID
	customerID    CustomerID
	tools         []Tool
	duration      int
	remainingDays int
	totalPrice    float64
	startDay      int
}

func NewRental(id uuid.UUID, customerID CustomerID, tools []Tool, duration, startDay int) Rental {
	held := make([]Tool, len(tools))
	copy(held, tools)

	return Rental{
		id:            id,
		customerID:    customerID,
		tools:         held,
		duration:      duration,
		remainingDays: duration,
		totalPrice:    RentalPrice(tools, duration),
		startDay:      startDay,
	}
}

// NullRental is returned when a customer cannot rent on a given day.
func NullRental() Rental {
	return Rental{}
}

// RentalPrice is the sum of the tools' daily prices times the duration.
func RentalPrice(tools []Tool, duration int) float64 {
	daily := 0.0
	for _, tool := range tools {
		daily += tool.Price
	}
	return daily * float64(duration)
}

func (r Rental) ID() uuid.UUID          { return r.id }
func (r Rental) CustomerID() CustomerID { return r.customerID }
func (r Rental) Duration() int          { return r.duration }
func (r Rental) RemainingDays() int     { return r.remainingDays }
func (r Rental) TotalPrice() float64    { return r.totalPrice }
func (r Rental) StartDay() int          { return r.startDay }
func (r Rental) ToolCount() int         { return len(r.tools) }

func (r Rental) Tools() []Tool {
	tools := make([]Tool, len(r.tools))
	copy(tools, r.tools)
	return tools
}

func (r Rental) IsNull() bool {
	return r.duration == 0
}

func (r Rental) IsTerminal() bool {
	return r.remainingDays <= 0
}

func (r *Rental) tick() {
	r.remainingDays--
}
