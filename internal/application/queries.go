package application

import "github.com/bnema/toolrental/internal/domain"

type ToolView struct {
	ID    domain.ToolID
	Type  domain.ToolType
	Name  string
	Price float64
}

type RentalView struct {
	ID            string
	CustomerID    domain.CustomerID
	Tools         []domain.ToolID
	Duration      int
	RemainingDays int
	TotalPrice    float64
	StartDay      int
}

type CustomerStatus struct {
	ID            domain.CustomerID
	Category      domain.CustomerCategory
	ToolsHeld     int
	MaxTools      int
	ActiveRentals []RentalView
}

type DaySummary struct {
	Day         int
	Rentals     int
	Returns     int
	NullRentals   int
	FailedRentals int
	Revenue       float64
	Available     int
}

type CategorySummary struct {
	Category  domain.CustomerCategory
	Customers int
	Rentals   int
	Revenue   float64
}

type InventorySummary struct {
	Type      domain.ToolType
	Available int
	Total     int
}

// Report is the end-of-run state handed to the reporting layer.
type Report struct {
	Seed                uint64
	Days                int
	FleetSize           int
	Revenue             float64
	Available           []ToolView
	Inventory           []InventorySummary
	Customers           []CustomerStatus
	Returned            []RentalView
	Daily               []DaySummary
	Categories          []CategorySummary
	InvariantViolations int
	FailedRentals       int
}

func toolView(tool domain.Tool) ToolView {
	return ToolView{ID: tool.ID, Type: tool.Type, Name: tool.Name, Price: tool.Price}
}

func rentalView(rental domain.Rental) RentalView {
	tools := rental.Tools()
	ids := make([]domain.ToolID, 0, len(tools))
	for _, tool := range tools {
		ids = append(ids, tool.ID)
	}

	return RentalView{
		ID:            rental.ID().String(),
		CustomerID:    rental.CustomerID(),
		Tools:         ids,
		Duration:      rental.Duration(),
		RemainingDays: rental.RemainingDays(),
		TotalPrice:    rental.TotalPrice(),
		StartDay:      rental.StartDay(),
	}
}

func daySummary(day domain.DayReport) DaySummary {
	return DaySummary{
		Day:           day.Day,
		Rentals:       len(day.Created),
		Returns:       len(day.Returned),
		NullRentals:   day.NullRentals,
		FailedRentals: day.FailedRentals,
		Revenue:       day.Revenue,
		Available:     day.Available,
	}
}
