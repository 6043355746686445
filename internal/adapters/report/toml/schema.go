package toml

const currentSchemaVersion = 1

type reportSchema struct {
	Version             int               `toml:"version"`
	Seed                uint64            `toml:"seed"`
	Days                int               `toml:"days"`
	FleetSize           int               `toml:"fleet_size"`
	Revenue             float64           `toml:"revenue"`
	InvariantViolations int               `toml:"invariant_violations"`
	FailedRentals       int               `toml:"failed_rentals"`
	Inventory           []inventorySchema `toml:"inventory"`
	Categories          []categorySchema  `toml:"categories"`
	Customers           []customerSchema  `toml:"customers"`
	Returned            []rentalSchema    `toml:"returned"`
	Daily               []daySchema       `toml:"daily"`
}

type inventorySchema struct {
	Type      string   `toml:"type"`
	Available int      `toml:"available"`
	Total     int      `toml:"total"`
	Tools     []string `toml:"tools,omitempty"`
}

type categorySchema struct {
	Name      string  `toml:"name"`
	Customers int     `toml:"customers"`
	Rentals   int     `toml:"rentals"`
	Revenue   float64 `toml:"revenue"`
}

type customerSchema struct {
	ID        string         `toml:"id"`
	Category  string         `toml:"category"`
	ToolsHeld int            `toml:"tools_held"`
	MaxTools  int            `toml:"max_tools"`
	Active    []rentalSchema `toml:"active,omitempty"`
}

type rentalSchema struct {
	ID            string   `toml:"id"`
	Customer      string   `toml:"customer"`
	Tools         []string `toml:"tools"`
	Duration      int      `toml:"duration"`
	RemainingDays int      `toml:"remaining_days"`
	TotalPrice    float64  `toml:"total_price"`
	StartDay      int      `toml:"start_day"`
}

type daySchema struct {
	Day           int     `toml:"day"`
	Rentals       int     `toml:"rentals"`
	Returns       int     `toml:"returns"`
	NullRentals   int     `toml:"null_rentals"`
	FailedRentals int     `toml:"failed_rentals"`
	Revenue       float64 `toml:"revenue"`
	Available     int     `toml:"available"`
}
