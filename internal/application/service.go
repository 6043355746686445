package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/toolrental/internal/domain"
	"github.com/bnema/toolrental/internal/ports"
)

var ErrCanceledRun = errors.New("simulation canceled")

type Service struct {
	configs ports.ConfigRepository
	random  ports.RandomFactory
	logger  *slog.Logger
}

func NewService(configs ports.ConfigRepository, random ports.RandomFactory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Service{
		configs: configs,
		random:  random,
		logger:  logger,
	}
}

// LoadConfig loads the store configuration and validates it as-is.
func (s *Service) LoadConfig(ctx context.Context) (domain.Config, error) {
	return s.loadConfig(ctx, RunCommand{})
}

// Run simulates the configured number of days and reports the final state.
// Configuration problems surface before the first day runs.
func (s *Service) Run(ctx context.Context, cmd RunCommand) (Report, error) {
	cfg, err := s.loadConfig(ctx, cmd)
	if err != nil {
		return Report{}, err
	}

	if !cfg.Simulation.Seeded {
		cfg.Simulation.Seed = s.random.Seed()
		cfg.Simulation.Seeded = true
	}

	store, err := domain.NewStore(cfg, s.random.New(cfg.Simulation.Seed))
	if err != nil {
		return Report{}, fmt.Errorf("build store: %w", err)
	}

	logger := s.logger.With(slog.Uint64("seed", cfg.Simulation.Seed))
	logger.InfoContext(ctx, "simulation started",
		slog.Int("days", cfg.Simulation.Days),
		slog.Int("fleet", store.FleetSize()),
		slog.Int("customers", len(store.Customers())),
		slog.Bool("shuffle", cfg.Simulation.ShuffleCustomers),
	)

	daily := make([]DaySummary, 0, cfg.Simulation.Days)
	categories := newCategoryTally(cfg.Customers)
	for range cfg.Simulation.Days {
		if err := ctx.Err(); err != nil {
			return Report{}, fmt.Errorf("%w after day %d: %w", ErrCanceledRun, store.Day(), err)
		}

		day, err := store.CycleDay()
		if err != nil {
			return Report{}, fmt.Errorf("cycle day: %w", err)
		}
		if day.InvariantViolations > 0 || day.FailedRentals > 0 {
			logger.WarnContext(ctx, "rental attempts degraded to null rentals",
				slog.Int("day", day.Day),
				slog.Int("violations", day.InvariantViolations),
				slog.Int("failed", day.FailedRentals),
			)
		}
		logger.DebugContext(ctx, "day completed",
			slog.Int("day", day.Day),
			slog.Int("returned", len(day.Returned)),
			slog.Int("rented", len(day.Created)),
			slog.Float64("revenue", day.Revenue),
			slog.Int("available", day.Available),
		)

		categories.add(day.Created)
		daily = append(daily, daySummary(day))
		if cmd.Progress != nil {
			cmd.Progress(day.Day, cfg.Simulation.Days)
		}
	}

	report := buildReport(store, cfg.Simulation.Seed, daily, categories.summaries())
	logger.InfoContext(ctx, "simulation finished",
		slog.Int("days", report.Days),
		slog.Float64("revenue", report.Revenue),
		slog.Int("returned_rentals", len(report.Returned)),
		slog.Int("available", len(report.Available)),
	)

	return report, nil
}

func (s *Service) loadConfig(ctx context.Context, cmd RunCommand) (domain.Config, error) {
	cfg, err := s.configs.Load(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("load config: %w", err)
	}

	cmd.apply(&cfg.Simulation)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}

	return cfg, nil
}

func buildReport(store *domain.Store, seed uint64, daily []DaySummary, categories []CategorySummary) Report {
	available := store.Inventory()
	report := Report{
		Seed:                seed,
		Days:                store.Day(),
		FleetSize:           store.FleetSize(),
		Revenue:             store.Revenue(),
		Available:           make([]ToolView, 0, len(available)),
		Daily:               daily,
		Categories:          categories,
		InvariantViolations: store.InvariantViolations(),
		FailedRentals:       store.FailedRentals(),
	}

	availableByType := make(map[domain.ToolType]int)
	for _, tool := range available {
		report.Available = append(report.Available, toolView(tool))
		availableByType[tool.Type]++
	}
	for _, entry := range store.Catalog().Entries() {
		report.Inventory = append(report.Inventory, InventorySummary{
			Type:      entry.Type,
			Available: availableByType[entry.Type],
			Total:     entry.Count,
		})
	}

	for _, customer := range store.Customers() {
		status := CustomerStatus{
			ID:        customer.ID(),
			Category:  customer.Category(),
			ToolsHeld: customer.ToolsHeld(),
			MaxTools:  customer.Profile().MaxToolsAllowed,
		}
		for _, rental := range customer.ActiveRentals() {
			status.ActiveRentals = append(status.ActiveRentals, rentalView(rental))
		}
		report.Customers = append(report.Customers, status)
	}

	for _, rental := range store.ReturnedRentals() {
		report.Returned = append(report.Returned, rentalView(rental))
	}

	return report
}

type categoryTally struct {
	order   []domain.CustomerCategory
	byName  map[domain.CustomerCategory]*CategorySummary
	members map[domain.CustomerID]domain.CustomerCategory
}

func newCategoryTally(groups []domain.CustomerGroup) *categoryTally {
	tally := &categoryTally{
		byName:  make(map[domain.CustomerCategory]*CategorySummary, len(groups)),
		members: make(map[domain.CustomerID]domain.CustomerCategory),
	}
	for _, group := range groups {
		tally.order = append(tally.order, group.Category)
		tally.byName[group.Category] = &CategorySummary{Category: group.Category, Customers: group.Count}
		for n := 1; n <= group.Count; n++ {
			tally.members[domain.CustomerIDFor(group.Category, n)] = group.Category
		}
	}
	return tally
}

func (t *categoryTally) add(rentals []domain.Rental) {
	for _, rental := range rentals {
		summary, ok := t.byName[t.members[rental.CustomerID()]]
		if !ok {
			continue
		}
		summary.Rentals++
		summary.Revenue += rental.TotalPrice()
	}
}

func (t *categoryTally) summaries() []CategorySummary {
	summaries := make([]CategorySummary, 0, len(t.order))
	for _, category := range t.order {
		summaries = append(summaries, *t.byName[category])
	}
	return summaries
}
