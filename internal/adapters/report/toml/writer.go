package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/toolrental/internal/application"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	reportFileMode  = 0o644
	reportDirMode   = 0o755
	tempFilePattern = ".toolsim-report-*.toml.tmp"
)

// Writer exports end-of-run reports as TOML. The target file is replaced
// atomically.
type Writer struct {
	path string
}

func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, errors.New("report path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve report path: %w", err)
	}

	return &Writer{path: filepath.Clean(absPath)}, nil
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Write(ctx context.Context, report application.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.path), reportDirMode); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := toml.Marshal(toSchema(report))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(w.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp report file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp report file: %w", err)
	}

	if err := tempFile.Chmod(reportFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp report file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp report file: %w", err)
	}

	if err := os.Rename(tempName, w.path); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(report application.Report) reportSchema {
	schema := reportSchema{
		Version:             currentSchemaVersion,
		Seed:                report.Seed,
		Days:                report.Days,
		FleetSize:           report.FleetSize,
		Revenue:             report.Revenue,
		InvariantViolations: report.InvariantViolations,
		FailedRentals:       report.FailedRentals,
	}

	availableByType := make(map[string][]string)
	for _, tool := range report.Available {
		availableByType[string(tool.Type)] = append(availableByType[string(tool.Type)], string(tool.ID))
	}
	for _, entry := range report.Inventory {
		schema.Inventory = append(schema.Inventory, inventorySchema{
			Type:      string(entry.Type),
			Available: entry.Available,
			Total:     entry.Total,
			Tools:     availableByType[string(entry.Type)],
		})
	}

	for _, category := range report.Categories {
		schema.Categories = append(schema.Categories, categorySchema{
			Name:      string(category.Category),
			Customers: category.Customers,
			Rentals:   category.Rentals,
			Revenue:   category.Revenue,
		})
	}

	for _, customer := range report.Customers {
		encoded := customerSchema{
			ID:        string(customer.ID),
			Category:  string(customer.Category),
			ToolsHeld: customer.ToolsHeld,
			MaxTools:  customer.MaxTools,
		}
		for _, rental := range customer.ActiveRentals {
			encoded.Active = append(encoded.Active, toRentalSchema(rental))
		}
		schema.Customers = append(schema.Customers, encoded)
	}

	for _, rental := range report.Returned {
		schema.Returned = append(schema.Returned, toRentalSchema(rental))
	}

	for _, day := range report.Daily {
		schema.Daily = append(schema.Daily, daySchema{
			Day:           day.Day,
			Rentals:       day.Rentals,
			Returns:       day.Returns,
			NullRentals:   day.NullRentals,
			FailedRentals: day.FailedRentals,
			Revenue:       day.Revenue,
			Available:     day.Available,
		})
	}

	return schema
}

func toRentalSchema(rental application.RentalView) rentalSchema {
	tools := make([]string, 0, len(rental.Tools))
	for _, id := range rental.Tools {
		tools = append(tools, string(id))
	}

	return rentalSchema{
		ID:            rental.ID,
		Customer:      string(rental.CustomerID),
		Tools:         tools,
		Duration:      rental.Duration,
		RemainingDays: rental.RemainingDays,
		TotalPrice:    rental.TotalPrice,
		StartDay:      rental.StartDay,
	}
}
