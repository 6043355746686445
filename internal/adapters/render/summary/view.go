package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/toolrental/internal/application"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// ShowCustomers lists every customer with in-flight rentals.
	ShowCustomers bool
	// BarWidth is the width of the inventory availability bars.
	BarWidth int
}

const defaultBarWidth = 20

func renderView(report application.Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Tool Rental Store"),
		s.header.Render(fmt.Sprintf("days: %d  seed: %d  fleet: %d", report.Days, report.Seed, report.FleetSize)),
		s.money.Render(fmt.Sprintf("revenue: %s", formatMoney(report.Revenue))),
		s.detail.Render(fmt.Sprintf("completed rentals: %d", len(report.Returned))),
	}

	if report.InvariantViolations > 0 {
		lines = append(lines, s.warning.Render(fmt.Sprintf("inventory violations: %d", report.InvariantViolations)))
	}
	if report.FailedRentals > 0 {
		lines = append(lines, s.warning.Render(fmt.Sprintf("failed rentals: %d", report.FailedRentals)))
	}

	lines = append(lines,
		s.section.Render(renderInventory(report, opts, s)),
		s.section.Render(renderCategories(report, s)),
	)

	if opts.ShowCustomers {
		lines = append(lines, s.section.Render(renderCustomers(report, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderInventory(report application.Report, opts RenderOptions, s styles) string {
	parts := []string{
		s.label.Render(fmt.Sprintf("Inventory (%d of %d available)", len(report.Available), report.FleetSize)),
	}

	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	for _, entry := range report.Inventory {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.detail.Render(fmt.Sprintf("%-9s", entry.Type)),
			" ",
			renderBar(entry.Available, entry.Total, width, s),
			" ",
			s.detail.Render(fmt.Sprintf("%d/%d", entry.Available, entry.Total)),
		)
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCategories(report application.Report, s styles) string {
	parts := []string{s.label.Render("Customers by category")}
	if len(report.Categories) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, s.empty.Render("No customers configured."))...)
	}

	for _, category := range report.Categories {
		parts = append(parts, s.detail.Render(fmt.Sprintf(
			"%-10s customers: %-3d rentals: %-4d revenue: %s",
			category.Category, category.Customers, category.Rentals, formatMoney(category.Revenue),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCustomers(report application.Report, s styles) string {
	parts := []string{s.label.Render("Active rentals")}

	active := 0
	for _, customer := range report.Customers {
		if len(customer.ActiveRentals) == 0 {
			continue
		}
		active++
		parts = append(parts, s.customer.Render(fmt.Sprintf("%s (%d/%d tools)", customer.ID, customer.ToolsHeld, customer.MaxTools)))
		for _, rental := range customer.ActiveRentals {
			parts = append(parts, s.detail.Render(rentalLine(rental)))
		}
	}

	if active == 0 {
		parts = append(parts, s.empty.Render("No rentals in flight."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func rentalLine(rental application.RentalView) string {
	tools := make([]string, 0, len(rental.Tools))
	for _, id := range rental.Tools {
		tools = append(tools, string(id))
	}

	suffix := "days"
	if rental.RemainingDays == 1 {
		suffix = "day"
	}

	return fmt.Sprintf("  %s  %d %s left  %s",
		strings.Join(tools, ", "), rental.RemainingDays, suffix, formatMoney(rental.TotalPrice))
}

func renderBar(available, total, width int, s styles) string {
	filled := 0
	if total > 0 {
		filled = int(math.Round(float64(width) * float64(available) / float64(total)))
	}
	filled = max(0, min(filled, width))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
