package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/material"
)

// ExportCashFlow renders the filtered ledger as an XLSX workbook with a
// summary footer.
func (s *Service) ExportCashFlow(ctx context.Context, filter cashflow.Filter) ([]byte, error) {
	entries, err := s.cash.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.cash.Summarize(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	headers := []string{"Date", "Description", "Kind", "Amount", "Observations"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		amount, _ := e.Amount.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(e.Kind))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), amount)
		if e.Observations != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *e.Observations)
		}
		row++
	}

	row++
	revenue, _ := summary.Revenue.Float64()
	expense, _ := summary.Expense.Float64()
	balance, _ := summary.Balance.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Revenue")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), revenue)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row+1), "Expense")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row+1), expense)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row+2), "Balance")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row+2), balance)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write cash-flow workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportInventory renders the current stock position as an XLSX workbook.
func (s *Service) ExportInventory(ctx context.Context) ([]byte, error) {
	materials, err := s.inventory.List(ctx, material.ListFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	headers := []string{"Name", "Category", "Unit", "Quantity", "Purchase Price", "Resale Price"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, m := range materials {
		row := i + 2
		qty, _ := m.Quantity.Float64()
		purchase, _ := m.PurchasePrice.Float64()
		resale, _ := m.ResalePrice.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(m.Category))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), qty)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), purchase)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), resale)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write inventory workbook: %w", err)
	}
	return buf.Bytes(), nil
}
