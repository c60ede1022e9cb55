package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"locafest/internal/core/types"
	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/event"
	"locafest/internal/domain/material"
)

type fakeRepo struct {
	counts []StatusCount
}

func (f *fakeRepo) EventCountsByStatus(context.Context) ([]StatusCount, error) {
	return f.counts, nil
}

type fakeLedger struct {
	entries []cashflow.Entry
	summary cashflow.Summary
}

func (f *fakeLedger) List(context.Context, cashflow.Filter) ([]cashflow.Entry, error) {
	return f.entries, nil
}

func (f *fakeLedger) Summarize(context.Context, cashflow.Filter) (cashflow.Summary, error) {
	return f.summary, nil
}

type fakeInventory struct {
	materials []material.Material
}

func (f *fakeInventory) List(context.Context, material.ListFilter) ([]material.Material, error) {
	return f.materials, nil
}

func TestDashboard(t *testing.T) {
	svc := NewService(
		&fakeRepo{counts: []StatusCount{
			{Status: event.StatusPending, Count: 3},
			{Status: event.StatusConfirmed, Count: 1},
		}},
		&fakeLedger{summary: cashflow.Summary{
			Revenue: types.MustMoney("1000.00"),
			Expense: types.MustMoney("400.00"),
			Balance: types.MustMoney("600.00"),
		}},
		&fakeInventory{},
	)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, d.EventsByStatus, 2)
	assert.Equal(t, int64(3), d.EventsByStatus[0].Count)
	assert.True(t, d.CashFlow.Balance.Equal(types.MustMoney("600.00")))
}

func TestExportCashFlow(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeLedger{
		entries: []cashflow.Entry{
			{
				Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				Description: "event payment: formatura",
				Kind:        cashflow.KindRevenue,
				Amount:      types.MustMoney("300.00"),
			},
		},
		summary: cashflow.Summary{
			Revenue: types.MustMoney("300.00"),
			Expense: types.Zero(),
			Balance: types.MustMoney("300.00"),
		},
	}, &fakeInventory{})

	data, err := svc.ExportCashFlow(context.Background(), cashflow.Filter{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Sheet1", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Date", cell("A1"))
	assert.Equal(t, "2026-03-10", cell("A2"))
	assert.Equal(t, "event payment: formatura", cell("B2"))
	assert.Equal(t, "revenue", cell("C2"))
	assert.Equal(t, "300", cell("D2"))
	assert.Equal(t, "Balance", cell("B6"))
	assert.Equal(t, "300", cell("D6"))
}

func TestExportInventory(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeLedger{}, &fakeInventory{
		materials: []material.Material{
			{
				Name:          "cadeira",
				Category:      material.CategoryRental,
				Unit:          "unidade",
				Quantity:      types.NewQuantity(50),
				PurchasePrice: types.MustMoney("15.00"),
				ResalePrice:   types.MustMoney("8.00"),
			},
		},
	})

	data, err := svc.ExportInventory(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "cadeira", v)
	v, err = f.GetCellValue("Sheet1", "D2")
	require.NoError(t, err)
	assert.Equal(t, "50", v)
}
