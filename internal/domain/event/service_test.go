package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locafest/internal/core/apperror"
	"locafest/internal/core/types"
	"locafest/internal/domain/activity"
	"locafest/internal/domain/kit"
	"locafest/internal/domain/material"
)

type fakeRepo struct {
	events map[int64]*Event
	lines  map[int64][]LineItem
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: map[int64]*Event{}, lines: map[int64][]LineItem{}}
}

func (r *fakeRepo) Create(_ context.Context, ev *Event) error {
	r.nextID++
	ev.ID = r.nextID
	c := *ev
	c.Lines = nil
	r.events[ev.ID] = &c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Event, error) {
	ev, ok := r.events[id]
	if !ok {
		return nil, apperror.NewNotFound("event", id)
	}
	c := *ev
	return &c, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, id int64) (*Event, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) List(_ context.Context, _ ListFilter) ([]Event, error) {
	out := make([]Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, *ev)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status Status) error {
	ev, ok := r.events[id]
	if !ok {
		return apperror.NewNotFound("event", id)
	}
	ev.Status = status
	return nil
}

func (r *fakeRepo) UpdatePayment(_ context.Context, id int64, paid types.Money, status PaymentStatus) error {
	ev, ok := r.events[id]
	if !ok {
		return apperror.NewNotFound("event", id)
	}
	ev.Paid = paid
	ev.PaymentStatus = status
	return nil
}

func (r *fakeRepo) UpdateObservations(_ context.Context, id int64, observations string) error {
	ev, ok := r.events[id]
	if !ok {
		return apperror.NewNotFound("event", id)
	}
	ev.Observations = &observations
	return nil
}

func (r *fakeRepo) CreateLines(_ context.Context, eventID int64, lines []LineItem) error {
	r.lines[eventID] = append([]LineItem(nil), lines...)
	return nil
}

func (r *fakeRepo) GetLines(_ context.Context, eventID int64) ([]LineItem, error) {
	return append([]LineItem(nil), r.lines[eventID]...), nil
}

func (r *fakeRepo) DeleteLines(_ context.Context, eventID int64) error {
	delete(r.lines, eventID)
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return apperror.NewNotFound("event", id)
	}
	delete(r.events, id)
	return nil
}

type fakeLedger struct {
	materials map[int64]*material.Material
}

func (l *fakeLedger) GetByID(_ context.Context, id int64) (*material.Material, error) {
	m, ok := l.materials[id]
	if !ok {
		return nil, apperror.NewNotFound("material", id)
	}
	c := *m
	return &c, nil
}

func (l *fakeLedger) Reserve(ctx context.Context, id int64, qty types.Quantity) (*material.Material, error) {
	m, ok := l.materials[id]
	if !ok {
		return nil, apperror.NewNotFound("material", id)
	}
	if m.Quantity.LessThan(qty) {
		return nil, apperror.NewInsufficientStock(m.Name, qty.InexactFloat64(), m.Quantity.InexactFloat64())
	}
	before := *m
	m.Quantity = m.Quantity.Sub(qty)
	return &before, nil
}

func (l *fakeLedger) Release(_ context.Context, id int64, qty types.Quantity) error {
	m, ok := l.materials[id]
	if !ok {
		return apperror.NewNotFound("material", id)
	}
	m.Quantity = m.Quantity.Add(qty)
	return nil
}

type fakeKits struct {
	kits map[int64]*kit.Kit
}

func (f *fakeKits) MarkInUse(_ context.Context, id int64) (*kit.Kit, error) {
	k, ok := f.kits[id]
	if !ok {
		return nil, apperror.NewNotFound("kit", id)
	}
	if k.Status != kit.StatusAvailable {
		return nil, apperror.NewConflict("kit is not available")
	}
	before := *k
	k.Status = kit.StatusInUse
	return &before, nil
}

func (f *fakeKits) MarkAvailable(_ context.Context, id int64) error {
	k, ok := f.kits[id]
	if !ok {
		return apperror.NewNotFound("kit", id)
	}
	k.Status = kit.StatusAvailable
	return nil
}

type cashEntry struct {
	eventID int64
	amount  types.Money
}

type fakeCash struct {
	entries []cashEntry
}

func (f *fakeCash) RecordEventRevenue(_ context.Context, eventID int64, _ string, amount types.Money) error {
	f.entries = append(f.entries, cashEntry{eventID: eventID, amount: amount})
	return nil
}

func (f *fakeCash) ReverseForEvent(_ context.Context, eventID int64) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.eventID != eventID {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

type fakeQuotes struct {
	quotes map[int64]bool
}

func (f *fakeQuotes) Delete(_ context.Context, id int64) error {
	if !f.quotes[id] {
		return apperror.NewNotFound("quote", id)
	}
	delete(f.quotes, id)
	return nil
}

// world bundles every fake so the transaction stub can snapshot and restore
// it as one unit, the way a database rollback would.
type world struct {
	repo   *fakeRepo
	ledger *fakeLedger
	kits   *fakeKits
	cash   *fakeCash
	quotes *fakeQuotes
}

func (w *world) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	events := make(map[int64]*Event, len(w.repo.events))
	for id, ev := range w.repo.events {
		c := *ev
		events[id] = &c
	}
	lines := make(map[int64][]LineItem, len(w.repo.lines))
	for id, ls := range w.repo.lines {
		lines[id] = append([]LineItem(nil), ls...)
	}
	nextID := w.repo.nextID
	mats := make(map[int64]*material.Material, len(w.ledger.materials))
	for id, m := range w.ledger.materials {
		c := *m
		mats[id] = &c
	}
	kits := make(map[int64]*kit.Kit, len(w.kits.kits))
	for id, k := range w.kits.kits {
		c := *k
		kits[id] = &c
	}
	entries := append([]cashEntry(nil), w.cash.entries...)
	quotes := make(map[int64]bool, len(w.quotes.quotes))
	for id := range w.quotes.quotes {
		quotes[id] = true
	}

	if err := fn(ctx); err != nil {
		w.repo.events = events
		w.repo.lines = lines
		w.repo.nextID = nextID
		w.ledger.materials = mats
		w.kits.kits = kits
		w.cash.entries = entries
		w.quotes.quotes = quotes
		return err
	}
	return nil
}

func newWorld() (*Service, *world) {
	w := &world{
		repo:   newFakeRepo(),
		ledger: &fakeLedger{materials: map[int64]*material.Material{}},
		kits:   &fakeKits{kits: map[int64]*kit.Kit{}},
		cash:   &fakeCash{},
		quotes: &fakeQuotes{quotes: map[int64]bool{}},
	}
	svc := NewService(w.repo, w.ledger, w.kits, w.cash, w.quotes, activity.Discard{}, w)
	return svc, w
}

func (w *world) addMaterial(id int64, category material.Category, qty int64, resale string) {
	w.ledger.materials[id] = &material.Material{
		ID:          id,
		Name:        "material",
		Category:    category,
		Quantity:    types.NewQuantity(qty),
		ResalePrice: types.MustMoney(resale),
	}
}

func (w *world) addKit(id int64, price string) {
	w.kits.kits[id] = &kit.Kit{
		ID:     id,
		Name:   "kit",
		Price:  types.MustMoney(price),
		Status: kit.StatusAvailable,
	}
}

func ptr[T any](v T) *T { return &v }

func testEvent() *Event {
	return &Event{
		ClientID: 1,
		Name:     "festa de casamento",
		Date:     time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Labor:    types.MustMoney("50.00"),
		Freight:  types.MustMoney("30.00"),
	}
}

func bookTestEvent(t *testing.T, svc *Service, w *world) *Event {
	t.Helper()
	w.addMaterial(1, material.CategoryRental, 20, "10.00")
	w.addMaterial(2, material.CategoryDisposable, 100, "2.00")
	w.addKit(7, "100.00")

	ev := testEvent()
	err := svc.Create(context.Background(), ev, []LineInput{
		{MaterialID: ptr(int64(1)), Quantity: types.NewQuantity(5)},
		{MaterialID: ptr(int64(2)), Quantity: types.NewQuantity(10)},
		{KitID: ptr(int64(7)), Quantity: types.NewQuantity(1)},
	})
	require.NoError(t, err)
	return ev
}

func TestCreateBooksLinesAndComputesTotal(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	// 5*10 + 10*2 + 1*100 + labor 50 + freight 30
	assert.True(t, ev.Total.Equal(types.MustMoney("250.00")))
	assert.Equal(t, StatusPending, ev.Status)
	assert.Equal(t, PaymentPending, ev.PaymentStatus)
	assert.True(t, w.ledger.materials[1].Quantity.Equal(types.NewQuantity(15)))
	assert.True(t, w.ledger.materials[2].Quantity.Equal(types.NewQuantity(90)))
	assert.Equal(t, kit.StatusInUse, w.kits.kits[7].Status)
	require.Len(t, w.repo.lines[ev.ID], 3)
	assert.True(t, w.repo.lines[ev.ID][0].UnitValue.Equal(types.MustMoney("10.00")))
	assert.True(t, w.repo.lines[ev.ID][2].UnitValue.Equal(types.MustMoney("100.00")))
}

func TestBookKeepsCallerStatus(t *testing.T) {
	svc, w := newWorld()
	w.addMaterial(1, material.CategoryRental, 20, "10.00")

	ev := testEvent()
	ev.Status = StatusConfirmed
	err := w.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return svc.Book(ctx, ev, []LineInput{
			{MaterialID: ptr(int64(1)), Quantity: types.NewQuantity(5)},
		})
	})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, w.repo.events[ev.ID].Status)
}

func TestCreateRollsBackOnUnavailableKit(t *testing.T) {
	svc, w := newWorld()
	w.addMaterial(1, material.CategoryRental, 20, "10.00")
	w.addKit(7, "100.00")
	w.kits.kits[7].Status = kit.StatusMaintenance

	ev := testEvent()
	err := svc.Create(context.Background(), ev, []LineInput{
		{MaterialID: ptr(int64(1)), Quantity: types.NewQuantity(5)},
		{KitID: ptr(int64(7)), Quantity: types.NewQuantity(1)},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))

	assert.Empty(t, w.repo.events)
	assert.True(t, w.ledger.materials[1].Quantity.Equal(types.NewQuantity(20)))
}

func TestLineMustReferenceMaterialXorKit(t *testing.T) {
	svc, w := newWorld()
	w.addMaterial(1, material.CategoryRental, 20, "10.00")

	err := svc.Create(context.Background(), testEvent(), []LineInput{
		{MaterialID: ptr(int64(1)), KitID: ptr(int64(7)), Quantity: types.NewQuantity(1)},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	err = svc.Create(context.Background(), testEvent(), []LineInput{
		{Quantity: types.NewQuantity(1)},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRegisterPaymentPostsDeltas(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w) // total 250

	require.NoError(t, svc.RegisterPayment(context.Background(), ev.ID, PaymentModePartial, types.MustMoney("100.00")))
	got := w.repo.events[ev.ID]
	assert.True(t, got.Paid.Equal(types.MustMoney("100.00")))
	assert.Equal(t, PaymentPartial, got.PaymentStatus)

	require.NoError(t, svc.RegisterPayment(context.Background(), ev.ID, PaymentModeTotal, types.Zero()))
	got = w.repo.events[ev.ID]
	assert.True(t, got.Paid.Equal(types.MustMoney("250.00")))
	assert.Equal(t, PaymentTotal, got.PaymentStatus)

	// ledger got the deltas, not the running totals
	require.Len(t, w.cash.entries, 2)
	assert.True(t, w.cash.entries[0].amount.Equal(types.MustMoney("100.00")))
	assert.True(t, w.cash.entries[1].amount.Equal(types.MustMoney("150.00")))
}

func TestRegisterPaymentRejectsOverpay(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	err := svc.RegisterPayment(context.Background(), ev.ID, PaymentModePartial, types.MustMoney("300.00"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, w.cash.entries)
}

func TestRegisterPaymentOnSettledEventConflicts(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	require.NoError(t, svc.RegisterPayment(context.Background(), ev.ID, PaymentModeTotal, types.Zero()))
	err := svc.RegisterPayment(context.Background(), ev.ID, PaymentModePartial, types.MustMoney("1.00"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestFinalizeTotalReturnsRentalsAndKits(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	require.NoError(t, svc.Finalize(context.Background(), ev.ID, FinalizeTotal, "tudo devolvido"))

	got := w.repo.events[ev.ID]
	assert.Equal(t, StatusFinalized, got.Status)
	require.NotNil(t, got.Observations)
	assert.Equal(t, "tudo devolvido", *got.Observations)

	// rental goes back on the shelf, disposable stays consumed
	assert.True(t, w.ledger.materials[1].Quantity.Equal(types.NewQuantity(20)))
	assert.True(t, w.ledger.materials[2].Quantity.Equal(types.NewQuantity(90)))
	assert.Equal(t, kit.StatusAvailable, w.kits.kits[7].Status)
}

func TestFinalizePartialReleasesOnlyKits(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	require.NoError(t, svc.Finalize(context.Background(), ev.ID, FinalizePartial, ""))

	got := w.repo.events[ev.ID]
	assert.Equal(t, StatusPartiallyFinalized, got.Status)
	assert.Nil(t, got.Observations)
	assert.True(t, w.ledger.materials[1].Quantity.Equal(types.NewQuantity(15)))
	assert.Equal(t, kit.StatusAvailable, w.kits.kits[7].Status)
}

func TestFinalizeTwiceConflicts(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	require.NoError(t, svc.Finalize(context.Background(), ev.ID, FinalizeTotal, ""))
	err := svc.Finalize(context.Background(), ev.ID, FinalizeTotal, "")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestSetStatusRejectsFinalizedTargets(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	err := svc.SetStatus(context.Background(), ev.ID, StatusFinalized)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	require.NoError(t, svc.SetStatus(context.Background(), ev.ID, StatusInAssembly))
	assert.Equal(t, StatusInAssembly, w.repo.events[ev.ID].Status)
}

func TestDeleteReversesEverything(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)
	w.quotes.quotes[42] = true
	w.repo.events[ev.ID].QuoteID = ptr(int64(42))

	require.NoError(t, svc.RegisterPayment(context.Background(), ev.ID, PaymentModePartial, types.MustMoney("100.00")))
	require.Len(t, w.cash.entries, 1)

	require.NoError(t, svc.Delete(context.Background(), ev.ID))

	assert.Empty(t, w.repo.events)
	assert.Empty(t, w.repo.lines)
	assert.Empty(t, w.cash.entries)
	assert.Empty(t, w.quotes.quotes)
	assert.True(t, w.ledger.materials[1].Quantity.Equal(types.NewQuantity(20)))
	assert.True(t, w.ledger.materials[2].Quantity.Equal(types.NewQuantity(100)))
	assert.Equal(t, kit.StatusAvailable, w.kits.kits[7].Status)
}

func TestDeleteFinalizedEventSkipsStockReturn(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)

	require.NoError(t, svc.Finalize(context.Background(), ev.ID, FinalizeTotal, ""))
	require.NoError(t, svc.Delete(context.Background(), ev.ID))

	assert.Empty(t, w.repo.events)
	// finalization already settled inventory; deletion must not double it
	assert.True(t, w.ledger.materials[1].Quantity.Equal(types.NewQuantity(20)))
	assert.Equal(t, kit.StatusAvailable, w.kits.kits[7].Status)
}

func TestDeleteToleratesMissingQuote(t *testing.T) {
	svc, w := newWorld()
	ev := bookTestEvent(t, svc, w)
	w.repo.events[ev.ID].QuoteID = ptr(int64(99))

	require.NoError(t, svc.Delete(context.Background(), ev.ID))
	assert.Empty(t, w.repo.events)
}
