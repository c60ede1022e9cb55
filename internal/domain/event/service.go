package event

import (
	"context"
	"fmt"

	"locafest/internal/core/apperror"
	"locafest/internal/core/tx"
	"locafest/internal/core/types"
	"locafest/internal/domain/activity"
	"locafest/internal/domain/kit"
	"locafest/internal/domain/material"
	"locafest/pkg/logger"
)

// MaterialLedger is the slice of the material service an event needs.
type MaterialLedger interface {
	Reserve(ctx context.Context, id int64, qty types.Quantity) (*material.Material, error)
	Release(ctx context.Context, id int64, qty types.Quantity) error
	GetByID(ctx context.Context, id int64) (*material.Material, error)
}

// KitCatalog is the slice of the kit service an event needs.
type KitCatalog interface {
	MarkInUse(ctx context.Context, id int64) (*kit.Kit, error)
	MarkAvailable(ctx context.Context, id int64) error
}

// RevenueBook records event payments into the cash-flow ledger and reverses
// them on deletion.
type RevenueBook interface {
	RecordEventRevenue(ctx context.Context, eventID int64, eventName string, amount types.Money) error
	ReverseForEvent(ctx context.Context, eventID int64) error
}

// QuoteStore removes the quote an event originated from when the event is
// deleted. Declared here so the quote package can depend on event without a
// cycle.
type QuoteStore interface {
	Delete(ctx context.Context, id int64) error
}

// Service coordinates event booking, payments and finalization.
type Service struct {
	repo      Repository
	materials MaterialLedger
	kits      KitCatalog
	cash      RevenueBook
	quotes    QuoteStore
	activity  activity.Recorder
	txm       tx.Manager
}

func NewService(
	repo Repository,
	materials MaterialLedger,
	kits KitCatalog,
	cash RevenueBook,
	quotes QuoteStore,
	rec activity.Recorder,
	txm tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		materials: materials,
		kits:      kits,
		cash:      cash,
		quotes:    quotes,
		activity:  rec,
		txm:       txm,
	}
}

// Book inserts the event and its lines, reserving every referenced material
// and marking every referenced kit in use. Unit values are resolved from the
// current catalog at booking time and frozen on the lines. Book runs inside
// the caller's transaction when one is active, so a quote approval and its
// event share one atomic scope.
//
// On success ev.ID, ev.Total, ev.Status and ev.PaymentStatus are populated.
func (s *Service) Book(ctx context.Context, ev *Event, lines []LineInput) error {
	if err := ev.Validate(ctx); err != nil {
		return err
	}
	if len(lines) == 0 {
		return apperror.NewValidation("event requires at least one line item")
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		total := ev.Labor.Add(ev.Freight)
		items := make([]LineItem, 0, len(lines))

		for _, l := range lines {
			item := LineItem{
				MaterialID: l.MaterialID,
				KitID:      l.KitID,
				Quantity:   l.Quantity,
			}
			switch {
			case l.MaterialID != nil:
				m, err := s.materials.Reserve(ctx, *l.MaterialID, l.Quantity)
				if err != nil {
					return err
				}
				item.UnitValue = m.ResalePrice
			case l.KitID != nil:
				k, err := s.kits.MarkInUse(ctx, *l.KitID)
				if err != nil {
					return err
				}
				item.UnitValue = k.Price
			}
			total = total.Add(item.UnitValue.Mul(l.Quantity))
			items = append(items, item)
		}

		ev.Total = total
		ev.Paid = types.Zero()
		if ev.Status == "" {
			ev.Status = StatusPending
		}
		ev.PaymentStatus = PaymentPending

		if err := s.repo.Create(ctx, ev); err != nil {
			return err
		}
		for i := range items {
			items[i].EventID = ev.ID
		}
		if err := s.repo.CreateLines(ctx, ev.ID, items); err != nil {
			return err
		}
		ev.Lines = items
		return nil
	})
}

// Create books an event directly, without a quote.
func (s *Service) Create(ctx context.Context, ev *Event, lines []LineInput) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.Book(ctx, ev, lines)
	})
	if err != nil {
		return err
	}
	s.activity.Record(ctx, activity.KindEventCreated, &ev.ID,
		fmt.Sprintf("event %q booked, total %s", ev.Name, ev.Total.StringFixed(2)))
	return nil
}

// GetByID returns the event with its lines.
func (s *Service) GetByID(ctx context.Context, id int64) (*Event, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.Lines = lines
	return ev, nil
}

// List returns events matching the filter, without lines.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	return s.repo.List(ctx, filter)
}

// SetStatus moves the event along pending -> confirmed -> in_assembly.
// Finalized states are reachable only through Finalize.
func (s *Service) SetStatus(ctx context.Context, id int64, status Status) error {
	switch status {
	case StatusPending, StatusConfirmed, StatusInAssembly:
	default:
		return apperror.NewValidation(fmt.Sprintf("status %q cannot be set directly", status))
	}
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		ev, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if ev.Closed() {
			return apperror.NewConflict("event is already finalized")
		}
		return s.repo.UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return err
	}
	s.activity.Record(ctx, activity.KindEventStatus, &id,
		fmt.Sprintf("event status changed to %s", status))
	return nil
}

// RegisterPayment applies a payment against the outstanding balance. A total
// payment settles whatever remains; a partial payment must be positive and no
// larger than the outstanding balance. The paid delta is mirrored into the
// cash-flow ledger in the same transaction.
func (s *Service) RegisterPayment(ctx context.Context, id int64, mode PaymentMode, amount types.Money) error {
	var delta types.Money
	var name string
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		ev, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		outstanding := ev.Outstanding()
		if !outstanding.IsPositive() {
			return apperror.NewConflict("event is already fully paid")
		}

		switch mode {
		case PaymentModeTotal:
			delta = outstanding
		case PaymentModePartial:
			if !amount.IsPositive() {
				return apperror.NewValidation("payment amount must be positive")
			}
			if amount.GreaterThan(outstanding) {
				return apperror.NewValidation(fmt.Sprintf("payment amount %s exceeds outstanding balance %s",
					amount.StringFixed(2), outstanding.StringFixed(2)))
			}
			delta = amount
		default:
			return apperror.NewValidation(fmt.Sprintf("unknown payment mode %q", mode))
		}

		paid := ev.Paid.Add(delta)
		status := PaymentPartial
		if paid.Equal(ev.Total) {
			status = PaymentTotal
		}
		if err := s.repo.UpdatePayment(ctx, id, paid, status); err != nil {
			return err
		}
		name = ev.Name
		return s.cash.RecordEventRevenue(ctx, id, ev.Name, delta)
	})
	if err != nil {
		return err
	}
	s.activity.Record(ctx, activity.KindEventPayment, &id,
		fmt.Sprintf("payment of %s registered for event %q", delta.StringFixed(2), name))
	return nil
}

// Finalize closes an event. In total mode rental materials go back to stock
// and kits become available again; in partial mode only kits are released,
// since the materials are assumed damaged or retained by the client.
func (s *Service) Finalize(ctx context.Context, id int64, mode FinalizeMode, observations string) error {
	var target Status
	switch mode {
	case FinalizeTotal:
		target = StatusFinalized
	case FinalizePartial:
		target = StatusPartiallyFinalized
	default:
		return apperror.NewValidation(fmt.Sprintf("unknown finalize mode %q", mode))
	}

	var name string
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		ev, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if ev.Closed() {
			return apperror.NewConflict("event is already finalized")
		}
		lines, err := s.repo.GetLines(ctx, id)
		if err != nil {
			return err
		}

		for _, l := range lines {
			switch {
			case l.KitID != nil:
				if err := s.kits.MarkAvailable(ctx, *l.KitID); err != nil {
					return err
				}
			case l.MaterialID != nil && mode == FinalizeTotal:
				m, err := s.materials.GetByID(ctx, *l.MaterialID)
				if err != nil {
					return err
				}
				if !m.Returnable() {
					continue
				}
				if err := s.materials.Release(ctx, *l.MaterialID, l.Quantity); err != nil {
					return err
				}
			}
		}

		if observations != "" {
			if err := s.repo.UpdateObservations(ctx, id, observations); err != nil {
				return err
			}
		}
		name = ev.Name
		return s.repo.UpdateStatus(ctx, id, target)
	})
	if err != nil {
		return err
	}
	s.activity.Record(ctx, activity.KindEventFinalized, &id,
		fmt.Sprintf("event %q finalized (%s)", name, mode))
	return nil
}

// Delete removes an event and everything attached to it: cash-flow revenue is
// reversed, reserved stock is returned, line items are dropped, and the
// originating quote is deleted. Stock only returns for events that have not
// been finalized; a finalized event already settled its inventory.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var name string
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		ev, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.cash.ReverseForEvent(ctx, id); err != nil {
			return err
		}

		if !ev.Closed() {
			lines, err := s.repo.GetLines(ctx, id)
			if err != nil {
				return err
			}
			for _, l := range lines {
				switch {
				case l.MaterialID != nil:
					if err := s.materials.Release(ctx, *l.MaterialID, l.Quantity); err != nil {
						return err
					}
				case l.KitID != nil:
					if err := s.kits.MarkAvailable(ctx, *l.KitID); err != nil {
						return err
					}
				}
			}
		}

		if err := s.repo.DeleteLines(ctx, id); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		if ev.QuoteID != nil {
			if err := s.quotes.Delete(ctx, *ev.QuoteID); err != nil && !apperror.IsNotFound(err) {
				return err
			}
		}
		name = ev.Name
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "event deleted", "event_id", id, "name", name)
	s.activity.Record(ctx, activity.KindEventDeleted, &id,
		fmt.Sprintf("event %q deleted, reservations returned", name))
	return nil
}
