package quote

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"locafest/internal/core/apperror"
	"locafest/internal/core/tx"
	"locafest/internal/core/types"
	"locafest/internal/domain/activity"
	"locafest/internal/domain/client"
	"locafest/internal/domain/event"
	"locafest/internal/domain/kit"
	"locafest/internal/domain/material"
	"locafest/pkg/logger"
)

// MaterialCatalog is the slice of the material service a quote needs.
type MaterialCatalog interface {
	CheckAvailable(ctx context.Context, id int64, qty types.Quantity) (*material.Material, error)
}

// KitCatalog is the slice of the kit service a quote needs.
type KitCatalog interface {
	CheckAvailable(ctx context.Context, id int64) (*kit.Kit, error)
}

// ClientDirectory resolves the recipient of the proposal email.
type ClientDirectory interface {
	GetByID(ctx context.Context, id int64) (*client.Client, error)
}

// Booker converts an approved quote into a confirmed event.
type Booker interface {
	Book(ctx context.Context, ev *event.Event, lines []event.LineInput) error
}

// MailLine is one priced row of the proposal email.
type MailLine struct {
	Name      string
	Quantity  types.Quantity
	UnitValue types.Money
}

// Mailer delivers the proposal with its approval link.
type Mailer interface {
	SendQuoteProposal(ctx context.Context, to string, q *Quote, lines []MailLine) error
}

// Service coordinates quote creation and token-based approval.
type Service struct {
	repo      Repository
	materials MaterialCatalog
	kits      KitCatalog
	clients   ClientDirectory
	events    Booker
	mailer    Mailer
	activity  activity.Recorder
	txm       tx.Manager
}

func NewService(
	repo Repository,
	materials MaterialCatalog,
	kits KitCatalog,
	clients ClientDirectory,
	events Booker,
	mailer Mailer,
	rec activity.Recorder,
	txm tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		materials: materials,
		kits:      kits,
		clients:   clients,
		events:    events,
		mailer:    mailer,
		activity:  rec,
		txm:       txm,
	}
}

// Create validates availability for every item without reserving anything,
// prices the proposal from the current catalog, persists it with a fresh
// approval token and emails the client.
//
// The email goes out only after the quote is committed. A delivery failure
// therefore never loses the quote; the error is surfaced as Unavailable so
// the caller can retry delivery or hand the approval link out manually.
func (s *Service) Create(ctx context.Context, q *Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}

	var recipient *client.Client
	var mailLines []MailLine
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		cl, err := s.clients.GetByID(ctx, q.ClientID)
		if err != nil {
			return err
		}
		recipient = cl

		total := q.Labor.Add(q.Freight)
		mailLines = make([]MailLine, 0, len(q.Items))
		for _, it := range q.Items {
			line := MailLine{Quantity: it.Quantity}
			switch it.Kind {
			case ItemMaterial:
				m, err := s.materials.CheckAvailable(ctx, it.ID, it.Quantity)
				if err != nil {
					return err
				}
				line.Name = m.Name
				line.UnitValue = m.ResalePrice
			case ItemKit:
				k, err := s.kits.CheckAvailable(ctx, it.ID)
				if err != nil {
					return err
				}
				line.Name = k.Name
				line.UnitValue = k.Price
			}
			total = total.Add(line.UnitValue.Mul(it.Quantity))
			mailLines = append(mailLines, line)
		}

		q.Total = total
		q.Token = uuid.NewString()
		q.Status = StatusPending
		return s.repo.Create(ctx, q)
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, activity.KindQuoteCreated, &q.ID,
		fmt.Sprintf("quote %q created for %s, total %s", q.EventName, recipient.Name, q.Total.StringFixed(2)))

	if err := s.mailer.SendQuoteProposal(ctx, recipient.Email, q, mailLines); err != nil {
		logger.Warn(ctx, "quote saved but proposal email failed",
			"quote_id", q.ID, "recipient", recipient.Email, "error", err)
		return apperror.NewUnavailable("mailer", err)
	}
	return nil
}

// GetByID returns one quote.
func (s *Service) GetByID(ctx context.Context, id int64) (*Quote, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns quotes matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Quote, error) {
	return s.repo.List(ctx, filter)
}

// Approve consumes an approval token: the pending quote it names is
// re-validated against current stock, booked as a confirmed event and marked
// approved, all in one transaction. A token that was already consumed, or
// that never existed, yields NotFound; a stock shortage rolls everything back
// and leaves the quote pending so it can be retried once stock frees up.
func (s *Service) Approve(ctx context.Context, token string) (*event.Event, error) {
	var q *Quote
	var ev *event.Event
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		q, err = s.repo.GetPendingByToken(ctx, token)
		if err != nil {
			return err
		}

		ev = &event.Event{
			QuoteID:      &q.ID,
			ClientID:     q.ClientID,
			Name:         q.EventName,
			Type:         q.EventType,
			Date:         q.EventDate,
			PickupDate:   q.PickupDate,
			Observations: q.Observations,
			Labor:        q.Labor,
			Freight:      q.Freight,
			Status:       event.StatusConfirmed,
		}
		lines := make([]event.LineInput, 0, len(q.Items))
		for _, it := range q.Items {
			in := event.LineInput{Quantity: it.Quantity}
			id := it.ID
			switch it.Kind {
			case ItemMaterial:
				in.MaterialID = &id
			case ItemKit:
				in.KitID = &id
			}
			lines = append(lines, in)
		}

		if err := s.events.Book(ctx, ev, lines); err != nil {
			return err
		}
		return s.repo.UpdateStatus(ctx, q.ID, StatusApproved)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activity.KindQuoteApproved, &q.ID,
		fmt.Sprintf("quote %q approved, event #%d booked", q.EventName, ev.ID))
	return ev, nil
}

// Refuse consumes an approval token and marks the quote refused without
// touching inventory. Like Approve it is single-use.
func (s *Service) Refuse(ctx context.Context, token string) error {
	var q *Quote
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		q, err = s.repo.GetPendingByToken(ctx, token)
		if err != nil {
			return err
		}
		return s.repo.UpdateStatus(ctx, q.ID, StatusRefused)
	})
	if err != nil {
		return err
	}
	s.activity.Record(ctx, activity.KindQuoteRefused, &q.ID,
		fmt.Sprintf("quote %q refused", q.EventName))
	return nil
}
