package mailer

import (
	"context"
	"errors"
	"mime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"locafest/internal/config"
	"locafest/internal/core/types"
	"locafest/internal/domain/quote"
)

func testProposal() (*quote.Quote, []quote.MailLine) {
	q := &quote.Quote{
		EventName: "Casamento Ana e João",
		EventDate: time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC),
		Labor:     types.MustMoney("200.00"),
		Freight:   types.Zero(),
		Total:     types.MustMoney("1480.00"),
		Token:     "abc-123",
	}
	lines := []quote.MailLine{
		{Name: "cadeira", Quantity: types.NewQuantity(100), UnitValue: types.MustMoney("8.00")},
		{Name: "kit festa", Quantity: types.NewQuantity(4), UnitValue: types.MustMoney("120.00")},
	}
	return q, lines
}

func TestRenderProposal(t *testing.T) {
	q, lines := testProposal()

	body, err := renderProposal("https://locafest.example.com", q, lines)
	require.NoError(t, err)

	assert.Contains(t, body, "Casamento Ana e João")
	assert.Contains(t, body, "05/12/2026")
	assert.Contains(t, body, "https://locafest.example.com/approve/abc-123")
	assert.Contains(t, body, "cadeira")
	assert.Contains(t, body, "8.00")
	assert.Contains(t, body, "800.00") // 100 * 8.00
	assert.Contains(t, body, "kit festa")
	assert.Contains(t, body, "1480.00")
	assert.Contains(t, body, "Mão de obra")
	assert.NotContains(t, body, "Frete") // zero freight row is omitted
}

type stubDialer struct {
	messages []*gomail.Message
	err      error
}

func (d *stubDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.messages = append(d.messages, m...)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseURL = "https://locafest.example.com"
	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Port = 587
	cfg.SMTP.From = "contato@locafest.example.com"
	return cfg
}

func TestSendQuoteProposal(t *testing.T) {
	dialer := &stubDialer{}
	m := New(testConfig())
	m.dial = func(config.SMTPConfig) Dialer { return dialer }

	q, lines := testProposal()
	require.NoError(t, m.SendQuoteProposal(context.Background(), "maria@example.com", q, lines))

	require.Len(t, dialer.messages, 1)
	msg := dialer.messages[0]
	assert.Equal(t, []string{"contato@locafest.example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"maria@example.com"}, msg.GetHeader("To"))

	// Non-ASCII headers are stored RFC 2047 encoded.
	subject := msg.GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "Proposta: Casamento Ana e João", decoded)
}

func TestSendQuoteProposalDialFailure(t *testing.T) {
	dialer := &stubDialer{err: errors.New("dial tcp: connection refused")}
	m := New(testConfig())
	m.dial = func(config.SMTPConfig) Dialer { return dialer }

	q, lines := testProposal()
	err := m.SendQuoteProposal(context.Background(), "maria@example.com", q, lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maria@example.com")
}
