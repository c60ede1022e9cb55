// Package mailer delivers quote proposals over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"

	"locafest/internal/config"
	"locafest/internal/domain/quote"
)

// proposalTmpl is the line-itemized proposal body. The approval link carries
// the single-use token; visiting it books the event.
var proposalTmpl = template.Must(template.New("proposal").Parse(`<html>
<body>
<p>Olá! Segue a proposta para <strong>{{.EventName}}</strong> em {{.EventDate}}.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Item</th><th>Qtd</th><th>Valor unit.</th><th>Subtotal</th></tr>
  {{range .Lines}}
  <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>R$ {{.UnitValue}}</td><td>R$ {{.Subtotal}}</td></tr>
  {{end}}
  {{if .Labor}}<tr><td colspan="3">Mão de obra</td><td>R$ {{.Labor}}</td></tr>{{end}}
  {{if .Freight}}<tr><td colspan="3">Frete</td><td>R$ {{.Freight}}</td></tr>{{end}}
  <tr><td colspan="3"><strong>Total</strong></td><td><strong>R$ {{.Total}}</strong></td></tr>
</table>
<p><a href="{{.ApproveURL}}">Aprovar proposta</a></p>
<p>Se não reconhece esta proposta, ignore este e-mail.</p>
</body>
</html>`))

type proposalData struct {
	EventName  string
	EventDate  string
	Lines      []proposalLine
	Labor      string
	Freight    string
	Total      string
	ApproveURL string
}

type proposalLine struct {
	Name      string
	Quantity  string
	UnitValue string
	Subtotal  string
}

// Dialer sends one assembled message. gomail's Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implements quote.Mailer. Credentials are resolved per send
// through the config snapshot so a config reload takes effect immediately.
type SMTPMailer struct {
	cfg *config.Config

	// dial builds the dialer for one send; overridable in tests.
	dial func(smtp config.SMTPConfig) Dialer
}

func New(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
		dial: func(smtp config.SMTPConfig) Dialer {
			return gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Password)
		},
	}
}

// SendQuoteProposal renders and delivers the proposal email.
func (s *SMTPMailer) SendQuoteProposal(ctx context.Context, to string, q *quote.Quote, lines []quote.MailLine) error {
	body, err := renderProposal(s.cfg.App.BaseURL, q, lines)
	if err != nil {
		return fmt.Errorf("render proposal: %w", err)
	}

	smtp := s.cfg.SMTPSnapshot()

	m := gomail.NewMessage()
	m.SetHeader("From", smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Proposta: %s", q.EventName))
	m.SetBody("text/html", body)

	if err := s.dial(smtp).DialAndSend(m); err != nil {
		return fmt.Errorf("send proposal to %s: %w", to, err)
	}
	return nil
}

func renderProposal(baseURL string, q *quote.Quote, lines []quote.MailLine) (string, error) {
	data := proposalData{
		EventName:  q.EventName,
		EventDate:  q.EventDate.Format("02/01/2006"),
		Total:      q.Total.StringFixed(2),
		ApproveURL: fmt.Sprintf("%s/approve/%s", baseURL, q.Token),
	}
	if q.Labor.IsPositive() {
		data.Labor = q.Labor.StringFixed(2)
	}
	if q.Freight.IsPositive() {
		data.Freight = q.Freight.StringFixed(2)
	}
	for _, l := range lines {
		data.Lines = append(data.Lines, proposalLine{
			Name:      l.Name,
			Quantity:  l.Quantity.String(),
			UnitValue: l.UnitValue.StringFixed(2),
			Subtotal:  l.UnitValue.Mul(l.Quantity).StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := proposalTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
