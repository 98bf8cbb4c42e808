package libs

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"storefront/config"
	"storefront/models"

	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns nil when SMTP is not configured.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   from,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	body, err := renderOrderConfirmation(order)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order #%d confirmed", order.ID))
	msg.SetBody("text/html", body)

	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(msg)
}

var orderConfirmationTemplate = template.Must(template.New("order").Funcs(template.FuncMap{
	"money": func(cents int64) string { return models.CentsToDecimal(cents).StringFixed(2) },
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Thank you for your order #{{.ID}}</h2>
    <table cellpadding="6">
        <tr><th align="left">Product</th><th>Qty</th><th align="right">Price</th></tr>
        {{- range .Lines}}
        <tr><td>{{.ProductName}}</td><td align="center">{{.Quantity}}</td><td align="right">{{money .UnitPriceCents}}</td></tr>
        {{- end}}
    </table>
    <p>Subtotal: {{money .SubtotalCents}} {{.Currency}}</p>
    <p><strong>Total: {{money .TotalCents}} {{.Currency}}</strong></p>
    {{- if .Address}}
    <p>Shipping to: {{.Address}}, {{.PostalCode}} {{.City}}, {{.Country}}</p>
    {{- end}}
    <p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
</body>
</html>`))

func renderOrderConfirmation(order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&buf, order); err != nil {
		return "", fmt.Errorf("render order email: %w", err)
	}
	return buf.String(), nil
}
