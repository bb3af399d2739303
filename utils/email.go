package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/smtp"
	"strconv"

	"festival_manager/config"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// OrderConfirmationData feeds the confirmation e-mail template.
type OrderConfirmationData struct {
	OrderCode    string
	CustomerName string
	Items        []OrderConfirmationItem
	TotalAmount  float64
	TicketCount  int
	DetailLink   string
}

type OrderConfirmationItem struct {
	DisplayName string
	Quantity    int
	UnitPrice   float64
	LineTotal   float64
}

// SendOrderConfirmationEmail sends the confirmation mail with the ticket PDF
// attached. Caller decides whether to run it async; errors are returned so the
// fulfillment path can log them.
func SendOrderConfirmationEmail(to string, toName string, data OrderConfirmationData, pdfBytes []byte) error {
	tmpl, err := template.ParseFiles("templates/order_confirmation.html")
	if err != nil {
		return fmt.Errorf("load email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.Config("SMTP_FROM"))
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", "Your festival tickets - Order "+data.OrderCode)
	m.SetBody("text/html", body.String())

	filename := fmt.Sprintf("festival-tickets-%s.pdf", data.OrderCode)
	m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(pdfBytes))
		return err
	}), gomail.SetHeader(map[string][]string{
		"Content-Type": {"application/pdf"},
	}))

	port, _ := strconv.Atoi(config.ConfigOr("SMTP_PORT", "587"))
	d := gomail.NewDialer(config.Config("SMTP_HOST"), port, config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
	return d.DialAndSend(m)
}

// SendOperatorAlert mails the on-call address about a condition that needs a
// human (e.g. ticket code space exhaustion). Plain text, fire and forget.
func SendOperatorAlert(subject, body string) {
	toAddr := config.Config("ALERT_EMAIL")
	if toAddr == "" {
		log.Printf("ALERT (no ALERT_EMAIL configured): %s - %s", subject, body)
		return
	}

	e := email.NewEmail()
	e.From = config.Config("SMTP_FROM")
	e.To = []string{toAddr}
	e.Subject = "[festival-manager] " + subject
	e.Text = []byte(body)

	host := config.Config("SMTP_HOST")
	port := config.ConfigOr("SMTP_PORT", "587")
	auth := smtp.PlainAuth("", config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"), host)
	if err := e.Send(host+":"+port, auth); err != nil {
		log.Printf("Failed to send operator alert %q: %v", subject, err)
	}
}
