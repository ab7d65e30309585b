package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func New(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

func (m *Mailer) SendListingCreated(toEmail, listingName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New Listing Created")
	msg.SetBody("text/plain", fmt.Sprintf("Your listing %q has been created successfully.", listingName))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
