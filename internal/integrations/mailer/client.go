package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/mairie-chartrettes/SalleReservationService/internal/domain"
)

// Client sends reservation emails through the town hall SMTP relay.
// Sending is best-effort from the caller's point of view: the usecases
// fire it in a goroutine and only log failures.
type Client struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      Logger
}

// Logger is the logging interface used by the mailer.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewClient creates an SMTP mailer client.
func NewClient(host string, port int, username, password, from string, log Logger) *Client {
	return &Client{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log,
	}
}

// SendReservationConfirmation emails the requester a summary of their
// newly created reservation.
func (c *Client) SendReservationConfirmation(data ConfirmationData) error {
	subject := fmt.Sprintf("Demande de réservation — %s le %s", data.RoomName, data.Date.Format("02/01/2006"))

	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\n", data.RecipientName)
	if data.Status == domain.StatusApproved {
		fmt.Fprintf(&b, "Votre réservation de la salle %s le %s est confirmée.\n\n",
			data.RoomName, data.Date.Format("02/01/2006"))
	} else {
		fmt.Fprintf(&b, "Votre demande de réservation de la salle %s le %s a bien été enregistrée. "+
			"Elle sera examinée par la mairie.\n\n",
			data.RoomName, data.Date.Format("02/01/2006"))
	}
	fmt.Fprintf(&b, "Référence : %s\n", data.Code)
	fmt.Fprintf(&b, "Créneaux : %s\n", formatSlots(data.Slots))
	fmt.Fprintf(&b, "Tarif : %.2f €\n", data.TotalPrice)
	fmt.Fprintf(&b, "Caution : %.2f €\n\n", data.DepositAmount)
	b.WriteString("Mairie de Chartrettes\n")

	return c.send(data.RecipientEmail, subject, b.String())
}

// SendStatusUpdate emails the requester when the town hall approves or
// rejects their pending request.
func (c *Client) SendStatusUpdate(data StatusUpdateData) error {
	var subject, verdict string
	if data.Status == domain.StatusApproved {
		subject = fmt.Sprintf("Réservation confirmée — %s le %s", data.RoomName, data.Date.Format("02/01/2006"))
		verdict = "a été acceptée"
	} else {
		subject = fmt.Sprintf("Réservation refusée — %s le %s", data.RoomName, data.Date.Format("02/01/2006"))
		verdict = "a été refusée"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\n", data.RecipientName)
	fmt.Fprintf(&b, "Votre demande de réservation de la salle %s le %s %s.\n\n",
		data.RoomName, data.Date.Format("02/01/2006"), verdict)
	fmt.Fprintf(&b, "Référence : %s\n\n", data.Code)
	b.WriteString("Mairie de Chartrettes\n")

	return c.send(data.RecipientEmail, subject, b.String())
}

func (c *Client) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := gomail.NewDialer(c.host, c.port, c.username, c.password)

	if err := dialer.DialAndSend(m); err != nil {
		c.log.Error("mailer: failed to send %q to %s: %v", subject, to, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.log.Info("mailer: sent %q to %s", subject, to)
	return nil
}

func formatSlots(slots []domain.TimeSlot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = fmt.Sprintf("%s-%s", s.Start, s.End)
	}
	return strings.Join(parts, ", ")
}
