package notifier

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"whenavailable/internal/core/domain"
)

// EmailNotifier sends plain-text confirmation mail to the creator and the
// booker. It never fails the calling request: every error is logged and
// swallowed. With no SMTP host configured it runs disabled and only logs.
type EmailNotifier struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewEmailNotifier(host, port, user, pass, from string) *EmailNotifier {
	if host == "" || from == "" {
		log.Println("SMTP not configured, email notifications disabled")
		return &EmailNotifier{}
	}
	return &EmailNotifier{host: host, port: port, user: user, pass: pass, from: from}
}

func (n *EmailNotifier) enabled() bool {
	return n.host != ""
}

func (n *EmailNotifier) BookingCreated(ctx context.Context, slot *domain.Slot, booking *domain.Booking) {
	when := formatInZone(booking.SelectedTime, slot.Timezone)

	n.send(ctx, booking.Email, "Booking confirmed",
		fmt.Sprintf("Your meeting with %s is confirmed for %s.", displayName(slot), when))
	n.send(ctx, slot.CreatorEmail, "New booking",
		fmt.Sprintf("%s booked your slot for %s.", booking.Name, when))
}

func (n *EmailNotifier) BookingRescheduled(ctx context.Context, slot *domain.Slot, booking *domain.Booking, previous time.Time) {
	when := formatInZone(booking.SelectedTime, slot.Timezone)
	was := formatInZone(previous, slot.Timezone)

	n.send(ctx, booking.Email, "Booking rescheduled",
		fmt.Sprintf("Your meeting moved from %s to %s.", was, when))
	n.send(ctx, slot.CreatorEmail, "Booking rescheduled",
		fmt.Sprintf("%s moved their booking from %s to %s.", booking.Name, was, when))
}

func (n *EmailNotifier) BookingCancelled(ctx context.Context, slot *domain.Slot, booking *domain.Booking) {
	when := formatInZone(booking.SelectedTime, slot.Timezone)

	n.send(ctx, booking.Email, "Booking cancelled",
		fmt.Sprintf("Your meeting scheduled for %s has been cancelled.", when))
	n.send(ctx, slot.CreatorEmail, "Booking cancelled",
		fmt.Sprintf("%s cancelled their booking for %s.", booking.Name, when))
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, body string) {
	if !n.enabled() {
		log.Printf("Notification skipped (smtp disabled): %s to %s", subject, to)
		return
	}
	if ctx.Err() != nil {
		return
	}

	msg := []byte("From: " + n.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", n.user, n.pass, n.host)
	if err := smtp.SendMail(n.host+":"+n.port, auth, n.from, []string{to}, msg); err != nil {
		log.Printf("Failed to send notification to %s: %v", to, err)
	}
}

func displayName(slot *domain.Slot) string {
	if slot.CreatorName != "" {
		return slot.CreatorName
	}
	return slot.CreatorEmail
}

func formatInZone(t time.Time, timezone string) string {
	if loc, err := time.LoadLocation(timezone); err == nil {
		t = t.In(loc)
	}
	return t.Format("Mon, 2 Jan 2006 15:04 MST")
}
