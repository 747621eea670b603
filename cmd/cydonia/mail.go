package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	mailgun "github.com/mailgun/mailgun-go/v3"
	"gitlab.com/lologarithm/cydonia/dashboard"
)

// alertEvery limits failure emails.
const alertEvery = 15 * time.Minute

func sendMail(mc MailgunConfig, subj, msg string) {
	// Create an instance of the Mailgun Client
	mg := mailgun.NewMailgun(mc.Domain, mc.APIKey)
	message := mg.NewMessage(mc.Sender, subj, msg, mc.Recipients...)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	// Send the message with a 10 second timeout
	resp, id, err := mg.Send(ctx, message)
	if err != nil {
		log.Printf("[Error] Failed to send alert: %s", err)
		return
	}
	if id == "" {
		log.Printf("[Error] Failed to send alert, invalid ID: %s", resp)
	}
}

// alerter emails when the dashboard goes into an error state.
type alerter struct {
	send  func(subj, msg string)
	every time.Duration
	now   func() time.Time

	lock     *sync.Mutex
	lastErr  string
	lastSent time.Time
}

func newAlerter(send func(subj, msg string)) *alerter {
	return &alerter{
		send:  send,
		every: alertEvery,
		now:   time.Now,
		lock:  &sync.Mutex{},
	}
}

// observe is a dashboard subscriber. Only the change into an error sends
// mail, and never more than once per a.every.
func (a *alerter) observe(v dashboard.View) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if v.Error == "" {
		if !v.Loading {
			a.lastErr = ""
		}
		return
	}
	if v.Error == a.lastErr {
		return
	}
	a.lastErr = v.Error
	now := a.now()
	if !a.lastSent.IsZero() && now.Sub(a.lastSent) < a.every {
		return
	}
	a.lastSent = now

	subj := fmt.Sprintf("Cydonia: data unavailable for %s", v.LocationName)
	msg := fmt.Sprintf("Fetching sensor data for %s (location %s) failed at %s:\n\n%s",
		v.LocationName, v.Location, now.Format(time.RFC1123), v.Error)
	go a.send(subj, msg)
}
