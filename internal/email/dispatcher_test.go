package email

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

// fakeSender records delivered messages and can be told to fail.
type fakeSender struct {
	mu   sync.Mutex
	sent []*Message
	err  error
}

func (f *fakeSender) Send(msg *Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) delivered() []*Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Message(nil), f.sent...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherDeliversQueuedMail(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, discardLogger(), 8)
	d.Start()

	for i := 0; i < 3; i++ {
		d.Enqueue(&Message{
			To:       fmt.Sprintf("user%d@example.com", i),
			Subject:  "Test",
			HTMLBody: "<p>hi</p>",
		})
	}
	d.Close()

	if got := len(sender.delivered()); got != 3 {
		t.Fatalf("delivered %d messages, want 3", got)
	}
}

func TestDispatcherSwallowsSendFailures(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, discardLogger(), 8)
	d.Start()

	d.Enqueue(&Message{To: "user@example.com", Subject: "Test", HTMLBody: "x"})
	d.Close()

	if got := len(sender.delivered()); got != 0 {
		t.Fatalf("delivered %d messages despite failing sender", got)
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	// Worker never started, so the buffer fills up and extra messages are
	// dropped instead of blocking the caller.
	sender := &fakeSender{}
	d := NewDispatcher(sender, discardLogger(), 2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			d.Enqueue(&Message{To: "user@example.com", Subject: "Test", HTMLBody: "x"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&fakeSender{}, discardLogger(), 2)
	d.Start()
	d.Close()
	d.Close()
}

func newTestMailer(t *testing.T, sender Sender, baseURL string) (*Mailer, *Dispatcher) {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret-at-least-long-enough", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	d := NewDispatcher(sender, discardLogger(), 8)
	d.Start()
	return NewMailer(d, tokens, baseURL, discardLogger()), d
}

func TestMailerSendVerification(t *testing.T) {
	sender := &fakeSender{}
	mailer, d := newTestMailer(t, sender, "http://localhost:8080")

	user := &domain.User{ID: 7, Fullname: "Ada Lovelace", Email: "ada@example.com", Role: "user"}
	mailer.SendVerification(user)
	d.Close()

	sent := sender.delivered()
	if len(sent) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(sent))
	}
	msg := sent[0]
	if msg.To != "ada@example.com" {
		t.Errorf("to = %q", msg.To)
	}
	if !strings.Contains(msg.HTMLBody, "http://localhost:8080/api/auth/verify-email?token=") {
		t.Error("verification link missing from body")
	}
	if !strings.Contains(msg.HTMLBody, "Ada Lovelace") {
		t.Error("recipient name missing from body")
	}
}

func TestMailerSendWelcome(t *testing.T) {
	sender := &fakeSender{}
	mailer, d := newTestMailer(t, sender, "http://localhost:8080")

	mailer.SendWelcome(&domain.User{ID: 7, Fullname: "Ada Lovelace", Email: "ada@example.com", Role: "user"})
	d.Close()

	sent := sender.delivered()
	if len(sent) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(sent))
	}
	if sent[0].Subject != "Welcome to Chill Movie App" {
		t.Errorf("subject = %q", sent[0].Subject)
	}
}

func TestMailerSendPasswordReset(t *testing.T) {
	sender := &fakeSender{}
	mailer, d := newTestMailer(t, sender, "http://localhost:8080")

	mailer.SendPasswordReset(&domain.User{ID: 7, Fullname: "Ada Lovelace", Email: "ada@example.com", Role: "user"})
	d.Close()

	sent := sender.delivered()
	if len(sent) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(sent))
	}
	if !strings.Contains(sent[0].HTMLBody, "reset-password?token=") {
		t.Error("reset link missing from body")
	}
}
