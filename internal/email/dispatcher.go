package email

import (
	"log/slog"
	"sync"
)

// Dispatcher queues messages and delivers them on a background goroutine.
// Enqueue never blocks the caller; delivery failures are logged and
// swallowed.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
	queue  chan *Message
	wg     sync.WaitGroup

	closeOnce sync.Once
}

func NewDispatcher(sender Sender, logger *slog.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		sender: sender,
		logger: logger,
		queue:  make(chan *Message, buffer),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for msg := range d.queue {
			if err := d.sender.Send(msg); err != nil {
				d.logger.Error("Failed to send email",
					slog.String("to", msg.To),
					slog.String("subject", msg.Subject),
					slog.String("error", err.Error()))
				continue
			}
			d.logger.Info("Email sent",
				slog.String("to", msg.To),
				slog.String("subject", msg.Subject))
		}
	}()
}

// Enqueue hands a message to the worker. If the queue is full the message is
// dropped with a warning; mail is best-effort.
func (d *Dispatcher) Enqueue(msg *Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("Email queue full, dropping message",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject))
	}
}

// Close stops accepting messages and waits for queued mail to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
