package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
)

// Handler delivers notifications somewhere: the terminal, a log, the audit
// store, a push service.
type Handler interface {
	// Name returns the handler identifier
	Name() string

	// Accepts reports whether this handler wants notifications of level
	Accepts(level Level) bool

	// Handle delivers one notification
	Handle(ctx context.Context, n *Notification) error
}

// Dispatcher fans notifications out to every handler. It implements
// apicall.Notifier; delivery failures are logged and never surface to the
// caller.
type Dispatcher struct {
	handlers  []Handler
	log       hclog.Logger
	operation string
	actor     string
	timeout   time.Duration
}

var _ apicall.Notifier = (*Dispatcher)(nil)

// DefaultTimeout bounds the time spent delivering one notification to all
// handlers.
const DefaultTimeout = 5 * time.Second

// NewDispatcher creates a dispatcher over handlers.
func NewDispatcher(log hclog.Logger, handlers ...Handler) *Dispatcher {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Dispatcher{
		handlers: handlers,
		log:      log,
		timeout:  DefaultTimeout,
	}
}

// ForOperation returns a copy of d that labels notifications with operation.
func (d *Dispatcher) ForOperation(operation string) *Dispatcher {
	c := *d
	c.operation = operation
	return &c
}

// WithActor returns a copy of d that labels notifications with actor.
func (d *Dispatcher) WithActor(actor string) *Dispatcher {
	c := *d
	c.actor = actor
	return &c
}

// Handlers returns the names of the configured handlers.
func (d *Dispatcher) Handlers() []string {
	names := make([]string, 0, len(d.handlers))
	for _, h := range d.handlers {
		names = append(names, h.Name())
	}
	return names
}

func (d *Dispatcher) ShowSuccess(message string) {
	d.dispatch(LevelSuccess, message)
}

func (d *Dispatcher) ShowError(message string) {
	d.dispatch(LevelError, message)
}

func (d *Dispatcher) dispatch(level Level, text string) {
	n := New(level, text, d.operation)
	n.Actor = d.actor

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	_ = d.Deliver(ctx, n)
}

// Deliver hands an existing notification, such as one read back from Kafka,
// to every handler that accepts its level. Failures are logged and returned
// together; one failing handler does not stop the others.
func (d *Dispatcher) Deliver(ctx context.Context, n *Notification) error {
	var result *multierror.Error
	for _, h := range d.handlers {
		if !h.Accepts(n.Level) {
			continue
		}
		if err := deliver(ctx, h, n); err != nil {
			d.log.Warn("notification delivery failed",
				"handler", h.Name(),
				"notification_id", n.ID,
				"retryable", IsRetryable(err),
				"error", err,
			)
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// IsRetryable reports whether err, or any error collected in it, says a
// later attempt may succeed.
func IsRetryable(err error) bool {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			if IsRetryable(e) {
				return true
			}
		}
		return false
	}
	var r interface{ IsRetryable() bool }
	return errors.As(err, &r) && r.IsRetryable()
}

func deliver(ctx context.Context, h Handler, n *Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", h.Name(), r)
		}
	}()
	return h.Handle(ctx, n)
}
