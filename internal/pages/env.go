package pages

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/adminportal/internal/render"
	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/apicall/autoretry"
	"github.com/hashicorp-forge/adminportal/pkg/apicall/dedupe"
)

// RetryPrompt is asked after a network failure when the session is
// interactive.
const RetryPrompt = "The admin API could not be reached. Retry? [y/N]"

// Env is shared by every page in one command run.
type Env struct {
	UI       cli.Ui
	Renderer *render.Renderer
	Log      hclog.Logger

	// Notifier returns the sink for one named operation, e.g. "tenants.create".
	Notifier func(operation string) apicall.Notifier

	// AutoRetry follows retry closures without asking when MaxRetries > 0.
	AutoRetry autoretry.Config

	// Interactive enables the retry prompt.
	Interactive bool

	// AssumeYes skips confirmation prompts.
	AssumeYes bool

	inflight dedupe.Group
}

func (e *Env) notifier(operation string) apicall.Notifier {
	if e.Notifier == nil {
		return apicall.Discard
	}
	return e.Notifier(operation)
}

func (e *Env) logger() hclog.Logger {
	if e.Log == nil {
		return hclog.NewNullLogger()
	}
	return e.Log
}

// ReportedError is a failure the user has already been told about, either
// by a notification or inline in the rendered output.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}

// Call runs op through the executor and follows the retry closure while the
// user (or the auto-retry policy) asks for it.
func Call[T any](ctx context.Context, e *Env, operation string, op apicall.Operation[T], opts apicall.Options) apicall.Result[T] {
	res := apicall.Execute(ctx, op, opts, e.notifier(operation))
	return followRetry(ctx, e, operation, res)
}

// Fetch is Call for idempotent reads: concurrent fetches with the same key
// share one request.
func Fetch[T any](ctx context.Context, e *Env, operation, key string, op apicall.Operation[T], opts apicall.Options) apicall.Result[T] {
	return Call(ctx, e, operation, dedupe.Wrap(&e.inflight, key, op), opts)
}

func followRetry[T any](ctx context.Context, e *Env, operation string, res apicall.Result[T]) apicall.Result[T] {
	if res.Retry == nil {
		return res
	}

	if e.AutoRetry.MaxRetries > 0 {
		e.logger().Debug("retrying after network error",
			"operation", operation,
			"max_retries", e.AutoRetry.MaxRetries,
		)
		res = autoretry.Drive(ctx, res, autoretry.NewBackOff(e.AutoRetry))
	}

	for res.Retry != nil && e.Interactive && ctx.Err() == nil {
		if !e.ask(RetryPrompt) {
			break
		}
		res = res.Retry(ctx)
	}
	return res
}

// Confirm asks a yes/no question unless AssumeYes is set. Non-interactive
// sessions without AssumeYes answer no.
func (e *Env) Confirm(question string) bool {
	if e.AssumeYes {
		return true
	}
	if !e.Interactive {
		return false
	}
	return e.ask(question + " [y/N]")
}

func (e *Env) ask(question string) bool {
	if e.UI == nil {
		return false
	}
	answer, err := e.UI.Ask(question)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// show renders v, or prints empty when v is an empty list in table format.
func (e *Env) show(v any, count int, empty string) error {
	if count == 0 && e.Renderer.Format() == render.FormatTable {
		e.UI.Info(empty)
		return nil
	}
	return e.Renderer.Render(v)
}
