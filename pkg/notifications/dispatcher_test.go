package notifications_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/notifications"
	"github.com/hashicorp-forge/adminportal/pkg/notifications/backends"
)

func TestDispatcher_FansOut(t *testing.T) {
	first := backends.NewRecorderBackend(backends.FailureModeNone)
	second := backends.NewRecorderBackend(backends.FailureModeNone)
	d := notifications.NewDispatcher(nil, first, second).ForOperation("tenants.create")

	d.ShowSuccess("Tenant created")
	d.ShowError("Tenant name taken")

	for _, r := range []*backends.RecorderBackend{first, second} {
		assert.Equal(t, []string{"Tenant created"}, r.Texts(notifications.LevelSuccess))
		assert.Equal(t, []string{"Tenant name taken"}, r.Texts(notifications.LevelError))
		for _, n := range r.Notifications() {
			assert.Equal(t, "tenants.create", n.Operation)
			assert.NotEmpty(t, n.ID)
			assert.False(t, n.Timestamp.IsZero())
		}
	}
}

func TestDispatcher_HandlerFailuresAreContained(t *testing.T) {
	var buf bytes.Buffer
	log := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Warn})

	failing := backends.NewRecorderBackend(backends.FailureModeAlways)
	panicking := backends.NewRecorderBackend(backends.FailureModePanic)
	healthy := backends.NewRecorderBackend(backends.FailureModeNone)
	d := notifications.NewDispatcher(log, failing, panicking, healthy)

	require.NotPanics(t, func() { d.ShowError("boom") })

	assert.Equal(t, []string{"boom"}, healthy.Texts(notifications.LevelError))
	assert.Contains(t, buf.String(), "notification delivery failed")
	assert.Contains(t, buf.String(), "retryable=true")
	assert.Contains(t, buf.String(), "panicked")
}

func TestDispatcher_AsExecutorNotifier(t *testing.T) {
	rec := backends.NewRecorderBackend(backends.FailureModeNone)
	var n apicall.Notifier = notifications.NewDispatcher(nil, rec).WithActor("alice")

	n.ShowSuccess("ok")

	got := rec.Notifications()
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Actor)
	assert.Equal(t, notifications.LevelSuccess, got[0].Level)
}

func TestDispatcher_Handlers(t *testing.T) {
	d := notifications.NewDispatcher(nil, backends.NewRecorderBackend(""))
	assert.Equal(t, []string{"recorder"}, d.Handlers())
}

func TestDispatcher_DeliverReturnsFailures(t *testing.T) {
	failing := backends.NewRecorderBackend(backends.FailureModeAlways)
	healthy := backends.NewRecorderBackend(backends.FailureModeNone)
	d := notifications.NewDispatcher(nil, failing, healthy)

	n := notifications.New(notifications.LevelSuccess, "Role updated", "roles.update")
	n.Actor = "bob"
	err := d.Deliver(context.Background(), n)

	require.Error(t, err)
	assert.True(t, notifications.IsRetryable(err))

	got := healthy.Notifications()
	require.Len(t, got, 1)
	assert.Equal(t, n.ID, got[0].ID)
	assert.Equal(t, "bob", got[0].Actor)
}

func TestDispatcher_DeliverKeepsIdentity(t *testing.T) {
	rec := backends.NewRecorderBackend(backends.FailureModeNone)
	d := notifications.NewDispatcher(nil, rec).ForOperation("ignored").WithActor("ignored")

	n := notifications.New(notifications.LevelError, "Tenant name taken", "tenants.create")
	require.NoError(t, d.Deliver(context.Background(), n))

	got := rec.Notifications()
	require.Len(t, got, 1)
	assert.Equal(t, "tenants.create", got[0].Operation)
	assert.Empty(t, got[0].Actor)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, notifications.IsRetryable(nil))
	assert.False(t, notifications.IsRetryable(errors.New("plain")))
	assert.True(t, notifications.IsRetryable(backends.NewBackendError("ntfy", "send", true, errors.New("503"))))
	assert.False(t, notifications.IsRetryable(backends.NewBackendError("audit", "record", false, errors.New("dup"))))
}
