package backends

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/adminportal/pkg/kafka"
	"github.com/hashicorp-forge/adminportal/pkg/models"
	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

type fakeStore struct {
	records []*models.NotificationRecord
	err     error
}

func (s *fakeStore) Record(_ context.Context, rec *models.NotificationRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func TestLevels(t *testing.T) {
	all := newLevels(nil)
	assert.True(t, all.Accepts(notifications.LevelSuccess))
	assert.True(t, all.Accepts(notifications.LevelError))

	errorsOnly := newLevels([]string{" Error "})
	assert.False(t, errorsOnly.Accepts(notifications.LevelSuccess))
	assert.True(t, errorsOnly.Accepts(notifications.LevelError))
}

func TestUIBackend(t *testing.T) {
	ui := cli.NewMockUi()
	b := NewUIBackend(ui, false, nil)

	assert.Equal(t, "ui", b.Name())
	require.NoError(t, b.Handle(context.Background(), notifications.New(notifications.LevelSuccess, "Saved", "")))
	require.NoError(t, b.Handle(context.Background(), notifications.New(notifications.LevelError, "Failed", "")))

	assert.Equal(t, "✓ Saved\n", ui.OutputWriter.String())
	assert.Equal(t, "✗ Failed\n", ui.ErrorWriter.String())
}

func TestAuditBackend(t *testing.T) {
	store := &fakeStore{}
	b := NewAuditBackend(store, nil)

	n := notifications.New(notifications.LevelError, "Role in use", "roles.delete")
	n.Actor = "alice"
	require.NoError(t, b.Handle(context.Background(), n))

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, n.ID, rec.NotificationID)
	assert.Equal(t, "error", rec.Level)
	assert.Equal(t, "Role in use", rec.Text)
	assert.Equal(t, "roles.delete", rec.Operation)
	assert.Equal(t, "alice", rec.Actor)
}

func TestAuditBackend_StoreFailure(t *testing.T) {
	b := NewAuditBackend(&fakeStore{err: errors.New("disk full")}, nil)
	err := b.Handle(context.Background(), notifications.New(notifications.LevelSuccess, "x", ""))

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "audit", backendErr.Backend)
	assert.False(t, backendErr.IsRetryable())
}

func TestNtfyBackend(t *testing.T) {
	var gotPath, gotTitle, gotPriority, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTitle = r.Header.Get("Title")
		gotPriority = r.Header.Get("Priority")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := NewNtfyBackend(NtfyBackendConfig{ServerURL: srv.URL, Topic: "admins"})
	err := b.Handle(context.Background(), notifications.New(notifications.LevelError, "Sync failed", "tenants.list"))
	require.NoError(t, err)

	assert.Equal(t, "/admins", gotPath)
	assert.Equal(t, "Admin portal: tenants.list", gotTitle)
	assert.Equal(t, "4", gotPriority)
	assert.Equal(t, "Sync failed", gotBody)
}

func TestNtfyBackend_StatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{status: http.StatusTooManyRequests, retryable: true},
		{status: http.StatusBadGateway, retryable: true},
		{status: http.StatusRequestTimeout, retryable: true},
		{status: http.StatusForbidden, retryable: false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			b := NewNtfyBackend(NtfyBackendConfig{ServerURL: srv.URL, Topic: "t", Timeout: time.Second})
			err := b.Handle(context.Background(), notifications.New(notifications.LevelError, "x", ""))

			var backendErr *BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tt.retryable, backendErr.Retryable)
		})
	}
}

func TestNtfyBackend_NetworkFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	b := NewNtfyBackend(NtfyBackendConfig{ServerURL: url, Topic: "t", Timeout: time.Second})
	err := b.Handle(context.Background(), notifications.New(notifications.LevelError, "x", ""))

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.True(t, backendErr.Retryable)
}

func TestBackendError(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewBackendError("kafka", "publish", true, inner)

	assert.Equal(t, "kafka backend error (publish, retryable): connection reset", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestRegistry(t *testing.T) {
	store := &fakeStore{}
	registry, err := NewRegistry(&Config{
		UI:    &UIConfig{Enabled: true},
		Log:   &LogConfig{Enabled: true, Levels: []string{"error"}},
		Audit: &AuditConfig{Enabled: true},
		Ntfy:  &NtfyConfig{Enabled: true, Topic: "ops"},
	}, Deps{UI: cli.NewMockUi(), Audit: store})
	require.NoError(t, err)

	assert.Equal(t, []string{"audit", "log", "ntfy", "ui"}, registry.GetBackendNames())
	assert.Len(t, registry.GetAll(), 4)

	handlers := registry.Handlers()
	require.Len(t, handlers, 4)
	assert.Equal(t, "audit", handlers[0].Name())

	logBackend, ok := registry.GetBackend("log")
	require.True(t, ok)
	assert.False(t, logBackend.Accepts(notifications.LevelSuccess))
}

func TestRegistry_Errors(t *testing.T) {
	_, err := NewRegistry(&Config{
		UI:    &UIConfig{Enabled: true},
		Audit: &AuditConfig{Enabled: true},
		Ntfy:  &NtfyConfig{Enabled: true},
	}, Deps{})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "ui backend enabled without a terminal")
	assert.Contains(t, msg, "audit backend enabled without a database")
	assert.Contains(t, msg, "ntfy backend requires a topic")
}

func TestRegistry_KafkaDefaults(t *testing.T) {
	t.Setenv(kafka.EnvBrokers, "")
	registry, err := NewRegistry(&Config{Kafka: &KafkaConfig{Enabled: true}}, Deps{})
	require.NoError(t, err)
	defer registry.Close()

	b, ok := registry.GetBackend("kafka")
	require.True(t, ok)
	assert.Equal(t, kafka.DefaultTopic, b.(*KafkaBackend).topic)
}

func TestRegistry_NilConfig(t *testing.T) {
	registry, err := NewRegistry(nil, Deps{})
	require.NoError(t, err)
	assert.Empty(t, registry.GetAll())

	registry.Register(NewRecorderBackend(FailureModeNone))
	assert.Equal(t, []string{"recorder"}, registry.GetBackendNames())
}
