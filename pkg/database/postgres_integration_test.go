//go:build integration
// +build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/hashicorp-forge/adminportal/pkg/models"
)

func TestAuditStore_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("audit"),
		postgres.WithUsername("adminportal"),
		postgres.WithPassword("adminportal"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	defer func() {
		_ = testcontainers.TerminateContainer(container)
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := Connect(Config{
		Driver:   DriverPostgres,
		Host:     host,
		Port:     port.Int(),
		User:     "adminportal",
		Password: "adminportal",
		DBName:   "audit",
	}, hclog.NewNullLogger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 5, sqlDB.Stats().MaxOpenConnections)

	store := NewAuditStore(db)
	now := time.Now().UTC()
	require.NoError(t, store.Record(ctx, &models.NotificationRecord{
		NotificationID: "3f1c1a52-0000-4000-8000-000000000001", Level: "success",
		Text: "Tenant created", Operation: "tenants.create", Actor: "alice", CreatedAt: now,
	}))
	// Relayed twice.
	require.NoError(t, store.Record(ctx, &models.NotificationRecord{
		NotificationID: "3f1c1a52-0000-4000-8000-000000000001", Level: "success",
		Text: "Tenant created", Operation: "tenants.create", Actor: "alice", CreatedAt: now,
	}))

	records, err := store.List(ctx, AuditFilter{Actor: "alice"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "tenants.create", records[0].Operation)

	n, err := store.Prune(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
