package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"cyberdesk-backend/config"
	"cyberdesk-backend/models"
	"cyberdesk-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.OpenSQLite(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return store
}

func mustCreateCustomer(t *testing.T, svc *CustomerService, name, phone string) *models.Customer {
	t.Helper()
	c, err := svc.Create(context.Background(), CustomerInput{Name: name, Phone: phone})
	require.NoError(t, err)
	return c
}

type countingMirror struct {
	mu    sync.Mutex
	calls int
}

func (m *countingMirror) RebuildQuietly(context.Context) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *countingMirror) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
