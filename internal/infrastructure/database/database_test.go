package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bukusaku/bukusaku-api/internal/config"
	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenMigrateAndSeedSQLite(t *testing.T) {
	log := zap.NewNop()
	cfg := &config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db")}

	db, err := Open(cfg, log, false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, log))

	store := &config.StoreConfig{Name: "28 POINT", PaperWidth: 58}
	require.NoError(t, SeedDefaultData(context.Background(), db, store, log))

	store.Name = "changed"
	require.NoError(t, SeedDefaultData(context.Background(), db, store, log))

	var profiles []entity.StoreProfile
	require.NoError(t, db.Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.Equal(t, "28 POINT", profiles[0].Name)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, zap.NewNop(), false)
	assert.Error(t, err)
}
