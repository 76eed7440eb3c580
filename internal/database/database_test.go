package database_test

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/asdos-web/internal/database"
	"github.com/noah-isme/asdos-web/internal/models"
)

func TestConnectRedis(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	client, err := database.ConnectRedis(context.Background(), "redis://"+mini.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
}

func TestConnectRedisRejectsBadURL(t *testing.T) {
	_, err := database.ConnectRedis(context.Background(), "")
	require.Error(t, err)

	_, err = database.ConnectRedis(context.Background(), "not a url")
	require.Error(t, err)
}

func TestConnectPostgresRequiresDSN(t *testing.T) {
	_, err := database.ConnectPostgres("")
	require.Error(t, err)
}

func TestMigrateCreatesActivityTable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	require.True(t, db.Migrator().HasTable(&models.ActivityLog{}))
}
