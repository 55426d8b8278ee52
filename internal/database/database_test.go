package database

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/lightsmap/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestDialectName(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectName("postgres://u:p@host/db?sslmode=require"))
	assert.Equal(t, DialectPostgres, DialectName("PostgreSQL://host/db"))
	assert.Equal(t, DialectMySQL, DialectName("root:pw@tcp(127.0.0.1:3306)/lights?parseTime=true"))
}

func TestDialectorRequiresURL(t *testing.T) {
	_, err := Dialector("  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissingSetting))
}

func TestDialectorPicksDriver(t *testing.T) {
	d, err := Dialector("postgres://localhost/lights")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector("root:pw@tcp(localhost:3306)/lights")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}

func TestWithParseTime(t *testing.T) {
	for _, dsn := range []string{
		"u:p@tcp(h:3306)/db",
		"u:p@tcp(h:3306)/db?charset=utf8mb4",
		"u:p@tcp(h:3306)/db?parseTime=false",
	} {
		cfg, err := mysqldrv.ParseDSN(withParseTime(dsn))
		require.NoError(t, err, dsn)
		assert.True(t, cfg.ParseTime, dsn)
		assert.Equal(t, "db", cfg.DBName)
		assert.Equal(t, "h:3306", cfg.Addr)
	}

	cfg, err := mysqldrv.ParseDSN(withParseTime("u:p@tcp(h:3306)/db?charset=utf8mb4"))
	require.NoError(t, err)
	assert.Equal(t, "utf8mb4", cfg.Params["charset"])
}

func TestMigrateAndPool(t *testing.T) {
	db, err := Open(sqlite.Open("file::memory:"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, ConfigurePool(db, 1, 1))
	require.NoError(t, Migrate(db))

	for _, table := range []string{"locations", "reviews", "location_submissions"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn("locations", "radio_station"))
	assert.True(t, db.Migrator().HasColumn("location_submissions", "rejection_reason"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
