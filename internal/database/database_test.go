package database

import (
	"testing"

	"taskflowpro/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	assert.NoError(t, configurePool(db, cfg))

	// Zero values fall back to defaults without error.
	assert.NoError(t, configurePool(db, &config.Config{}))
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantSQL   bool
		wantAuto  bool
		wantError bool
	}{
		{"hybrid in development", &config.Config{Env: "development", DBSchemaMode: "hybrid"}, true, true, false},
		{"hybrid in production", &config.Config{Env: "production", DBSchemaMode: "hybrid"}, true, false, false},
		{"empty mode defaults to hybrid", &config.Config{Env: "development"}, true, true, false},
		{"sql only", &config.Config{Env: "production", DBSchemaMode: "sql"}, true, false, false},
		{"auto in development", &config.Config{Env: "development", DBSchemaMode: "auto"}, false, true, false},
		{"auto in production refused", &config.Config{Env: "production", DBSchemaMode: "auto"}, false, false, true},
		{"auto in production with override", &config.Config{Env: "production", DBSchemaMode: "auto", DBAutoMigrateAllowDestructive: true}, false, true, false},
		{"unknown mode", &config.Config{Env: "development", DBSchemaMode: "bogus"}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(tt.cfg)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}

func TestRegisteredMigrationsAreOrdered(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms, "embedded migrations should be registered")
	for i := 1; i < len(ms); i++ {
		assert.Less(t, ms[i-1].Version, ms[i].Version)
	}
	for _, m := range ms {
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
	}
}
