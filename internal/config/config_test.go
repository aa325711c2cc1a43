package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CART_STORE", "redis")

	cfg := Load()
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "redis", cfg.Cart.Store)
	assert.Equal(t, "28 POINT", cfg.Store.Name)
	assert.Equal(t, 58, cfg.Store.PaperWidth)
	assert.Equal(t, 720*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, time.Minute, cfg.Catalog.RefreshInterval)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "1", Name: "n", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", db.DSN())
}

func TestLocation(t *testing.T) {
	app := AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, app.Location())
}
