package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBootstrap_Defaults(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(127.0.0.1:3306)/tradegate")

	bc, err := NewBootstrap("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", bc.Server.Http.Addr)
	assert.Equal(t, "tcp", bc.Server.Http.Network)
	assert.Equal(t, "mysql", bc.Data.Database.Driver)
	assert.Equal(t, "127.0.0.1:6379", bc.Data.Redis.Addr)
	assert.Equal(t, "trade_cart", bc.Cart.KeyPrefix)
	assert.Equal(t, int32(5), bc.RateLimit.LoginLimit)
	assert.Equal(t, time.Minute, bc.RateLimit.LoginWindow.AsDuration())
	assert.Equal(t, int32(3), bc.RateLimit.OtpLimit)
	assert.Equal(t, time.Minute, bc.RateLimit.OtpWindow.AsDuration())
	assert.Equal(t, int64(10<<20), bc.Upload.MaxBytes)
	assert.Equal(t, "info", bc.Log.Level)
	assert.Equal(t, "json", bc.Log.Format)
}

func TestNewBootstrap_EnvOverrides(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(db:3306)/tradegate")
	t.Setenv("TRADEGATE_DATA_REDIS_ADDR", "redis:6379")
	t.Setenv("TRADEGATE_SERVER_HTTP_ADDR", ":9090")
	t.Setenv("TRADEGATE_LOG_LEVEL", "debug")

	bc, err := NewBootstrap("")
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", bc.Data.Redis.Addr)
	assert.Equal(t, ":9090", bc.Server.Http.Addr)
	assert.Equal(t, "debug", bc.Log.Level)
}

func TestNewBootstrap_ConfigFile(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(127.0.0.1:3306)/tradegate")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  http:
    addr: ":8888"
cart:
  key_prefix: "trade_cart"
ratelimit:
  otp_limit: 10
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	bc, err := NewBootstrap(path)
	require.NoError(t, err)

	assert.Equal(t, ":8888", bc.Server.Http.Addr)
	assert.Equal(t, int32(10), bc.RateLimit.OtpLimit)
	// Untouched keys keep defaults
	assert.Equal(t, int32(5), bc.RateLimit.LoginLimit)
}

func TestNewBootstrap_MissingConfigFile(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(127.0.0.1:3306)/tradegate")

	_, err := NewBootstrap("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidate_MissingDatabaseSource(t *testing.T) {
	bc := &Bootstrap{
		Data: &Data{Database: &Data_Database{Source: ""}},
		Cart: &Cart{KeyPrefix: "trade_cart"},
	}

	err := Validate(bc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.database.source")
}

func TestValidate_MissingCartPrefix(t *testing.T) {
	bc := &Bootstrap{
		Data: &Data{Database: &Data_Database{Source: "dsn"}},
		Cart: &Cart{KeyPrefix: ""},
	}

	err := Validate(bc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart.key_prefix")
}
