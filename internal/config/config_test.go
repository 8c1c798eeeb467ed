package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/chathub/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "HISTORY_CAP", "BLOB_DIR", "DELIVERY_TIMEOUT", "FANOUT_WORKERS", "SEND_BUFFER"} {
		t.Setenv(key, "")
	}

	cfg := config.New()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 500, cfg.HistoryCap)
	assert.Equal(t, "./chathub-files", cfg.BlobDir)
	assert.Equal(t, 5*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, 8, cfg.FanoutWorkers)
	assert.Equal(t, 256, cfg.SendBuffer)
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("HISTORY_CAP", "25")
	t.Setenv("DELIVERY_TIMEOUT", "500ms")

	cfg := config.New()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 25, cfg.HistoryCap)
	assert.Equal(t, 500*time.Millisecond, cfg.DeliveryTimeout)
}
