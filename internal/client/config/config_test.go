package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, time.Hour, c.RefreshBefore)
	assert.Equal(t, "session.db", filepath.Base(c.DatabasePath))
	assert.Equal(t, "wallet.key", filepath.Base(c.KeyFile))
	assert.Equal(t, filepath.Dir(c.DatabasePath), filepath.Dir(c.KeyFile))
	assert.Empty(t, c.LogFile)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("", nil, nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_endpoint_addr": "http://json:1",
		"request_timeout":      "3s",
		"key_file":             "/json/key",
	})

	flags := &Config{
		ServerEndpointAddr: "http://flag:2",
		KeyFile:            "/flag/key",
		RefreshBefore:      5 * time.Minute,
	}
	given := map[string]bool{FlagServer: true, FlagRefreshBefore: true}

	cfg, err := Load(path, flags, func(name string) bool { return given[name] })
	require.NoError(t, err)

	assert.Equal(t, "http://flag:2", cfg.ServerEndpointAddr, "explicit flag beats file")
	assert.Equal(t, "/json/key", cfg.KeyFile, "unset flag does not beat file")
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshBefore)
}

func TestOverlayFlags_AllFields(t *testing.T) {
	src := &Config{
		ServerEndpointAddr: "s",
		DatabasePath:       "d",
		KeyFile:            "k",
		RequestTimeout:     time.Second,
		RefreshBefore:      time.Minute,
		LogFile:            "l",
	}
	dst := &Config{}
	overlayFlags(dst, src, func(string) bool { return true })
	assert.Equal(t, src, dst)

	dst = &Config{}
	overlayFlags(dst, src, func(string) bool { return false })
	assert.Equal(t, &Config{}, dst)
}
