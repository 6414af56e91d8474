package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")

	req.NoError(err)
	req.Equal("release", cfg.Mode)
	req.Equal(8080, cfg.Port)
	req.Equal("ws://127.0.0.1:8088/ami", cfg.Gateway.URL)
	req.Equal(5*time.Second, cfg.Gateway.CommandTimeout)
	req.Equal(5000, cfg.Meetme.BaseAddress)
	req.Equal(20, cfg.Meetme.RoomCount)
	req.Equal(3*time.Second, cfg.Meetme.ProbeTimeout)
	req.Equal(30*time.Minute, cfg.Meetme.StaleAfter)
	req.Equal("13.0.0", cfg.Meetme.MinVersion)
}

func TestLoad_File(t *testing.T) {
	req := require.New(t)
	path := writeConfig(t, `
mode: debug
port: 9090
gateway:
  url: ws://pbx.local:8088/ami
  username: admin
  command_timeout: 2s
meetme:
  base_address: 7000
  room_count: 5
  stale_after: 10m
`)

	cfg, err := Load(path)

	req.NoError(err)
	req.Equal("debug", cfg.Mode)
	req.Equal(9090, cfg.Port)
	req.Equal("ws://pbx.local:8088/ami", cfg.Gateway.URL)
	req.Equal("admin", cfg.Gateway.Username)
	req.Equal(2*time.Second, cfg.Gateway.CommandTimeout)
	req.Equal(30*time.Second, cfg.Gateway.PingPeriod)
	req.Equal(7000, cfg.Meetme.BaseAddress)
	req.Equal(5, cfg.Meetme.RoomCount)
	req.Equal(10*time.Minute, cfg.Meetme.StaleAfter)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	req := require.New(t)
	path := writeConfig(t, "meetme:\n  room_count: 5\n")
	t.Setenv("MEETME_MEETME_ROOM_COUNT", "12")
	t.Setenv("MEETME_GATEWAY_SECRET", "s3cret")

	cfg, err := Load(path)

	req.NoError(err)
	req.Equal(12, cfg.Meetme.RoomCount)
	req.Equal("s3cret", cfg.Gateway.Secret)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	req := require.New(t)
	path := writeConfig(t, "port: 0\nmeetme:\n  min_version: latest\n")

	_, err := Load(path)

	req.Error(err)
	req.Contains(err.Error(), "port 0 out of range")
	req.Contains(err.Error(), "meetme.min_version")
}
