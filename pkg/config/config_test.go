package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validYaml = `
log_level: debug
log_file: trader.log
wallets_file: wallets.csv
working_network: arbitrum
networks:
  arbitrum:
    rpc: https://arb1.arbitrum.io/rpc
    explorer: https://arbiscan.io
    max_gwei: 20
  aptos:
    rpc: https://fullnode.mainnet.aptoslabs.com
    explorer: https://explorer.aptoslabs.com
amount:
  min_eth: 0.02
  max_eth: 0.05
delay:
  transaction:
    min_sec: 30
    max_sec: 60
  wallet:
    min_sec: 60
    max_sec: 120
`

func loadFromString(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return Load(path)
}

func TestLoadAndCheck(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromString(t, validYaml)
	require.NoError(t, err)
	require.NoError(t, cfg.Check())

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "arbitrum", cfg.WorkingNetwork)
	require.Equal(t, 20.0, cfg.Source().MaxGwei)
	require.Equal(t, "https://fullnode.mainnet.aptoslabs.com", cfg.Aptos().RPCUrl)
	require.Equal(t, 0.02, cfg.Amount.MinETH)
	require.Equal(t, 30, cfg.Delay.Transaction.MinSec)

	// Poll ranges default when omitted.
	require.Equal(t, DelayRange{MinSec: 15, MaxSec: 30}, cfg.Delay.DepositPoll)
	require.Equal(t, DelayRange{MinSec: 15, MaxSec: 30}, cfg.Delay.GasPoll)
}

func TestCheckDefaultsLogLevel(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromString(t, validYaml)
	require.NoError(t, err)
	cfg.LogLevel = ""
	require.NoError(t, cfg.Check())
	require.Equal(t, "info", cfg.LogLevel)
}

func TestCheckRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing wallets file", func(c *Config) { c.WalletsFile = "" }, "wallets_file is required"},
		{"missing working network", func(c *Config) { c.WorkingNetwork = "" }, "working_network is required"},
		{"unknown working network", func(c *Config) { c.WorkingNetwork = "base" }, "missing an entry"},
		{"missing aptos network", func(c *Config) { delete(c.Networks, "aptos") }, "missing an \"aptos\" entry"},
		{"zero amount", func(c *Config) { c.Amount.MinETH = 0 }, "must be greater than 0"},
		{"inverted amount range", func(c *Config) { c.Amount.MaxETH = 0.01 }, "must not be less than"},
		{"inverted delay range", func(c *Config) { c.Delay.Wallet = DelayRange{MinSec: 10, MaxSec: 5} }, "min_sec <= max_sec"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := loadFromString(t, validYaml)
			require.NoError(t, err)
			tc.mutate(cfg)

			err = cfg.Check()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
