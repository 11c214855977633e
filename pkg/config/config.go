package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Network struct {
	RPCUrl      string  `yaml:"rpc" json:"rpc"`
	ExplorerUrl string  `yaml:"explorer" json:"explorer"`
	MaxGwei     float64 `yaml:"max_gwei" json:"max_gwei"` // 0 disables the gas price gate
}

type DelayRange struct {
	MinSec int `yaml:"min_sec" json:"min_sec"`
	MaxSec int `yaml:"max_sec" json:"max_sec"`
}

type AmountRange struct {
	MinETH float64 `yaml:"min_eth" json:"min_eth"`
	MaxETH float64 `yaml:"max_eth" json:"max_eth"`
}

type Delays struct {
	Transaction DelayRange `yaml:"transaction" json:"transaction"`
	Wallet      DelayRange `yaml:"wallet" json:"wallet"`
	DepositPoll DelayRange `yaml:"deposit_poll" json:"deposit_poll"`
	GasPoll     DelayRange `yaml:"gas_poll" json:"gas_poll"`
}

type Datadog struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// API keys are read from DD_API_KEY / DD_APP_KEY env vars.
}

type Config struct {
	LogLevel       string             `yaml:"log_level" json:"log_level"`
	LogFile        string             `yaml:"log_file" json:"log_file"`
	WalletsFile    string             `yaml:"wallets_file" json:"wallets_file"`
	WorkingNetwork string             `yaml:"working_network" json:"working_network"`
	Networks       map[string]Network `yaml:"networks" json:"networks"`
	Amount         AmountRange        `yaml:"amount" json:"amount"`
	Delay          Delays             `yaml:"delay" json:"delay"`
	Datadog        Datadog            `yaml:"datadog" json:"datadog"`
}

const aptosNetworkName = "aptos"

func Load(filePath string) (*Config, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at: %s, %w", filePath, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at: %s, %w", filePath, err)
	}
	return cfg, nil
}

func (cfg *Config) Check() error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.WalletsFile == "" {
		return fmt.Errorf("wallets_file is required")
	}

	if cfg.WorkingNetwork == "" {
		return fmt.Errorf("working_network is required")
	}

	src, ok := cfg.Networks[cfg.WorkingNetwork]
	if !ok {
		return fmt.Errorf("networks is missing an entry for working network %q", cfg.WorkingNetwork)
	}
	if src.RPCUrl == "" {
		return fmt.Errorf("networks.%s.rpc is required", cfg.WorkingNetwork)
	}

	apt, ok := cfg.Networks[aptosNetworkName]
	if !ok {
		return fmt.Errorf("networks is missing an %q entry", aptosNetworkName)
	}
	if apt.RPCUrl == "" {
		return fmt.Errorf("networks.%s.rpc is required", aptosNetworkName)
	}

	if cfg.Amount.MinETH <= 0 || cfg.Amount.MaxETH <= 0 {
		return fmt.Errorf("amount.min_eth and amount.max_eth must be greater than 0")
	}
	if cfg.Amount.MaxETH < cfg.Amount.MinETH {
		return fmt.Errorf("amount.max_eth must not be less than amount.min_eth")
	}

	if cfg.Delay.DepositPoll.MinSec == 0 && cfg.Delay.DepositPoll.MaxSec == 0 {
		cfg.Delay.DepositPoll = DelayRange{MinSec: 15, MaxSec: 30}
	}
	if cfg.Delay.GasPoll.MinSec == 0 && cfg.Delay.GasPoll.MaxSec == 0 {
		cfg.Delay.GasPoll = DelayRange{MinSec: 15, MaxSec: 30}
	}
	for name, d := range map[string]DelayRange{
		"delay.transaction":  cfg.Delay.Transaction,
		"delay.wallet":       cfg.Delay.Wallet,
		"delay.deposit_poll": cfg.Delay.DepositPoll,
		"delay.gas_poll":     cfg.Delay.GasPoll,
	} {
		if d.MinSec < 0 || d.MaxSec < d.MinSec {
			return fmt.Errorf("%s must satisfy 0 <= min_sec <= max_sec", name)
		}
	}

	return nil
}

// Source returns the configured source chain network.
func (cfg *Config) Source() Network {
	return cfg.Networks[cfg.WorkingNetwork]
}

// Aptos returns the configured destination chain network.
func (cfg *Config) Aptos() Network {
	return cfg.Networks[aptosNetworkName]
}
