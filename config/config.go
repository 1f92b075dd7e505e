package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"ledgerscan/logx"
)

const (
	defaultRPCListenAddr     = ":8545"
	defaultMetricsListenAddr = ":9400"
	defaultMaxScanSpan       = 10000
)

// LoadServiceConfig reads and parses the service YAML config file.
func LoadServiceConfig(path string) (*ServiceConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg := &cfgFile.Config
	if cfg.RPC.ListenAddr == "" {
		cfg.RPC.ListenAddr = defaultRPCListenAddr
	}
	if cfg.Metrics.ListenAddr == "" {
		cfg.Metrics.ListenAddr = defaultMetricsListenAddr
	}

	logx.Info("CONFIG", fmt.Sprintf("Loaded service config: store=%s rpc=%s metrics=%s",
		cfg.Store.Type, cfg.RPC.ListenAddr, cfg.Metrics.ListenAddr))
	return cfg, nil
}

// ScanConfig holds scanner tuning read from an .ini file.
type ScanConfig struct {
	// MaxScanSpan caps the height span a single RPC scan may cover.
	MaxScanSpan uint64 `ini:"max_scan_span"`
}

// DefaultScanConfig returns the tuning values used when no .ini file is
// provided.
func DefaultScanConfig() *ScanConfig {
	return &ScanConfig{MaxScanSpan: defaultMaxScanSpan}
}

// LoadScanConfig reads scanner tuning from the [scan] section of an .ini
// file.
func LoadScanConfig(path string) (*ScanConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	scanCfg := DefaultScanConfig()
	if err := cfg.Section("scan").MapTo(scanCfg); err != nil {
		return nil, err
	}
	if scanCfg.MaxScanSpan == 0 {
		scanCfg.MaxScanSpan = defaultMaxScanSpan
	}
	return scanCfg, nil
}
