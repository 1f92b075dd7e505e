package config

import "ledgerscan/store"

// RPCConfig holds the JSON-RPC listen address.
type RPCConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// MetricsConfig holds the prometheus listen address.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// ServiceConfig holds the configuration from ledgerscan.yml.
type ServiceConfig struct {
	Store   store.StoreConfig `yaml:"store"`
	RPC     RPCConfig         `yaml:"rpc"`
	Metrics MetricsConfig     `yaml:"metrics"`
}

// ConfigFile wraps the top-level YAML document.
type ConfigFile struct {
	Config ServiceConfig `yaml:"config"`
}
