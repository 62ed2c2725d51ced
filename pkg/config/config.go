package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/vinledger/config"
	ConfigFileName    = "vinledger.yml"
)

// LedgerConfig holds all ledger configuration settings
type LedgerConfig struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// Endpoint is the backend URL the client pipeline submits to
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// NetworkID selects which deployment address the client targets
	NetworkID string `yaml:"network_id" json:"network_id"`

	// Networks maps a network identifier to the ledger deployment
	// address on that network
	Networks map[string]string `yaml:"networks" json:"networks"`

	// GasLimit is the default gas limit attached to envelopes
	GasLimit uint64 `yaml:"gas_limit" json:"gas_limit"`

	// GasPrice is the default gas price in wei attached to envelopes
	GasPrice uint64 `yaml:"gas_price" json:"gas_price"`

	// HistoryRetries is how many times a single record fetch is
	// retried during history reconstruction
	HistoryRetries int `yaml:"history_retries" json:"history_retries"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *LedgerConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *LedgerConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *LedgerConfig {
	return &LedgerConfig{
		TrustedProxies: []string{},
		Endpoint:       "http://127.0.0.1:7545",
		NetworkID:      "5777",
		Networks:       map[string]string{},
		GasLimit:       300_000,
		GasPrice:       2_000_000_000,
		HistoryRetries: 2,
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*LedgerConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("VINLEDGER_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig LedgerConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "endpoint", "network_id", "networks",
		"gas_limit", "gas_price", "history_retries",
	}
}

func (c *LedgerConfig) applyFileConfig(file *LedgerConfig) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.Endpoint != "" {
		c.Endpoint = file.Endpoint
		c.sources["endpoint"] = "file"
	}
	if file.NetworkID != "" {
		c.NetworkID = file.NetworkID
		c.sources["network_id"] = "file"
	}
	if len(file.Networks) > 0 {
		c.Networks = file.Networks
		c.sources["networks"] = "file"
	}
	if file.GasLimit != 0 {
		c.GasLimit = file.GasLimit
		c.sources["gas_limit"] = "file"
	}
	if file.GasPrice != 0 {
		c.GasPrice = file.GasPrice
		c.sources["gas_price"] = "file"
	}
	if file.HistoryRetries != 0 {
		c.HistoryRetries = file.HistoryRetries
		c.sources["history_retries"] = "file"
	}
}

func (c *LedgerConfig) applyEnvConfig() {
	if val := os.Getenv("VINLEDGER_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("VINLEDGER_ENDPOINT"); val != "" {
		c.Endpoint = val
		c.sources["endpoint"] = "environment"
	}
	if val := os.Getenv("VINLEDGER_NETWORK_ID"); val != "" {
		c.NetworkID = val
		c.sources["network_id"] = "environment"
	}
	if val := os.Getenv("VINLEDGER_LEDGER_ADDRESS"); val != "" {
		// Shorthand: pin the current network's deployment address
		if c.Networks == nil {
			c.Networks = map[string]string{}
		}
		c.Networks[c.NetworkID] = val
		c.sources["networks"] = "environment"
	}
	if val := os.Getenv("VINLEDGER_GAS_LIMIT"); val != "" {
		if i, err := strconv.ParseUint(val, 10, 64); err == nil {
			c.GasLimit = i
			c.sources["gas_limit"] = "environment"
		}
	}
	if val := os.Getenv("VINLEDGER_GAS_PRICE"); val != "" {
		if i, err := strconv.ParseUint(val, 10, 64); err == nil {
			c.GasPrice = i
			c.sources["gas_price"] = "environment"
		}
	}
	if val := os.Getenv("VINLEDGER_HISTORY_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.HistoryRetries = i
			c.sources["history_retries"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *LedgerConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *LedgerConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TargetAddress resolves the ledger deployment address for the
// configured network. Empty means unresolvable.
func (c *LedgerConfig) TargetAddress() string {
	return c.Networks[c.NetworkID]
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *LedgerConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *LedgerConfig) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted proxy %q", cidr)
			}
		}
	}
	if c.HistoryRetries < 0 {
		return fmt.Errorf("history_retries cannot be negative")
	}
	return nil
}

// Attributes returns all configuration attributes with their sources
func (c *LedgerConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "endpoint", Value: c.Endpoint, Source: c.Source("endpoint")},
		{Name: "network_id", Value: c.NetworkID, Source: c.Source("network_id")},
		{Name: "networks", Value: fmt.Sprintf("%v", c.Networks), Source: c.Source("networks")},
		{Name: "gas_limit", Value: strconv.FormatUint(c.GasLimit, 10), Source: c.Source("gas_limit")},
		{Name: "gas_price", Value: strconv.FormatUint(c.GasPrice, 10), Source: c.Source("gas_price")},
		{Name: "history_retries", Value: strconv.Itoa(c.HistoryRetries), Source: c.Source("history_retries")},
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
