package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VINLEDGER_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GasLimit != 300_000 {
		t.Errorf("expected default gas limit 300000, got %d", cfg.GasLimit)
	}
	if cfg.GasPrice != 2_000_000_000 {
		t.Errorf("expected default gas price 2 gwei, got %d", cfg.GasPrice)
	}
	if cfg.Source("gas_limit") != "default" {
		t.Errorf("expected default source, got %s", cfg.Source("gas_limit"))
	}
	if cfg.TargetAddress() != "" {
		t.Errorf("expected no target address by default, got %s", cfg.TargetAddress())
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
endpoint: http://ledger.example.com:8545
network_id: "1337"
networks:
  "1337": "0x00000000000000000000000000000000000000aa"
gas_limit: 500000
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("VINLEDGER_CONFIG_PATH", dir)
	t.Setenv("VINLEDGER_GAS_PRICE", "3000000000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Endpoint != "http://ledger.example.com:8545" {
		t.Errorf("unexpected endpoint %s", cfg.Endpoint)
	}
	if cfg.TargetAddress() != "0x00000000000000000000000000000000000000aa" {
		t.Errorf("unexpected target address %s", cfg.TargetAddress())
	}
	if cfg.GasLimit != 500_000 || cfg.Source("gas_limit") != "file" {
		t.Errorf("expected gas limit from file, got %d (%s)", cfg.GasLimit, cfg.Source("gas_limit"))
	}
	if cfg.GasPrice != 3_000_000_000 || cfg.Source("gas_price") != "environment" {
		t.Errorf("expected gas price from env, got %d (%s)", cfg.GasPrice, cfg.Source("gas_price"))
	}
}

func TestLedgerAddressShorthand(t *testing.T) {
	t.Setenv("VINLEDGER_CONFIG_PATH", t.TempDir())
	t.Setenv("VINLEDGER_NETWORK_ID", "99")
	t.Setenv("VINLEDGER_LEDGER_ADDRESS", "0x00000000000000000000000000000000000000bb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TargetAddress() != "0x00000000000000000000000000000000000000bb" {
		t.Errorf("expected shorthand to pin the network address, got %s", cfg.TargetAddress())
	}
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.TrustedProxies = []string{"not-a-cidr"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid trusted proxy")
	}
}

func TestIsTrustedProxy(t *testing.T) {
	cfg := newDefault()
	cfg.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.5"}

	if !cfg.IsTrustedProxy("10.1.2.3") {
		t.Error("expected 10.1.2.3 to be trusted")
	}
	if !cfg.IsTrustedProxy("192.168.1.5") {
		t.Error("expected exact IP to be trusted")
	}
	if cfg.IsTrustedProxy("172.16.0.1") {
		t.Error("expected 172.16.0.1 to be untrusted")
	}
}
