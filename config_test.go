package main

import (
	"testing"
	"time"
)

func validTestConfig() *Config {
	return &Config{
		bind:           "0.0.0.0",
		categoryCost:   500,
		hardTimeout:    90 * time.Second,
		lockChance:     0.5,
		port:           8080,
		questions:      "questions.json",
		softTimeout:    60 * time.Second,
		startingPoints: 1000,
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "cert without key", mutate: func(c *Config) { c.tlsCert = "cert.pem" }, wantErr: true},
		{name: "key without cert", mutate: func(c *Config) { c.tlsKey = "key.pem" }, wantErr: true},
		{name: "cert and key", mutate: func(c *Config) { c.tlsCert = "cert.pem"; c.tlsKey = "key.pem" }},
		{name: "port zero", mutate: func(c *Config) { c.port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.port = 65536 }, wantErr: true},
		{name: "negative starting points", mutate: func(c *Config) { c.startingPoints = -1 }, wantErr: true},
		{name: "zero starting points", mutate: func(c *Config) { c.startingPoints = 0 }},
		{name: "negative category cost", mutate: func(c *Config) { c.categoryCost = -1 }, wantErr: true},
		{name: "lock chance above one", mutate: func(c *Config) { c.lockChance = 1.1 }, wantErr: true},
		{name: "lock chance bounds", mutate: func(c *Config) { c.lockChance = 1 }},
		{name: "zero soft timeout", mutate: func(c *Config) { c.softTimeout = 0 }, wantErr: true},
		{name: "hard not above soft", mutate: func(c *Config) { c.hardTimeout = c.softTimeout }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(cfg)

			err := cfg.validate()
			if tc.wantErr && err == nil {
				t.Fatal("validate() = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("validate() = %v, want nil", err)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := validTestConfig()
	if got := cfg.scheme(); got != "http" {
		t.Fatalf("scheme() = %q, want http", got)
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if got := cfg.scheme(); got != "https" {
		t.Fatalf("scheme() = %q, want https", got)
	}
}
