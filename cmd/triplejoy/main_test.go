package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestResolveGameID(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"gems_hard", "gems_hard", false},
		{"hard", "gems_hard", false},
		{"Medium", "gems_medium", false},
		{"gems_easy", "gems_easy", false},
		{"", "gems_easy", false}, // embedded default
		{"pong", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := resolveGameID(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveGameID(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveGameID(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addr := ":1"
	key := ""
	idle := 5
	flags.StringVar(&addr, "ssh", addr, "")
	flags.StringVar(&key, "host-key", key, "")
	flags.IntVar(&idle, "idle-timeout", idle, "")
	if err := flags.Parse([]string{"--host-key", "from-flag"}); err != nil {
		t.Fatal(err)
	}

	t.Setenv(envSSHAddr, ":2222")
	t.Setenv(envHostKey, "from-env")
	t.Setenv(envIdleTimeout, "12")

	envString(flags, "ssh", envSSHAddr, &addr)
	envString(flags, "host-key", envHostKey, &key)
	if err := envInt(flags, "idle-timeout", envIdleTimeout, &idle); err != nil {
		t.Fatalf("envInt() failed: %v", err)
	}

	if addr != ":2222" {
		t.Errorf("addr = %q, want env value", addr)
	}
	if key != "from-flag" {
		t.Errorf("key = %q, flags win over env", key)
	}
	if idle != 12 {
		t.Errorf("idle = %d, want 12", idle)
	}

	t.Setenv(envIdleTimeout, "soon")
	if err := envInt(flags, "idle-timeout", envIdleTimeout, &idle); err == nil {
		t.Error("expected error for non-numeric timeout")
	}
}

func TestServerConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "serve.env")
	content := "TRIPLEJOY_SSH_ADDR=:4444\nTRIPLEJOY_DB=" + filepath.Join(dir, "s.db") + "\nTRIPLEJOY_IDLE_TIMEOUT_MIN=3\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// godotenv.Load does not override variables that are already set
	for _, k := range []string{envSSHAddr, envDBPath, envIdleTimeout, envHostKey} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	envFileBefore, addrBefore, dbBefore, idleBefore := flagEnvFile, flagSSHAddr, flagDBPath, flagIdleTimeout
	t.Cleanup(func() {
		flagEnvFile, flagSSHAddr, flagDBPath, flagIdleTimeout = envFileBefore, addrBefore, dbBefore, idleBefore
	})
	flagEnvFile = envFile

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("ssh", "", "")
	flags.String("host-key", "", "")
	flags.String("db", "", "")
	flags.Int("idle-timeout", 0, "")

	cfg, err := serverConfig(flags)
	if err != nil {
		t.Fatalf("serverConfig() failed: %v", err)
	}
	if cfg.Address != ":4444" {
		t.Errorf("Address = %q, want :4444", cfg.Address)
	}
	if cfg.DBPath != filepath.Join(dir, "s.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.IdleTimeout != 3*time.Minute {
		t.Errorf("IdleTimeout = %v, want 3m", cfg.IdleTimeout)
	}
	if cfg.DefaultGameID != "gems_easy" {
		t.Errorf("DefaultGameID = %q, want gems_easy", cfg.DefaultGameID)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := loadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
