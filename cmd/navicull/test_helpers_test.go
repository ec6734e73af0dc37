package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"navicull/internal/config"
	"navicull/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	server     *testsupport.FakeServer
	configPath string
}

func setupCLITestEnv(t *testing.T, albums ...testsupport.FakeAlbum) *cliTestEnv {
	t.Helper()

	server := testsupport.NewFakeServer(t, albums...)
	cfg := testsupport.NewConfig(t, testsupport.WithServerURL(server.URL), testsupport.WithPageSize(2))

	home := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("NAVIDROME_URL", "")
	t.Setenv("NAVIDROME_USER", "")
	t.Setenv("NAVIDROME_PASSWORD", "")
	if err := os.MkdirAll(cfg.Library.MusicRoot, 0o755); err != nil {
		t.Fatalf("mkdir music root: %v", err)
	}

	configPath := filepath.Join(testsupport.BaseDir(cfg), "navicull.toml")
	writeConfigFile(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, server: server, configPath: configPath}
}

func writeConfigFile(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[server]
url = %q
username = %q
password = %q

[library]
music_root = %q

[prune]
min_rating = %d
max_rating = %d
page_size = %d

[paths]
state_dir = %q
log_dir = %q

[logging]
level = "error"
`,
		cfg.Server.URL, cfg.Server.Username, cfg.Server.Password,
		cfg.Library.MusicRoot,
		cfg.Prune.MinRating, cfg.Prune.MaxRating, cfg.Prune.PageSize,
		cfg.Paths.StateDir, cfg.Paths.LogDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func requireNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q, got:\n%s", needle, haystack)
	}
}
