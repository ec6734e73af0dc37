package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"navicull/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestServerChecksAgainstFakeServer(t *testing.T) {
	server := testsupport.NewFakeServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithServerURL(server.URL))

	if result := CheckServerPing(context.Background(), cfg); !result.Passed {
		t.Fatalf("expected ping to pass, got: %s", result.Detail)
	}
	if result := CheckNativeLogin(context.Background(), cfg); !result.Passed {
		t.Fatalf("expected login to pass, got: %s", result.Detail)
	}
}

func TestServerChecksWithWrongPassword(t *testing.T) {
	server := testsupport.NewFakeServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithServerURL(server.URL))
	cfg.Server.Password = "wrong"

	ping := CheckServerPing(context.Background(), cfg)
	if ping.Passed {
		t.Fatal("expected ping to fail with wrong password")
	}
	if ping.Detail != "rejected: Wrong username or password (code 40)" {
		t.Fatalf("unexpected ping detail: %s", ping.Detail)
	}
	login := CheckNativeLogin(context.Background(), cfg)
	if login.Passed {
		t.Fatal("expected login to fail with wrong password")
	}
}

func TestRunAllSkipsServerChecksWithoutCredentials(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Server.Username = ""
	if err := os.MkdirAll(cfg.Library.MusicRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected credentials + 2 directory checks, got %d: %+v", len(results), results)
	}
	if results[0].Passed {
		t.Fatal("expected credentials check to fail")
	}
	if !results[1].Passed || !results[2].Passed {
		t.Fatalf("expected directory checks to pass: %+v", results[1:])
	}
	if AllPassed(results) {
		t.Fatal("AllPassed should be false")
	}
}
