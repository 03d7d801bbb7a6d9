package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yaml := `server:
  host: 127.0.0.1
  port: 8080
  mode: release
database:
  driver: sqlite
  sqlite:
    path: ` + filepath.ToSlash(filepath.Join(dir, "identi.db")) + `
log:
  level: error
  format: text
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestRootCmd_Structure(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate"} {
		if findCommand(root, name) == nil {
			t.Errorf("missing %s subcommand", name)
		}
	}
	flag := root.PersistentFlags().Lookup("config")
	if flag == nil || flag.DefValue != defaultConfigPath {
		t.Fatalf("config flag = %+v", flag)
	}
	if root.RunE == nil {
		t.Error("root command should serve by default")
	}
}

func TestMigrateCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"migrate", "--config", writeConfig(t)})

	if err := root.Execute(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out.String(), "migration completed") {
		t.Errorf("output = %q", out.String())
	}
}

func TestMigrateCmd_MissingConfig(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"migrate", "-c", filepath.Join(t.TempDir(), "absent.yaml")})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("err = %v; want load config error", err)
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"migrate", "extra"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unexpected argument")
	}
}
