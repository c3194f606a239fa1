package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestRootRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()
	want := map[string]bool{"transcribe": false, "tracks": false, "models": false, "config": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestConfigInitWritesSampleFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	output := runCommand(t, "config", "init", "--path", target)
	if !strings.Contains(output, target) {
		t.Fatalf("output = %q", output)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[whisper]") {
		t.Fatalf("sample content = %q", data)
	}

	cmd := newRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("second init over an existing file should fail")
	}
}

func TestModelsCommandListsCatalog(t *testing.T) {
	output := runCommand(t, "models")
	for _, model := range []string{"tiny", "medium", "large-v3"} {
		if !strings.Contains(output, model) {
			t.Fatalf("models output missing %q:\n%s", model, output)
		}
	}
}

func TestTranscribeRequiresURL(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"transcribe"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("transcribe without a url should fail")
	}
}
