package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); got != "confedit version dev\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"get", "save", "validate", "format", "backups", "restore", "diff", "watch", "edit", "init", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRootPersistentFlags(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"config", "server", "timeout", "log-level", "log-file", "quiet", "no-color", "yes"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing --%s", name)
		}
	}
	if f := root.PersistentFlags().ShorthandLookup("y"); f == nil || f.Name != "yes" {
		t.Error("expected -y for --yes")
	}
}

func TestRootRejectsArgs(t *testing.T) {
	root := newRootCommand()
	var errOut bytes.Buffer
	root.SetErr(&errOut)
	root.SetArgs([]string{"bogus"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected unknown command error, got %v", err)
	}
}
