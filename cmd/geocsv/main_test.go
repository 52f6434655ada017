// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindConfigFile(t *testing.T) {
	t.Run("config in the default location is found", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		dir := filepath.Join(home, ".config", "geocsv")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create config dir: %s", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("loglevel: 0\n"), 0o600); err != nil {
			t.Fatalf("failed to write config file: %s", err)
		}
		path, file := findConfigFile()
		if path != dir || file != "config.yaml" {
			t.Errorf("expected %s/config.yaml, got %s/%s", dir, path, file)
		}
	})
	t.Run("no config file returns empty values", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		path, file := findConfigFile()
		if path != "" || file != "" {
			t.Errorf("expected no config file, got %s/%s", path, file)
		}
	})
}

func TestConvertCmd(t *testing.T) {
	t.Run("input without coordinate columns fails", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		input := filepath.Join(t.TempDir(), "input.csv")
		if err := os.WriteFile(input, []byte("name,city\nA,B\n"), 0o600); err != nil {
			t.Fatalf("failed to write input file: %s", err)
		}
		output := filepath.Join(t.TempDir(), "output.csv")

		stderr := bytes.NewBuffer(nil)
		cmd := newRootCmd()
		cmd.SetOut(bytes.NewBuffer(nil))
		cmd.SetErr(stderr)
		cmd.SetArgs([]string{"convert", input, "-o", output})
		if err := cmd.ExecuteContext(t.Context()); err == nil {
			t.Fatal("expected convert to fail")
		}
		if !strings.Contains(stderr.String(), "latitude and longitude") {
			t.Errorf("expected column error to be reported, got %q", stderr.String())
		}
		if _, err := os.Stat(output); !os.IsNotExist(err) {
			t.Error("expected no output file to be written")
		}
	})
	t.Run("missing input file fails", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		cmd := newRootCmd()
		cmd.SetOut(bytes.NewBuffer(nil))
		cmd.SetErr(bytes.NewBuffer(nil))
		cmd.SetArgs([]string{"convert", filepath.Join(t.TempDir(), "missing.csv")})
		if err := cmd.ExecuteContext(t.Context()); err == nil {
			t.Fatal("expected convert to fail")
		}
	})
	t.Run("invalid map link format fails", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		cmd := newRootCmd()
		cmd.SetOut(bytes.NewBuffer(nil))
		cmd.SetErr(bytes.NewBuffer(nil))
		cmd.SetArgs([]string{"convert", "-", "--map-links=bing"})
		if err := cmd.ExecuteContext(t.Context()); err == nil {
			t.Fatal("expected convert to fail")
		}
	})
}
