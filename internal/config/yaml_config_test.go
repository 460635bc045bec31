package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValidateValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{KeyFile, "~/tickets.json", false},
		{KeyFile, "  ", true},
		{KeyJSON, "true", false},
		{KeyJSON, "FALSE", false},
		{KeyJSON, "yes please", true},
		{KeyLockTimeout, "30s", false},
		{KeyLockTimeout, "0s", false},
		{KeyLockTimeout, "-1s", true},
		{KeyLockTimeout, "soon", true},
		{KeyColor, "auto", false},
		{KeyColor, "always", false},
		{KeyColor, "never", false},
		{KeyColor, "sometimes", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := ValidateValue(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValue(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateValueUnknownKey(t *testing.T) {
	err := ValidateValue("db", "x")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "lock-timeout") {
		t.Errorf("error should list valid keys, got %q", err)
	}
}

func TestUpdateYamlKey(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		value   string
		want    map[string]interface{}
	}{
		{
			name:    "empty file",
			content: "",
			key:     "color",
			value:   "never",
			want:    map[string]interface{}{"color": "never"},
		},
		{
			name:    "comment only",
			content: "# tk settings\n",
			key:     "json",
			value:   "true",
			want:    map[string]interface{}{"json": true},
		},
		{
			name:    "replace existing",
			content: "file: /old.json\ncolor: auto\n",
			key:     "file",
			value:   "/new.json",
			want:    map[string]interface{}{"file": "/new.json", "color": "auto"},
		},
		{
			name:    "append new",
			content: "file: /a.json\n",
			key:     "lock-timeout",
			value:   "10s",
			want:    map[string]interface{}{"file": "/a.json", "lock-timeout": "10s"},
		},
		{
			name:    "value needing quotes",
			content: "",
			key:     "file",
			value:   "C:\\tickets #1.json",
			want:    map[string]interface{}{"file": "C:\\tickets #1.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := updateYamlKey([]byte(tt.content), tt.key, tt.value)
			if err != nil {
				t.Fatalf("updateYamlKey() error = %v", err)
			}
			var got map[string]interface{}
			if err := yaml.Unmarshal(out, &got); err != nil {
				t.Fatalf("result is not valid YAML: %v\n%s", err, out)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, want := range tt.want {
				if got[k] != want {
					t.Errorf("%s = %#v, want %#v", k, got[k], want)
				}
			}
		})
	}
}

func TestUpdateYamlKeyKeepsComments(t *testing.T) {
	content := "# where tickets live\nfile: /a.json\ncolor: auto # terminal colours\n"
	out, err := updateYamlKey([]byte(content), "color", "never")
	if err != nil {
		t.Fatalf("updateYamlKey() error = %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "# where tickets live") {
		t.Errorf("head comment lost:\n%s", s)
	}
	if !strings.Contains(s, "color: never # terminal colours") {
		t.Errorf("line comment lost:\n%s", s)
	}
}

func TestUpdateYamlKeyRejectsNonMapping(t *testing.T) {
	if _, err := updateYamlKey([]byte("- a\n- b\n"), "color", "auto"); err == nil {
		t.Error("expected error for a sequence document")
	}
}

func TestSetYamlConfig(t *testing.T) {
	t.Cleanup(ResetForTesting)
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	wantPath := filepath.Join(home, ".tk", ConfigFileName)
	t.Cleanup(func() { _ = os.Remove(wantPath) })

	path, err := SetYamlConfig(KeyLockTimeout, "2s")
	if err != nil {
		t.Fatalf("SetYamlConfig() error = %v", err)
	}
	if path != wantPath {
		t.Errorf("wrote %s, want %s", path, wantPath)
	}
	if got := GetString(KeyLockTimeout); got != "2s" {
		t.Errorf("in-process value = %q, want 2s", got)
	}

	// A fresh load sees the written file.
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if got := ConfigFileUsed(); got != wantPath {
		t.Errorf("ConfigFileUsed() = %q, want %q", got, wantPath)
	}
	if got := GetDuration(KeyLockTimeout).String(); got != "2s" {
		t.Errorf("lock-timeout = %s, want 2s", got)
	}

	if _, err := SetYamlConfig(KeyColor, "purple"); err == nil {
		t.Error("expected validation error")
	}
}
