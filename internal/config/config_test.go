package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		t.Fatal(err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir(), map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputTemplate != "out_{}.json" {
		t.Errorf("OutputTemplate = %q", cfg.OutputTemplate)
	}

	if cfg.Exported != 10 || cfg.AddProbability != 10 || cfg.DeleteProbability != 10 || cfg.MutateProbability != 20 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	if cfg.Sources.Global != "" || cfg.Sources.Project != "" {
		t.Errorf("no config files exist, sources should be empty: %+v", cfg.Sources)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// HuJSON: comments and trailing commas are tolerated.
	path := writeConfig(t, dir, FileName, `{
		// fixtures land here
		"output_template": "fixtures/broken_{}.json",
		"exported": 25,
		"delete_probability": 0,
	}`)

	cfg, err := Load(dir, map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputTemplate != "fixtures/broken_{}.json" {
		t.Errorf("OutputTemplate = %q", cfg.OutputTemplate)
	}

	if cfg.Exported != 25 {
		t.Errorf("Exported = %d", cfg.Exported)
	}

	// Explicit zero wins over the default of 10.
	if cfg.DeleteProbability != 0 {
		t.Errorf("DeleteProbability = %d, want 0", cfg.DeleteProbability)
	}

	// Untouched keys keep their defaults.
	if cfg.MutateProbability != 20 {
		t.Errorf("MutateProbability = %d, want default 20", cfg.MutateProbability)
	}

	if cfg.Sources.Project != path {
		t.Errorf("Sources.Project = %q, want %q", cfg.Sources.Project, path)
	}
}

func TestLoadGlobalThenProjectPrecedence(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	work := t.TempDir()

	writeConfig(t, home, filepath.Join(".config", "aggutils", "config.json"),
		`{"exported": 3, "salt": "global-salt"}`)
	writeConfig(t, work, FileName, `{"exported": 7}`)

	cfg, err := Load(work, map[string]string{"HOME": home})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Exported != 7 {
		t.Errorf("project config should win: Exported = %d", cfg.Exported)
	}

	if cfg.Salt != "global-salt" {
		t.Errorf("global-only keys should survive: Salt = %q", cfg.Salt)
	}
}

func TestLoadXDGOverridesHome(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	xdg := t.TempDir()

	writeConfig(t, home, filepath.Join(".config", "aggutils", "config.json"), `{"exported": 1}`)
	writeConfig(t, xdg, filepath.Join("aggutils", "config.json"), `{"exported": 2}`)

	cfg, err := Load(t.TempDir(), map[string]string{"HOME": home, "XDG_CONFIG_HOME": xdg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Exported != 2 {
		t.Errorf("XDG config should win over HOME: Exported = %d", cfg.Exported)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"malformed json", `{not json`, ErrInvalid},
		{"probability out of range", `{"add_probability": 150}`, ErrProbabilityRange},
		{"negative exported", `{"exported": -1}`, ErrNegativeExported},
		{"template without placeholder", `{"output_template": "out.json"}`, ErrBadTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, FileName, tt.content)

			_, err := Load(dir, map[string]string{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
