package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/scene"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Kind != "atom" {
		t.Errorf("expected kind atom, got %s", cfg.Kind)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Params.DNA.Samples == 0 {
		t.Error("expected default scene params")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scale = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected negative scale to fail")
	}

	cfg = DefaultConfig()
	cfg.Kind = "galaxy"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown kind to fail")
	}

	cfg = DefaultConfig()
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown log level to fail")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("atom", "hydrogen")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.Atom.Orbits.Count != 1 {
		t.Errorf("expected 1 orbit, got %d", cfg.Params.Atom.Orbits.Count)
	}

	cfg = GetPreset("math_surface", "saddle")
	if cfg == nil || cfg.Kind != "mathSurface" || cfg.Params.Surface.Function != "saddle" {
		t.Errorf("unexpected surface preset %+v", cfg)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("atom", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "small"); cfg != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestPresetsBuild(t *testing.T) {
	asm := scene.NewAssembler(nil)
	for kind := range Presets {
		for _, name := range ListPresets(kind) {
			cfg := GetPreset(kind, name)
			desc, err := cfg.Descriptor()
			if err != nil {
				t.Fatalf("%s/%s: %v", kind, name, err)
			}
			if _, err := asm.Build(desc, cfg.SceneParams()); err != nil {
				t.Errorf("%s/%s does not build: %v", kind, name, err)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("dna")
	if len(presets) != 3 || presets[0] != "long" {
		t.Errorf("expected sorted dna presets, got %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eduverse.yaml")
	cfg := DefaultConfig()
	cfg.Kind = "cell"
	cfg.Params.Cell.Ribosomes.Count = 7
	cfg.Bindings = map[string][]anim.Spec{"cell": {{Group: "root", Axis: "x", Mode: "absolute", Rate: 2}}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Kind != "cell" || got.Params.Cell.Ribosomes.Count != 7 {
		t.Errorf("round trip lost values: %+v", got)
	}
	b, err := got.AnimBindings(scene.Cell)
	if err != nil || len(b) != 1 || b[0].Policy != (anim.Absolute{Velocity: 2}) {
		t.Errorf("unexpected bindings %+v, %v", b, err)
	}
	if b, _ := got.AnimBindings(scene.DNA); len(b) != 1 {
		t.Errorf("expected default dna binding, got %+v", b)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("kind: dna\nfps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != 30 || cfg.Kind != "dna" {
		t.Errorf("expected overrides, got %+v", cfg)
	}
	if cfg.Params.DNA.Samples != 20 || cfg.DataDir != DefaultDataDir {
		t.Error("expected defaults to survive a partial file")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte("EDUVERSE_ADDR=:9999\nEDUVERSE_LOG_LEVEL=debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAddr, "")
	os.Unsetenv(EnvAddr)
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv("DATABASE_URL", "postgres://localhost/eduverse")

	cfg := DefaultConfig()
	if err := cfg.LoadEnv(env, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load env failed: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("expected addr from dotenv, got %s", cfg.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("environment should win over dotenv, got %s", cfg.LogLevel)
	}
	if cfg.DatabaseURL != "postgres://localhost/eduverse" {
		t.Errorf("expected database url, got %s", cfg.DatabaseURL)
	}
}
