package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/viewcore/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Driver.QueueSize != DefaultQueueSize {
		t.Errorf("Driver.QueueSize = %d, want %d", cfg.Driver.QueueSize, DefaultQueueSize)
	}
	if cfg.Inspect.Port != DefaultPort {
		t.Errorf("Inspect.Port = %d, want %d", cfg.Inspect.Port, DefaultPort)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if errors.Code(err) != "VC022" {
		t.Errorf("missing config error code = %q, want VC022", errors.Code(err))
	}

	configJSON := `{
  "name": "todo",
  "driver": {
    "queueSize": 16,
    "debugAssertions": true
  },
  "inspect": {
    "port": 9090,
    "s3": {"bucket": "snaps", "region": "eu-west-1"}
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "todo" {
		t.Errorf("Name = %q, want todo", cfg.Name)
	}
	if cfg.Driver.QueueSize != 16 || !cfg.Driver.DebugAssertions {
		t.Errorf("Driver = %+v", cfg.Driver)
	}
	if cfg.Inspect.Port != 9090 {
		t.Errorf("Inspect.Port = %d, want 9090", cfg.Inspect.Port)
	}
	// Unset fields keep their defaults.
	if cfg.Inspect.Host != DefaultHost {
		t.Errorf("Inspect.Host = %q, want %q", cfg.Inspect.Host, DefaultHost)
	}
	if !cfg.UsesS3() {
		t.Error("UsesS3() should be true")
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `name: todo
driver:
  queueSize: 8
  trace: true
metrics:
  subsystem: demo
inspect:
  snapshotDir: snaps
`
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Driver.QueueSize != 8 || !cfg.Driver.Trace {
		t.Errorf("Driver = %+v", cfg.Driver)
	}
	if cfg.Metrics.Subsystem != "demo" || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if got, want := cfg.SnapshotPath(), filepath.Join(tmpDir, "snaps"); got != want {
		t.Errorf("SnapshotPath() = %q, want %q", got, want)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"name":"json"}`), 0644)
	os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte("name: yaml\n"), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want json", cfg.Name)
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	os.WriteFile(path, []byte(`{"driver": `), 0644)

	_, err := LoadFile(path)
	if errors.Code(err) != "VC020" {
		t.Fatalf("error code = %q, want VC020", errors.Code(err))
	}
	if !strings.Contains(err.Error(), ConfigFileName) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := New()
			cfg.Name = "todo"
			cfg.Driver.QueueSize = 32
			cfg.Inspect.S3 = S3Config{Bucket: "b", Prefix: "p/", Region: "us-east-1"}
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero queue", func(c *Config) { c.Driver.QueueSize = 0 }, false},
		{"port too large", func(c *Config) { c.Inspect.Port = 70000 }, false},
		{"bucket without region", func(c *Config) { c.Inspect.S3.Bucket = "b" }, false},
		{"prefix without bucket", func(c *Config) { c.Inspect.S3.Prefix = "p/" }, false},
		{"bucket with region", func(c *Config) {
			c.Inspect.S3 = S3Config{Bucket: "b", Region: "us-east-1"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && errors.Code(err) != "VC021" {
				t.Errorf("Validate() = %v, want VC021", err)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	if got, want := cfg.Address(), "localhost:7070"; got != want {
		t.Errorf("Address() = %q, want %q", got, want)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, YAMLConfigFileName), []byte("name: x\n"), 0644)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}

	if _, err := FindProjectRoot(t.TempDir()); err == nil {
		t.Error("FindProjectRoot should fail without a config")
	}
}
