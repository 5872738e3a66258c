package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/viewcore/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "viewcore.json"

	// YAMLConfigFileName is the YAML alternative, used when no JSON file exists.
	YAMLConfigFileName = "viewcore.yaml"

	// DefaultQueueSize is the default driver message queue capacity.
	DefaultQueueSize = 256

	// DefaultPort is the default inspector port.
	DefaultPort = 7070

	// DefaultHost is the default inspector host.
	DefaultHost = "localhost"

	// DefaultSnapshotDir is where the file snapshot store writes.
	DefaultSnapshotDir = ".viewcore/snapshots"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "viewcore"
)

// Config represents viewcore.json (or viewcore.yaml).
type Config struct {
	// Name labels the application in logs and snapshots.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Driver contains message loop settings.
	Driver DriverConfig `json:"driver" yaml:"driver"`

	// Metrics contains Prometheus naming.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Inspect contains inspector server and snapshot store settings.
	Inspect InspectConfig `json:"inspect" yaml:"inspect"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DriverConfig contains driver settings.
type DriverConfig struct {
	// QueueSize is the capacity of the message queue.
	QueueSize int `json:"queueSize,omitempty" yaml:"queueSize,omitempty"`

	// DebugAssertions turns on path balance checks in every WithID scope.
	DebugAssertions bool `json:"debugAssertions,omitempty" yaml:"debugAssertions,omitempty"`

	// Trace enables OpenTelemetry spans for each pass.
	Trace bool `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// MetricsConfig contains Prometheus metric naming.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Subsystem string `json:"subsystem,omitempty" yaml:"subsystem,omitempty"`
}

// InspectConfig contains inspector settings.
type InspectConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// SnapshotDir is the directory for the file snapshot store.
	SnapshotDir string `json:"snapshotDir,omitempty" yaml:"snapshotDir,omitempty"`

	// S3 switches snapshots to a bucket when Bucket is set.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config names the bucket snapshots are written to.
type S3Config struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the service URL, for S3 compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Driver: DriverConfig{
			QueueSize: DefaultQueueSize,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
			Subsystem: "driver",
		},
		Inspect: InspectConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			SnapshotDir: DefaultSnapshotDir,
		},
	}
}

// Load reads configuration from the specified directory. viewcore.json
// wins over viewcore.yaml when both exist.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("VC022").
		WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " in " + dir).
		WithSuggestion("Run 'viewcore serve' without --config to use defaults")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("VC022").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("VC020").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("VC020").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + formatName(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func formatName(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("VC020").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("VC020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Driver.QueueSize == 0 {
		c.Driver.QueueSize = DefaultQueueSize
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Inspect.Host == "" {
		c.Inspect.Host = DefaultHost
	}
	if c.Inspect.Port == 0 {
		c.Inspect.Port = DefaultPort
	}
	if c.Inspect.SnapshotDir == "" {
		c.Inspect.SnapshotDir = DefaultSnapshotDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Driver.QueueSize < 1 {
		return errors.New("VC021").
			WithDetail("driver.queueSize must be at least 1")
	}
	if c.Inspect.Port < 0 || c.Inspect.Port > 65535 {
		return errors.New("VC021").
			WithDetail("inspect.port must be between 0 and 65535")
	}
	if c.Inspect.S3.Bucket != "" && c.Inspect.S3.Region == "" {
		return errors.New("VC021").
			WithDetail("inspect.s3.region is required when a bucket is set")
	}
	if c.Inspect.S3.Bucket == "" && c.Inspect.S3.Prefix != "" {
		return errors.New("VC021").
			WithDetail("inspect.s3.prefix is set without a bucket")
	}
	return nil
}

// Address returns the inspector listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Inspect.Host, strconv.Itoa(c.Inspect.Port))
}

// SnapshotPath returns the snapshot directory, resolved against the
// config file's directory when relative.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Inspect.SnapshotDir) {
		return c.Inspect.SnapshotDir
	}
	return filepath.Join(c.Dir(), c.Inspect.SnapshotDir)
}

// UsesS3 reports whether snapshots go to a bucket.
func (c *Config) UsesS3() bool {
	return c.Inspect.S3.Bucket != ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the directory holding a
// config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("VC022").
				WithDetail("No config found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
