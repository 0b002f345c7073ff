// Package config provides configuration management for the structgen CLI.
//
// Values are layered, highest precedence first: explicitly set flags,
// STRUCTGEN_* environment variables, the config file, built-in defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Root is the directory holding one directory per compound.
	Root string `koanf:"root"`
	// Format is the structure encoding: xml, json or yaml.
	Format string `koanf:"format"`
	// FileName overrides the structure file name.
	FileName string `koanf:"file_name"`
	// OutputDir writes structures to <output_dir>/<compound>/ instead of the
	// compound directory.
	OutputDir string `koanf:"output_dir"`
	// Jobs is the number of compounds processed concurrently.
	Jobs int `koanf:"jobs"`
	// MixedOrder orders names of different kinds: kind or lexical.
	MixedOrder string `koanf:"mixed_order"`
	// Ignore holds name patterns skipped while scanning.
	Ignore []string `koanf:"ignore"`
	// Ordinals extends the ordinal vocabulary (word -> rank).
	Ordinals map[string]int `koanf:"ordinals"`
	DryRun   bool           `koanf:"dry_run"`
	Verbose  bool           `koanf:"verbose"`
	// OutputFormat is the render mode: auto, text, markdown or json.
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultRoot       = "."
	DefaultFormat     = "xml"
	DefaultJobs       = 1
	DefaultMixedOrder = "kind"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// configFileNames are looked up in the working directory when no --config
// flag is given.
var configFileNames = []string{"structgen.yaml", "structgen.yml", ".structgen.yaml"}

// Defaults returns a Config holding only default values.
func Defaults() *Config {
	return &Config{
		Root:         DefaultRoot,
		Format:       DefaultFormat,
		Jobs:         DefaultJobs,
		MixedOrder:   DefaultMixedOrder,
		OutputFormat: DefaultOutput,
	}
}
