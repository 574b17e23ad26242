package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"idlglue/report"
)

// GlueConfigFileName is the name of the generation config file.
const GlueConfigFileName = "glue.toml"

// tomlConfig represents a generation config as it is encoded in TOML.
type tomlConfig struct {
	Name      string   `toml:"name"`
	Inputs    []string `toml:"inputs"`
	OutputDir string   `toml:"output-dir"`
}

// Config is the loaded generation config: the project name, the IDL input
// files and the output directory, all paths resolved relative to the config
// file.
type Config struct {
	Name      string
	Inputs    []string
	OutputDir string
}

// LoadConfig loads and validates the generation config at the given path.
func LoadConfig(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file at `%s`: %s", path, err.Error())
	}

	tomlCfg := &tomlConfig{}
	if err := toml.Unmarshal(buff, tomlCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file at `%s`: %s", path, err.Error())
	}

	if len(tomlCfg.Inputs) == 0 {
		return nil, fmt.Errorf("config file at `%s` lists no inputs", path)
	}

	// All relative paths in the config are relative to its directory.
	dir := filepath.Dir(path)
	cfg := &Config{
		Name:      tomlCfg.Name,
		OutputDir: tomlCfg.OutputDir,
	}

	for _, input := range tomlCfg.Inputs {
		if !filepath.IsAbs(input) {
			input = filepath.Join(dir, input)
		}

		cfg.Inputs = append(cfg.Inputs, input)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = dir
	} else if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(dir, cfg.OutputDir)
	}

	return cfg, nil
}

// LoadConfig loads the generator's config file and fills in the output
// directory if it was not set on the command line.  It returns whether
// generation should continue.
func (g *Generator) LoadConfig() bool {
	cfg, err := LoadConfig(g.configPath)
	if err != nil {
		report.ReportFatal("%s", err.Error())
		return false
	}

	g.config = cfg
	if g.outputDir == "" {
		g.outputDir = cfg.OutputDir
	}

	return true
}
