package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	fileName = "folio.yaml"
	envName  = ".env"
)

type GitHub struct {
	User       string        `yaml:"user"`
	Token      string        `yaml:"-"`
	APIBaseURL string        `yaml:"api_base_url"`
	PerPage    int           `yaml:"per_page"`
	Limit      int           `yaml:"limit"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

// Display maps terminal cells to the logical pixels the chooser reasons in.
type Display struct {
	CellWidthPx  int `yaml:"cell_width_px"`
	CellHeightPx int `yaml:"cell_height_px"`
}

type Config struct {
	DataDir     string  `yaml:"data_dir"`
	DBPath      string  `yaml:"db_path"`
	ContentPath string  `yaml:"content_path"`
	ResumePath  string  `yaml:"resume_path"`
	LogPath     string  `yaml:"log_path"`
	PluginsPath string  `yaml:"plugins_path"`
	Debug       bool    `yaml:"debug"`
	GitHub      GitHub  `yaml:"github"`
	Display     Display `yaml:"display"`
}

type Options struct {
	// ConfigPath defaults to <data_dir>/folio.yaml. A missing file is fine
	// unless the path was given explicitly.
	ConfigPath string
	DataDir    string
	// EnvPath defaults to .env in the working directory, then <data_dir>/.env.
	EnvPath string
}

func Default(dataDir string) Config {
	return Config{
		DataDir:     dataDir,
		DBPath:      filepath.Join(dataDir, "folio.db"),
		LogPath:     filepath.Join(dataDir, "folio.log"),
		PluginsPath: filepath.Join(dataDir, "plugins", "plugins.json"),
		GitHub: GitHub{
			APIBaseURL: "https://api.github.com",
			PerPage:    100,
			Limit:      6,
			CacheTTL:   24 * time.Hour,
		},
		Display: Display{CellWidthPx: 8, CellHeightPx: 16},
	}
}

func Load(opts Options) (Config, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".folio")
	}
	cfg := Default(dataDir)

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, fileName)
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	fillDefaults(&cfg)

	env, err := readEnv(opts.EnvPath, cfg.DataDir)
	if err != nil {
		return Config{}, err
	}
	applyEnv(&cfg, env)
	return cfg, nil
}

func fillDefaults(cfg *Config) {
	def := Default(cfg.DataDir)
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = def.LogPath
	}
	if cfg.PluginsPath == "" {
		cfg.PluginsPath = def.PluginsPath
	}
	if cfg.GitHub.APIBaseURL == "" {
		cfg.GitHub.APIBaseURL = def.GitHub.APIBaseURL
	}
	if cfg.GitHub.PerPage <= 0 {
		cfg.GitHub.PerPage = def.GitHub.PerPage
	}
	if cfg.GitHub.Limit <= 0 {
		cfg.GitHub.Limit = def.GitHub.Limit
	}
	if cfg.GitHub.CacheTTL <= 0 {
		cfg.GitHub.CacheTTL = def.GitHub.CacheTTL
	}
	if cfg.Display.CellWidthPx <= 0 {
		cfg.Display.CellWidthPx = def.Display.CellWidthPx
	}
	if cfg.Display.CellHeightPx <= 0 {
		cfg.Display.CellHeightPx = def.Display.CellHeightPx
	}
}

func readEnv(explicit, dataDir string) (map[string]string, error) {
	candidates := []string{envName, filepath.Join(dataDir, envName)}
	if explicit != "" {
		candidates = []string{explicit}
	}
	for _, path := range candidates {
		env, err := godotenv.Read(path)
		if err == nil {
			return env, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return map[string]string{}, nil
}

// applyEnv lets the process environment win over the .env file, and both win
// over the YAML file.
func applyEnv(cfg *Config, file map[string]string) {
	lookup := func(key string) (string, bool) {
		if v := os.Getenv(key); v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
	if v, ok := lookup("FOLIO_GITHUB_TOKEN"); ok {
		cfg.GitHub.Token = v
	}
	if v, ok := lookup("FOLIO_GITHUB_USER"); ok {
		cfg.GitHub.User = v
	}
	if v, ok := lookup("FOLIO_DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}
