// Package toml loads dictscrape configuration from a TOML file.
package toml

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/dictscrape"
	"github.com/pelletier/go-toml/v2"
)

// EnvConfig names the environment variable that overrides the config path.
const EnvConfig = "DICTSCRAPE_CONFIG"

// configFile mirrors the on-disk layout. Pointer fields distinguish an
// absent key from an explicit zero value.
type configFile struct {
	DBPath    *string  `toml:"db_path"`
	Lang      string   `toml:"lang"`
	Sources   []string `toml:"sources"`
	Timeout   string   `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
	Rate      *float64 `toml:"rate"`
}

// Dir returns the directory holding user-level dictscrape files,
// ~/.dictscrape.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dictscrape"), nil
}

// DefaultPath returns $DICTSCRAPE_CONFIG if set, otherwise
// ~/.dictscrape/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the configuration at path, or at DefaultPath when path
// is empty. A missing file yields the defaults with the history database
// in Dir. Keys absent from the file keep their default values.
func LoadConfig(path string) (dictscrape.Config, error) {
	cfg := dictscrape.DefaultConfig()
	if dir, err := Dir(); err == nil {
		cfg.DBPath = filepath.Join(dir, "history.db")
	}

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, nil
		}
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	var file configFile
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return cfg, dictscrape.Errorf(dictscrape.EINVALID, "invalid config %s: %v", path, err)
	}

	if file.DBPath != nil {
		cfg.DBPath = *file.DBPath
	}
	if file.Lang != "" {
		cfg.Lang = dictscrape.Language(file.Lang)
	}
	if len(file.Sources) > 0 {
		cfg.Sources = file.Sources
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return cfg, dictscrape.Errorf(dictscrape.EINVALID, "invalid timeout %q in %s", file.Timeout, path)
		}
		cfg.Timeout = d
	}
	if file.UserAgent != "" {
		cfg.UserAgent = file.UserAgent
	}
	if file.Rate != nil {
		cfg.Rate = *file.Rate
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
