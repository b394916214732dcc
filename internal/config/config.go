// Package config loads the project-local settings file at
// <root>/.anchor/config.toml, filling every field with a sane default when
// the file or any of its sections is missing.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	anchorerrors "github.com/standardbeagle/anchor/internal/errors"
)

// Config is the full set of project-local settings.
type Config struct {
	Project Project `toml:"project"`
	Index   Index   `toml:"index"`
	Watch   Watch   `toml:"watch"`
	Search  Search  `toml:"search"`
	Cache   Cache   `toml:"cache"`
}

// Project describes the root being indexed.
type Project struct {
	Root string `toml:"root"`
}

// Index controls what the builder walks and parses.
type Index struct {
	Include     []string `toml:"include"`
	Exclude     []string `toml:"exclude"`
	MaxFileSize int64    `toml:"max_file_size_bytes"`
	Workers     int      `toml:"workers"` // 0 = auto-detect (NumCPU)
}

// Watch controls the filesystem watcher's debounce behavior.
type Watch struct {
	Enabled     bool `toml:"enabled"`
	DebounceMs  int  `toml:"debounce_ms"`
}

// Search bounds result sizes returned by the query façade.
type Search struct {
	DefaultLimit int `toml:"default_limit"`
	MaxDepth     int `toml:"max_depth"`
}

// Cache controls where the persisted graph lives.
type Cache struct {
	Path string `toml:"path"`
}

const configRelPath = ".anchor/config.toml"
const defaultCacheRelPath = ".anchor/graph.bin"

// Default returns the configuration used when no config.toml is present,
// rooted at root.
func Default(root string) Config {
	return Config{
		Project: Project{Root: root},
		Index: Index{
			Include:     nil,
			Exclude:     []string{"**/node_modules/**", "**/.git/**", "**/vendor/**", "**/target/**", "**/dist/**", "**/build/**"},
			MaxFileSize: 5 * 1024 * 1024,
			Workers:     0,
		},
		Watch: Watch{
			Enabled:    true,
			DebounceMs: 300,
		},
		Search: Search{
			DefaultLimit: 25,
			MaxDepth:     2,
		},
		Cache: Cache{
			Path: filepath.Join(root, defaultCacheRelPath),
		},
	}
}

// Load reads <root>/.anchor/config.toml, filling in defaults for any
// section left zero-valued. A missing file is not an error: Load returns
// pure defaults.
func Load(root string) (Config, error) {
	cfg := Default(root)

	path := filepath.Join(root, configRelPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &anchorerrors.Io{Path: path, Detail: "read config", Err: err}
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(root), &anchorerrors.Io{Path: path, Detail: "parse config toml", Err: err}
	}

	applyDefaults(&cfg, root)
	return cfg, nil
}

// applyDefaults fills in fields the user's config.toml left unset, so a
// partial file (e.g. just [watch]) doesn't zero out the rest.
func applyDefaults(cfg *Config, root string) {
	defaults := Default(root)

	if cfg.Project.Root == "" {
		cfg.Project.Root = root
	}
	if cfg.Index.MaxFileSize == 0 {
		cfg.Index.MaxFileSize = defaults.Index.MaxFileSize
	}
	if cfg.Index.Exclude == nil {
		cfg.Index.Exclude = defaults.Index.Exclude
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = defaults.Watch.DebounceMs
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = defaults.Search.DefaultLimit
	}
	if cfg.Search.MaxDepth == 0 {
		cfg.Search.MaxDepth = defaults.Search.MaxDepth
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = defaults.Cache.Path
	} else if !filepath.IsAbs(cfg.Cache.Path) {
		cfg.Cache.Path = filepath.Join(root, cfg.Cache.Path)
	}
}
