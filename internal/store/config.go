package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"linkdeck/internal/model"
)

const (
	configFileName      = "config.json"
	submissionsFileName = "submissions.sqlite"
)

// Config is the user configuration stored in <dir>/config.json.
type Config struct {
	// Links is the initial collection. Nil means the built-in defaults;
	// an empty list starts with an empty collection.
	Links []model.LinkValues `json:"links"`

	// NewLink is the template used by append/prepend/insert when no values are given.
	NewLink *model.LinkValues `json:"newLink,omitempty"`

	Submissions *SubmissionsConfig `json:"submissions,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type SubmissionsConfig struct {
	// Disabled turns off the SQLite submission log.
	Disabled bool `json:"disabled,omitempty"`
	// Path overrides <dir>/submissions.sqlite.
	Path string `json:"path,omitempty"`
}

type TUIConfig struct {
	// Theme is one of: auto|light|dark.
	Theme string `json:"theme,omitempty"`
	// Glyphs selects the glyph set (unicode|ascii).
	Glyphs string `json:"glyphs,omitempty"`
	// LogFile receives TUI logs; empty disables TUI logging.
	LogFile string `json:"logFile,omitempty"`
}

// DefaultLinks is the collection used when config.json has no links.
func DefaultLinks() []model.LinkValues {
	return []model.LinkValues{
		{Title: "Link 01", URL: "https://link01.com.br"},
		{Title: "Link 02", URL: "https://link02.com.br"},
	}
}

// DefaultNewLink is the template for new links.
func DefaultNewLink() model.LinkValues {
	return model.LinkValues{Title: "", URL: "https://"}
}

func (c *Config) InitialLinks() []model.LinkValues {
	if c == nil || c.Links == nil {
		return DefaultLinks()
	}
	return append([]model.LinkValues{}, c.Links...)
}

func (c *Config) NewLinkTemplate() model.LinkValues {
	if c == nil || c.NewLink == nil {
		return DefaultNewLink()
	}
	return *c.NewLink
}

func (c *Config) Glyphs() string {
	if c == nil || c.TUI == nil || strings.TrimSpace(c.TUI.Glyphs) == "" {
		return "unicode"
	}
	return strings.ToLower(strings.TrimSpace(c.TUI.Glyphs))
}

// Store is a linkdeck config directory.
type Store struct {
	Dir string
}

// ConfigDir resolves the config directory: $LINKDECK_CONFIG_DIR, then ~/.linkdeck.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("LINKDECK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".linkdeck"), nil
}

// Open returns a Store for dir, or for ConfigDir() when dir is empty.
func Open(dir string) (Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return Store{}, err
		}
		dir = d
	}
	return Store{Dir: dir}, nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) ConfigPath() string {
	return filepath.Join(s.Dir, configFileName)
}

// SubmissionsPath is where the submission log lives; "" when disabled.
func (s Store) SubmissionsPath(cfg *Config) string {
	if cfg != nil && cfg.Submissions != nil {
		if cfg.Submissions.Disabled {
			return ""
		}
		if p := strings.TrimSpace(cfg.Submissions.Path); p != "" {
			return p
		}
	}
	return filepath.Join(s.Dir, submissionsFileName)
}

// LoadConfig reads config.json. A missing file yields an empty config.
func (s Store) LoadConfig() (*Config, error) {
	b, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// SaveConfig writes config.json atomically and keeps the previous file as config.json.bak.
func (s Store) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := s.ConfigPath()
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(s.Dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(s.Dir, "config.json.*.tmp", path, b, 0o644)
}
