package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"linkdeck/internal/model"
)

func TestOpen_UsesEnvConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LINKDECK_CONFIG_DIR", dir)

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Dir != dir {
		t.Fatalf("expected dir %q, got %q", dir, s.Dir)
	}

	s, err = Open("/tmp/explicit")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Dir != "/tmp/explicit" {
		t.Fatalf("explicit dir should win, got %q", s.Dir)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	links := cfg.InitialLinks()
	if len(links) != 2 || links[0].Title != "Link 01" || links[1].URL != "https://link02.com.br" {
		t.Fatalf("unexpected default links: %+v", links)
	}
	if got := cfg.NewLinkTemplate(); got != (model.LinkValues{URL: "https://"}) {
		t.Fatalf("unexpected default template: %+v", got)
	}
	if cfg.Glyphs() != "unicode" {
		t.Fatalf("expected unicode glyphs, got %q", cfg.Glyphs())
	}
}

func TestSaveConfig_RoundTripAndBackup(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "nested")}

	first := &Config{Links: []model.LinkValues{{Title: "A", URL: "https://a"}}}
	if err := s.SaveConfig(first); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	second := &Config{
		Links:   []model.LinkValues{},
		NewLink: &model.LinkValues{Title: "new", URL: "https://new"},
		TUI:     &TUIConfig{Glyphs: " ASCII "},
	}
	if err := s.SaveConfig(second); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if links := cfg.InitialLinks(); links == nil || len(links) != 0 {
		t.Fatalf("explicit empty links must stay empty, got %+v", links)
	}
	if cfg.NewLinkTemplate().Title != "new" {
		t.Fatalf("unexpected template: %+v", cfg.NewLinkTemplate())
	}
	if cfg.Glyphs() != "ascii" {
		t.Fatalf("expected ascii glyphs, got %q", cfg.Glyphs())
	}

	bak, err := os.ReadFile(s.ConfigPath() + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(bak), `"A"`) {
		t.Fatalf("backup should hold the previous config, got %s", bak)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := os.WriteFile(s.ConfigPath(), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSubmissionsPath(t *testing.T) {
	s := Store{Dir: "/cfg"}
	if got := s.SubmissionsPath(nil); got != filepath.Join("/cfg", "submissions.sqlite") {
		t.Fatalf("default path: %q", got)
	}
	if got := s.SubmissionsPath(&Config{Submissions: &SubmissionsConfig{Path: "/x/log.sqlite"}}); got != "/x/log.sqlite" {
		t.Fatalf("override path: %q", got)
	}
	if got := s.SubmissionsPath(&Config{Submissions: &SubmissionsConfig{Disabled: true}}); got != "" {
		t.Fatalf("disabled should be empty, got %q", got)
	}
}

func TestSaveConfig_EmptyLinksStayEmpty(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.SaveConfig(&Config{Links: []model.LinkValues{}}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	b, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `"links": []`) {
		t.Fatalf("expected an explicit empty links list on disk, got %s", b)
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if links := cfg.InitialLinks(); links == nil || len(links) != 0 {
		t.Fatalf("expected empty initial links, got %+v", links)
	}

	// Without links the built-in defaults apply.
	if err := s.SaveConfig(&Config{}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	cfg, err = s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := len(cfg.InitialLinks()); got != 2 {
		t.Fatalf("expected 2 default links, got %d", got)
	}
}
