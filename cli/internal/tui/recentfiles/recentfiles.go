// ABOUTME: Manages recent export paths for the TUI input suggestions
// ABOUTME: Stores per-kind lists (traffic, trxchan) in the XDG config directory

package recentfiles

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MaxRecentFiles is the maximum number of recent files kept per kind
const MaxRecentFiles = 5

// Kinds of export remembered by the wizard.
const (
	KindTraffic = "traffic"
	KindTrxChan = "trxchan"
)

// RecentFiles manages lists of recently used export files keyed by kind
type RecentFiles struct {
	configDir string
	files     map[string][]string
}

type recentData struct {
	Files map[string][]string `json:"files"`
}

// New creates a new RecentFiles manager with the given config directory
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sdcch-dim")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sdcch-dim")
}

func (rf *RecentFiles) configFile() string {
	return filepath.Join(rf.configDir, "recent.json")
}

// Load reads the recent lists from disk, dropping files that no longer exist.
// A missing or corrupt file yields empty lists.
func (rf *RecentFiles) Load() error {
	rf.files = map[string][]string{}

	data, err := os.ReadFile(rf.configFile())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		return nil
	}

	for kind, paths := range recent.Files {
		kept := make([]string, 0, len(paths))
		for _, path := range paths {
			if _, err := os.Stat(path); err == nil {
				kept = append(kept, path)
			}
		}
		rf.files[kind] = kept
	}
	return nil
}

func (rf *RecentFiles) save() error {
	if err := os.MkdirAll(rf.configDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(recentData{Files: rf.files}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rf.configFile(), data, 0644)
}

func (rf *RecentFiles) ensureLoaded() {
	if rf.files == nil {
		if err := rf.Load(); err != nil {
			rf.files = map[string][]string{}
		}
	}
}

// Add moves path to the front of the kind's list and persists it
func (rf *RecentFiles) Add(kind, path string) error {
	rf.ensureLoaded()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	list := make([]string, 0, MaxRecentFiles)
	list = append(list, path)
	for _, f := range rf.files[kind] {
		if f != path && len(list) < MaxRecentFiles {
			list = append(list, f)
		}
	}
	rf.files[kind] = list
	return rf.save()
}

// List returns the recent files of one kind, most recent first
func (rf *RecentFiles) List(kind string) []string {
	rf.ensureLoaded()
	return rf.files[kind]
}

// Latest returns the most recent file of one kind, or ""
func (rf *RecentFiles) Latest(kind string) string {
	if list := rf.List(kind); len(list) > 0 {
		return list[0]
	}
	return ""
}
