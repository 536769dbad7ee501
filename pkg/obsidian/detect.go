// Package obsidian finds an enclosing Obsidian vault and reads the note
// filename formats configured by its plugins.
package obsidian

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/totocaster/stamp/pkg/core"
)

const (
	configDirName = ".obsidian"

	dailyNotesPlugin = "daily-notes"
	uniqueNotePlugin  = "unique-note-creator"
)

// Result describes detected vault metadata for a directory.
type Result struct {
	InVault   bool         `json:"in_vault"`
	VaultPath string       `json:"vault_path,omitempty"`
	Layouts   core.Layouts `json:"layouts"`
}

// Detect walks up from startPath looking for a vault. When found, it converts
// the Daily Notes format and the Unique Note Creator format into Go layouts.
// A non-nil Result may accompany an error when the vault was found but a
// plugin file could not be read.
func Detect(startPath string) (*Result, error) {
	absStart, err := filepath.Abs(startPath)
	if err != nil {
		return nil, err
	}

	vaultPath, err := findVault(absStart)
	if err != nil {
		return nil, err
	}
	if vaultPath == "" {
		return &Result{}, nil
	}

	res := &Result{InVault: true, VaultPath: vaultPath}
	res.Layouts, err = collectLayouts(filepath.Join(vaultPath, configDirName))
	return res, err
}

func findVault(start string) (string, error) {
	current := start
	for {
		info, err := os.Stat(filepath.Join(current, configDirName))
		if err == nil && info.IsDir() {
			return current, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func collectLayouts(configDir string) (core.Layouts, error) {
	var layouts core.Layouts

	daily, dailyErr := dailyNotesFormat(configDir)
	if layout, ok := momentToGoLayout(daily); ok && daily != "" {
		layouts.Daily = layout
	}

	unique, uniqueErr := uniqueNoteFormat(configDir)
	if layout, ok := momentToGoLayout(unique); ok && unique != "" {
		layouts.Default = layout
	}

	return layouts, errors.Join(dailyErr, uniqueErr)
}

func dailyNotesFormat(configDir string) (string, error) {
	if !pluginListed(filepath.Join(configDir, "core-plugins.json"), dailyNotesPlugin) {
		return "", nil
	}

	var plugin struct {
		Format string `json:"format"`
	}
	if err := readJSON(filepath.Join(configDir, "daily-notes.json"), &plugin); err != nil {
		return "", err
	}
	if plugin.Format != "" {
		return plugin.Format, nil
	}

	// Older vaults keep the setting in app.json.
	var app struct {
		DailyNotes struct {
			Format string `json:"format"`
		} `json:"dailyNotes"`
	}
	if err := readJSON(filepath.Join(configDir, "app.json"), &app); err != nil {
		return "", err
	}
	return app.DailyNotes.Format, nil
}

func uniqueNoteFormat(configDir string) (string, error) {
	pluginDir := filepath.Join(configDir, "plugins", uniqueNotePlugin)
	if !pluginListed(filepath.Join(configDir, "community-plugins.json"), uniqueNotePlugin) && !isDir(pluginDir) {
		return "", nil
	}

	var settings any
	if err := readJSON(filepath.Join(pluginDir, "data.json"), &settings); err != nil {
		return "", err
	}
	format, _ := searchFormat(settings)
	return format, nil
}

// readJSON decodes path into v. A missing file leaves v untouched.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func pluginListed(path, id string) bool {
	var ids []string
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, &ids); err != nil {
		return false
	}
	return slices.Contains(ids, id)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// searchFormat looks for the first format-like string under a key that
// mentions "format", then anywhere in the document.
func searchFormat(node any) (string, bool) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if str, ok := val.(string); ok && strings.Contains(strings.ToLower(key), "format") && looksLikeMomentFormat(str) {
				return str, true
			}
		}
		for _, val := range v {
			if str, ok := searchFormat(val); ok {
				return str, true
			}
		}
	case []any:
		for _, item := range v {
			if str, ok := searchFormat(item); ok {
				return str, true
			}
		}
	case string:
		if looksLikeMomentFormat(v) {
			return v, true
		}
	}
	return "", false
}

func looksLikeMomentFormat(value string) bool {
	return strings.ContainsAny(value, "YMDHhms")
}
