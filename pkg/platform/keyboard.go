package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// OS represents an operating system.
type OS string

const (
	// Darwin is macOS.
	Darwin OS = "darwin"
	// Windows is Microsoft Windows.
	Windows OS = "windows"
	// Linux is Linux.
	Linux OS = "linux"
	// Unknown is an unrecognized OS.
	Unknown OS = "unknown"
)

// Info contains platform-specific information.
type Info struct {
	OS          OS
	Arch        string
	Version     string
	DisplayName string
}

// Current returns the current platform information.
func Current() Info {
	os := OS(runtime.GOOS)
	info := Info{
		OS:   os,
		Arch: runtime.GOARCH,
	}

	switch os {
	case Darwin:
		info.DisplayName = "macOS"
	case Windows:
		info.DisplayName = "Windows"
	case Linux:
		info.DisplayName = "Linux"
	default:
		info.DisplayName = string(os)
	}

	return info
}

// KeyboardInfo contains platform-specific keyboard information, used to
// translate a canonical key combo into a description of what it does on
// the running platform (e.g. diagnostic CLI output).
type KeyboardInfo struct {
	PrimaryModifier   string
	SecondaryModifier string
	AppLauncher       AppLauncherInfo
	CommonShortcuts   map[string]Shortcut
}

// AppLauncherInfo describes how to open the OS application launcher.
type AppLauncherInfo struct {
	Name       string
	OpenMethod string
	Key        string
	Modifiers  []string
}

// Shortcut represents a keyboard shortcut.
type Shortcut struct {
	Description string
	Key         string
	Modifiers   []string
}

// GetKeyboardInfo returns keyboard information for the current platform.
func GetKeyboardInfo() KeyboardInfo {
	switch OS(runtime.GOOS) {
	case Darwin:
		return KeyboardInfo{
			PrimaryModifier:   "meta",
			SecondaryModifier: "ctrl",
			AppLauncher: AppLauncherInfo{
				Name:       "Spotlight",
				OpenMethod: "Press Cmd+Space to open Spotlight search",
				Key:        "space",
				Modifiers:  []string{"meta"},
			},
			CommonShortcuts: map[string]Shortcut{
				"copy":       {Description: "Copy", Key: "c", Modifiers: []string{"meta"}},
				"paste":      {Description: "Paste", Key: "v", Modifiers: []string{"meta"}},
				"cut":        {Description: "Cut", Key: "x", Modifiers: []string{"meta"}},
				"undo":       {Description: "Undo", Key: "z", Modifiers: []string{"meta"}},
				"redo":       {Description: "Redo", Key: "z", Modifiers: []string{"meta", "shift"}},
				"save":       {Description: "Save", Key: "s", Modifiers: []string{"meta"}},
				"select_all": {Description: "Select All", Key: "a", Modifiers: []string{"meta"}},
				"find":       {Description: "Find", Key: "f", Modifiers: []string{"meta"}},
				"close":      {Description: "Close Window", Key: "w", Modifiers: []string{"meta"}},
			},
		}

	case Windows:
		return KeyboardInfo{
			PrimaryModifier:   "ctrl",
			SecondaryModifier: "alt",
			AppLauncher: AppLauncherInfo{
				Name:       "Start Menu",
				OpenMethod: "Press the Windows key to open Start Menu",
				Key:        "meta",
				Modifiers:  []string{},
			},
			CommonShortcuts: map[string]Shortcut{
				"copy":       {Description: "Copy", Key: "c", Modifiers: []string{"ctrl"}},
				"paste":      {Description: "Paste", Key: "v", Modifiers: []string{"ctrl"}},
				"cut":        {Description: "Cut", Key: "x", Modifiers: []string{"ctrl"}},
				"undo":       {Description: "Undo", Key: "z", Modifiers: []string{"ctrl"}},
				"redo":       {Description: "Redo", Key: "y", Modifiers: []string{"ctrl"}},
				"save":       {Description: "Save", Key: "s", Modifiers: []string{"ctrl"}},
				"select_all": {Description: "Select All", Key: "a", Modifiers: []string{"ctrl"}},
				"find":       {Description: "Find", Key: "f", Modifiers: []string{"ctrl"}},
				"close":      {Description: "Close Window", Key: "w", Modifiers: []string{"ctrl"}},
			},
		}

	default:
		return KeyboardInfo{
			PrimaryModifier:   "ctrl",
			SecondaryModifier: "alt",
			AppLauncher: AppLauncherInfo{
				Name:       "Application Menu",
				OpenMethod: "Press Super/Meta key to open the application menu",
				Key:        "meta",
				Modifiers:  []string{},
			},
			CommonShortcuts: map[string]Shortcut{
				"copy":       {Description: "Copy", Key: "c", Modifiers: []string{"ctrl"}},
				"paste":      {Description: "Paste", Key: "v", Modifiers: []string{"ctrl"}},
				"cut":        {Description: "Cut", Key: "x", Modifiers: []string{"ctrl"}},
				"undo":       {Description: "Undo", Key: "z", Modifiers: []string{"ctrl"}},
				"save":       {Description: "Save", Key: "s", Modifiers: []string{"ctrl"}},
				"select_all": {Description: "Select All", Key: "a", Modifiers: []string{"ctrl"}},
				"find":       {Description: "Find", Key: "f", Modifiers: []string{"ctrl"}},
				"close":      {Description: "Close Window", Key: "w", Modifiers: []string{"ctrl"}},
			},
		}
	}
}

// FormatShortcut formats a shortcut for display.
func FormatShortcut(key string, modifiers []string) string {
	if len(modifiers) == 0 {
		return key
	}
	return strings.Join(modifiers, "+") + "+" + key
}

// DescribeCombo renders a human-readable description of a canonical key
// combo for the running platform, noting when it matches one of the
// platform's common shortcuts (e.g. for the CLI's --describe-keys flag).
func DescribeCombo(mods []string, key string) string {
	info := Current()
	rendered := FormatShortcut(key, mods)

	kb := GetKeyboardInfo()
	for name, sc := range kb.CommonShortcuts {
		if sc.Key == key && sameModifiers(sc.Modifiers, mods) {
			return fmt.Sprintf("%s: %s (%s)", info.DisplayName, rendered, name)
		}
	}
	return fmt.Sprintf("%s: %s", info.DisplayName, rendered)
}

func sameModifiers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, m := range a {
		seen[m] = true
	}
	for _, m := range b {
		if !seen[m] {
			return false
		}
	}
	return true
}
