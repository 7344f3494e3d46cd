package platform

import (
	"strings"
	"testing"
)

func TestFormatShortcut(t *testing.T) {
	if got := FormatShortcut("c", nil); got != "c" {
		t.Errorf("FormatShortcut(c, nil) = %q, want %q", got, "c")
	}
	if got := FormatShortcut("c", []string{"ctrl"}); got != "ctrl+c" {
		t.Errorf("FormatShortcut(c, [ctrl]) = %q, want %q", got, "ctrl+c")
	}
}

func TestGetKeyboardInfo_HasCommonShortcuts(t *testing.T) {
	kb := GetKeyboardInfo()
	copyShortcut, ok := kb.CommonShortcuts["copy"]
	if !ok {
		t.Fatal("expected a \"copy\" shortcut in CommonShortcuts")
	}
	if copyShortcut.Key != "c" {
		t.Errorf("copy shortcut key = %q, want c", copyShortcut.Key)
	}
}

func TestDescribeCombo_AnnotatesKnownShortcut(t *testing.T) {
	kb := GetKeyboardInfo()
	copyShortcut := kb.CommonShortcuts["copy"]

	desc := DescribeCombo(copyShortcut.Modifiers, copyShortcut.Key)
	if !strings.Contains(desc, "copy") {
		t.Errorf("DescribeCombo(%v, %q) = %q, want it to mention the matching shortcut name", copyShortcut.Modifiers, copyShortcut.Key, desc)
	}
}

func TestDescribeCombo_UnknownComboHasNoAnnotation(t *testing.T) {
	desc := DescribeCombo([]string{"ctrl", "alt"}, "z9")
	if strings.Contains(desc, "(") {
		t.Errorf("DescribeCombo for an unrecognized combo should not annotate a shortcut name: %q", desc)
	}
}
