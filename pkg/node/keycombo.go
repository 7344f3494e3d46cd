package node

import "strings"

// modifierSet is the canonical modifier vocabulary; any other token in a
// combo string is treated as a key rather than a modifier.
var modifierSet = map[string]bool{"ctrl": true, "alt": true, "shift": true, "meta": true}

// keyAliases canonicalizes common alternate spellings onto one key name.
var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
}

// modifierAliases canonicalizes modifier tokens; win and cmd both collapse
// to the platform-neutral "meta".
var modifierAliases = map[string]string{
	"win": "meta",
	"cmd": "meta",
}

// Combo is a parsed key combination: an ordered, deduplicated list of
// modifiers and an ordered, deduplicated list of non-modifier keys.
type Combo struct {
	Modifiers []string
	Keys      []string
}

// ParseCombo parses a "+"-separated key combination string. Parsing is
// case-insensitive and whitespace-tolerant; empty parts (from leading,
// trailing, or doubled "+") are ignored. Aliases are canonicalized before
// classification: return→enter, esc→escape, win|cmd→meta.
func ParseCombo(s string) Combo {
	var c Combo
	seenMod := map[string]bool{}
	seenKey := map[string]bool{}

	for _, part := range strings.Split(s, "+") {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok == "" {
			continue
		}
		if alias, ok := modifierAliases[tok]; ok {
			tok = alias
		} else if alias, ok := keyAliases[tok]; ok {
			tok = alias
		}

		if modifierSet[tok] {
			if !seenMod[tok] {
				seenMod[tok] = true
				c.Modifiers = append(c.Modifiers, tok)
			}
			continue
		}
		if !seenKey[tok] {
			seenKey[tok] = true
			c.Keys = append(c.Keys, tok)
		}
	}
	return c
}

// RenderCombo renders a canonical (modifiers, keys) pair back into a
// "+"-joined string, for round-trip testing and for display.
func RenderCombo(c Combo) string {
	parts := append(append([]string{}, c.Modifiers...), c.Keys...)
	return strings.Join(parts, "+")
}
