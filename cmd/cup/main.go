// Command cup captures a Computer Use Protocol snapshot of the desktop
// and optionally emits it as pruned/raw JSON or compact text.
//
// Usage:
//
//	cup --foreground --compact
//	cup --app Safari --depth 12 --json-out tree.json
//	cup --platform windows --full-json-out raw.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anxuanzi/cup"
	"github.com/anxuanzi/cup/pkg/logging"
	"github.com/anxuanzi/cup/pkg/node"
	"github.com/anxuanzi/cup/pkg/platform"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

type flags struct {
	depth        int
	foreground   bool
	app          string
	platformName string
	jsonOut      string
	fullJSONOut  string
	compactOut   string
	compact      bool
	cdpHost      string
	cdpPort      string
	verbose      bool
	describeKeys string
}

func main() {
	f := &flags{}

	root := &cobra.Command{
		Use:     "cup",
		Short:   "Capture a Computer Use Protocol snapshot of the desktop",
		Version: fmt.Sprintf("%s (built %s)", version, buildTime),
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(f)
		},
	}

	root.Flags().IntVar(&f.depth, "depth", 0, "max capture depth, 0 = unlimited")
	root.Flags().BoolVar(&f.foreground, "foreground", false, "capture only the foreground window")
	root.Flags().StringVar(&f.app, "app", "", "capture only windows whose title contains this substring")
	root.Flags().StringVar(&f.platformName, "platform", "", "adapter to use: windows, darwin, linux (default: detect)")
	root.Flags().StringVar(&f.jsonOut, "json-out", "", "write the pruned envelope as JSON to this path")
	root.Flags().StringVar(&f.fullJSONOut, "full-json-out", "", "write the unpruned envelope as JSON to this path")
	root.Flags().StringVar(&f.compactOut, "compact-out", "", "write compact text to this path")
	root.Flags().BoolVar(&f.compact, "compact", false, "print compact text to stdout")
	root.Flags().StringVar(&f.cdpHost, "cdp-host", "", "Chrome DevTools Protocol host (web adapter)")
	root.Flags().StringVar(&f.cdpPort, "cdp-port", "", "Chrome DevTools Protocol port (web adapter)")
	root.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&f.describeKeys, "describe-keys", "", `describe a key combo (e.g. "ctrl+shift+p") for the running platform and exit`)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(f *flags) error {
	if f.describeKeys != "" {
		combo := node.ParseCombo(f.describeKeys)
		fmt.Println(platform.DescribeCombo(combo.Modifiers, strings.Join(combo.Keys, "+")))
		return nil
	}

	logLevel := logging.LevelInfo
	if f.verbose {
		logLevel = logging.LevelDebug
	}

	opts := []cup.SessionOption{cup.WithLogLevel(logLevel)}
	if f.platformName != "" {
		opts = append(opts, cup.WithPlatform(normalizePlatform(f.platformName)))
	}
	if f.cdpHost != "" || f.cdpPort != "" {
		opts = append(opts, cup.WithCDP(f.cdpHost, f.cdpPort))
	}
	if f.app != "" {
		opts = append(opts, cup.WithAppFilter(f.app))
	}

	sess, err := cup.NewSession(opts...)
	if err != nil {
		if cup.TagOf(err) == cup.TagAdapterUnavailable {
			os.Exit(1)
		}
		return err
	}
	defer sess.Close()

	scope := cup.ScopeFull
	if f.foreground {
		scope = cup.ScopeForeground
	}

	captureOpts := cup.CaptureOptions{Scope: scope, App: f.app, MaxDepth: f.depth, Detail: cup.DetailStandard}

	env, err := sess.Capture(captureOpts)
	if err != nil {
		if cup.TagOf(err) == cup.TagWindowNotFound {
			os.Exit(2)
		}
		return err
	}

	if f.fullJSONOut != "" {
		fullOpts := captureOpts
		fullOpts.Detail = cup.DetailFull
		fullEnv, err := sess.Capture(fullOpts)
		if err != nil {
			return err
		}
		if err := writeJSON(f.fullJSONOut, fullEnv); err != nil {
			return err
		}
	}

	if f.jsonOut != "" {
		if err := writeJSON(f.jsonOut, env); err != nil {
			return err
		}
	}

	if f.compactOut != "" || f.compact {
		text := sess.SerializeCompact(env)
		if f.compactOut != "" {
			if err := os.WriteFile(f.compactOut, []byte(text), 0o644); err != nil {
				return err
			}
		}
		if f.compact {
			fmt.Print(text)
		}
	}

	if f.jsonOut == "" && f.fullJSONOut == "" && f.compactOut == "" && !f.compact {
		fmt.Print(sess.SerializeCompact(env))
	}

	return nil
}

func writeJSON(path string, env *cup.Envelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func normalizePlatform(name string) string {
	switch strings.ToLower(name) {
	case "macos", "mac":
		return "darwin"
	default:
		return strings.ToLower(name)
	}
}
