/*
Package main implements the cliserve completion server and debug CLI.

cliserve provides incremental, prefix-based autocompletion and token
classification for a networking-device command-line grammar, driven by
a static command dictionary bundled into the binary. It is designed to
be embedded inside a host text editor, which owns the editing surface
and talks to cliserve over a msgpack IPC channel.

The command dictionary is normalized once at startup into a prefix
tree: one edge per lowercase token, with descriptive metadata attached
to nodes that end a complete command. Suggestion queries then walk the
tree with the tokens already typed on the line and return the sorted
set of valid next tokens, filtered by the in-progress partial token.

# Usage

Start the IPC server with the embedded dictionary:

	cliserve

Use a custom dictionary file and enable debug logging:

	cliserve -dict /path/to/commands.yaml -d

Run the interactive CLI for testing dictionaries:

	cliserve -c

# Configuration

Runtime configuration lives in a TOML file that is created with
defaults on first run:

	[server]
	max_limit = 64
	max_line = 512

	[dict]
	path = ""

	[cli]
	default_limit = 24

Any failure to read or parse the config degrades to built-in defaults;
a bad config never prevents startup.

# IPC Protocol

The server exchanges binary msgpack messages over stdin/stdout. A
completion request carries the line text and cursor offset:

	{"id": "req1", "op": "complete", "line": "show ip is", "cur": 10}

and the response carries the trigger decision, the sorted candidate
tokens and the partial-token span:

	{"id": "req1", "trig": true, "toks": ["isis"], "s": 8, "e": 10, "c": 1}

Accept, classify, search, detail and status ops are documented in
pkg/server. Queries are answered synchronously in request order.

# Degraded mode

If the dictionary cannot be loaded or normalized, the server starts
anyway and answers every completion query with trig=false and no
tokens. The host's per-keystroke handler never sees a fault; only the
status op reports the degraded state.

# CLI Mode

CLI mode is an interactive readline session against the same engine:
TAB completes the next token, '?' lists candidates with descriptions
the way a device console does, and Enter prints per-token syntax
classification plus the dictionary detail for complete commands. It is
intended for vetting dictionary changes before deploying to a host.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cliserve/cliserve/internal/cli"
	"github.com/cliserve/cliserve/internal/logger"
	"github.com/cliserve/cliserve/pkg/cmdtree"
	"github.com/cliserve/cliserve/pkg/config"
	"github.com/cliserve/cliserve/pkg/dictionary"
	"github.com/cliserve/cliserve/pkg/search"
	"github.com/cliserve/cliserve/pkg/server"
	"github.com/cliserve/cliserve/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "cliserve"
)

// sigHandler exits cleanly on interrupt so the host never sees a
// half-written response as a crash.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary, tree, engine and the chosen surface.
// Construction strictly precedes the first query: the server and the
// CLI are only started once the tree and index exist (or the degraded
// placeholders are in place).
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Enable debug logging")
	cliMode := flag.Bool("c", false, "Run the interactive CLI instead of the IPC server")
	dictPath := flag.String("dict", "", "Dictionary file overriding the embedded asset")
	configPath := flag.String("config", "", "Config file path")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Suggestion limit in CLI mode")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	logger.Setup(*debugMode)

	cfg := loadConfig(*configPath)
	if *dictPath != "" {
		cfg.Dict.Path = *dictPath
	}

	root, index := buildIndex(cfg.Dict.Path)
	engine := suggest.NewEngine(root)

	if *cliMode {
		if root == nil {
			log.Fatal("cannot run the CLI without a dictionary")
		}
		repl := cli.NewRepl(root, engine, index, *limit, cfg.CLI.HistoryFile)
		if err := repl.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC server")
	srv := server.NewServer(engine, index, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// loadConfig resolves and loads the TOML config, degrading to defaults
// on every failure path.
func loadConfig(customPath string) *config.Config {
	path := customPath
	if path == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			log.Warnf("failed to determine config path: %v, using defaults", err)
			return config.DefaultConfig()
		}
		path = defaultPath
	}
	cfg, err := config.InitConfig(path)
	if err != nil {
		log.Warnf("failed to load config at %s: %v, using defaults", path, err)
		return config.DefaultConfig()
	}
	log.Debugf("using config file %s", path)
	return cfg
}

// buildIndex loads and normalizes the dictionary. On failure it
// returns nils so the caller can run in degraded mode instead of
// propagating a fault into the host.
func buildIndex(dictPath string) (*cmdtree.Node, *search.Index) {
	raw, err := dictionary.Load(dictPath)
	if err != nil {
		log.Errorf("dictionary load failed: %v, running degraded", err)
		return nil, nil
	}
	root, err := cmdtree.Build(raw)
	if err != nil {
		log.Errorf("dictionary normalization failed: %v, running degraded", err)
		return nil, nil
	}
	index := search.NewIndex(root)
	log.Debugf("command tree built: %d nodes, %d commands", root.Size(), index.Len())
	return root, index
}

func printVersion() {
	out := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	out.SetStyles(styles)

	out.Print("")
	out.Printf("[ %s ] prefix completion for device CLI grammars", AppName)
	out.Print("", "version", Version)
	out.Print("use -h to see available options")
}
