// Copyright 2025 The wordmatch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordmatch server and CLI [DBG] application.

wordmatch counts whole-word occurrences of many weighted words in text with
an Aho-Corasick automaton, and bundles the small helpers that usually travel
with it: single word search, geohash cells and distances, a string LRU cache
and CRC-32 / one-at-a-time / murmur3 checksums.

# Usage

Start the server with default settings:

	wordmatch

Use a custom words directory and enable debug mode:

	wordmatch -words /path/to/lists -d

Run in CLI mode for interactive testing:

	wordmatch -c -mode MAX

The words directory holds word lists, one per file: "animals.txt" with one
word per line ("cat" or "cat/5"), or "animals.json" with a JSON array like
["cat", 5, "dog"]. Either may be compressed as .sz, .zst or .lz4.

# Configuration

Runtime configuration is read from a TOML file that is created with defaults
when missing:

	[server]
	max_text_len = 1048576
	max_words = 10000
	max_word_bytes = 65536
	default_mode = "SUM"

	[counter]
	extra_delimiters = ""
	extra_word_chars = ""
	words_dir = "words"

	[geo]
	precision = 12
	grid_steps = 1
	max_grid_steps = 10

	[lru]
	max_items = 10000

# IPC Protocol

The server communicates via MessagePack over stdin/stdout; see package
server for the actions. Count a few words:

	{"id": "req1", "action": "count_all", "words": ["cat/2", "dog"], "text": "a cat"}

and receive the per-word counts and the aggregated value:

	{"id": "req1", "c": 1, "v": 2, "m": "SUM", "matches": ["cat/2"], "counters": [1], "values": [2], "t": 12}

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Path to a config file
	-words string
	    Directory containing word lists
	-list string
	    Word list to load in CLI mode
	-mode string
	    Aggregation mode for CLI mode
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordmatch/internal/cli"
	"github.com/bastiangx/wordmatch/internal/logger"
	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/bastiangx/wordmatch/pkg/config"
	"github.com/bastiangx/wordmatch/pkg/counter"
	"github.com/bastiangx/wordmatch/pkg/dictionary"
	"github.com/bastiangx/wordmatch/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	gh      = "https://github.com/bastiangx/wordmatch"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow between config, the server and the CLI.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to a custom config file")
	wordsDir := flag.String("words", "", "Directory containing word lists (default from config)")
	listName := flag.String("list", "", "Word list to load in CLI mode")
	mode := flag.String("mode", "", "Aggregation mode in CLI mode: "+fmt.Sprint(counter.ModeNames()))

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode, "")

	appConfig, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	dir := *wordsDir
	if dir == "" {
		dir = appConfig.Counter.WordsDir
	}
	if pathResolver, err := utils.NewPathResolver(); err == nil {
		if *debugMode {
			for k, v := range pathResolver.GetRuntimeInfo() {
				log.Debug("runtime", k, v)
			}
		}
		dir = pathResolver.GetWordsDir(dir)
	} else {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}
	log.Debugf("Using words dir at: %s", dir)
	loader := dictionary.NewLoader(dir)

	if *cliMode {
		runCLI(appConfig, loader, *listName, *mode)
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(appConfig, loader)
	showStartupInfo(dir)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func runCLI(appConfig *config.Config, loader *dictionary.Loader, listName, mode string) {
	c := counter.New("cli")
	if d := appConfig.Counter.ExtraDelimiters; d != "" {
		c.SetAlphabet(d, true)
	}
	if w := appConfig.Counter.ExtraWordChars; w != "" {
		c.SetAlphabet(w, false)
	}
	if mode == "" {
		mode = appConfig.CLI.DefaultMode
	}
	if !c.SetMode(mode) {
		log.Warnf("Unknown mode %q, using %s", mode, c.Mode())
	}

	if listName != "" {
		wl, err := loader.Load(listName)
		if err != nil {
			log.Fatalf("Failed to load word list: %v", err)
		}
		wl.Fill(c)
		log.Debugf("Loaded %d words from %s", len(wl.Words), wl.Path)
	}

	inputHandler := cli.NewInputHandler(c, loader, appConfig.CLI.FindAll)
	if err := inputHandler.Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ wordmatch ] Counts many words in one pass")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info about the init process to stderr.
func showStartupInfo(wordsDir string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" wordmatch ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("words dir: ( %s )", wordsDir)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
