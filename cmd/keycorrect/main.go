// Copyright 2025 The keycorrect Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the typing-correction server and CLI application.

keycorrect scores candidate dictionary words against a user's noisy key
sequence, handling proximity substitutions, missing characters,
transpositions, extra characters, and missing spaces. It can operate as a
MessagePack IPC server for integration with soft keyboards and text
editors, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	keycorrect

Use a custom data directory and enable debug mode:

	keycorrect -data /path/to/dicts -d

Run in CLI mode for interactive testing:

	keycorrect -c -limit 10

The data directory may contain chunked binary files named dict_0001.bin,
dict_0002.bin, ... and plain "word frequency" text lists. Both are loaded
into the correction trie at startup.

# Configuration

Runtime configuration is managed through a TOML file with server,
dictionary, and tuning sections:

	[server]
	max_limit = 64
	enable_filter = true

	[tuning]
	typed_letter_multiplier = 2
	full_word_multiplier = 2
	proximity_char_demotion_rate = 50

The tuning section carries the ranking policy's rates; the defaults are
the reference values and the config file is created automatically when
missing.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Correction
requests are processed synchronously with microsecond timing information
included in responses.

Send a correction request:

	{"id": "req1", "w": "teh", "l": 8}

Receive ranked candidates:

	{"id": "req1", "s": [{"w": "the", "f": 1840, "r": 1}], "c": 1, "t": 210}

Management requests use the action field:

	{"id": "h1", "action": "health"}
	{"id": "s1", "action": "stats"}
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

	"github.com/inputkit/keycorrect/internal/cli"
	"github.com/inputkit/keycorrect/internal/utils"
	"github.com/inputkit/keycorrect/pkg/config"
	"github.com/inputkit/keycorrect/pkg/dictionary"
	"github.com/inputkit/keycorrect/pkg/proximity"
	"github.com/inputkit/keycorrect/pkg/server"
	"github.com/inputkit/keycorrect/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "keycorrect"
	gh      = "https://github.com/inputkit/keycorrect"
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

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory containing dictionary files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 8, "Number of suggestions to return")
	minWord := flag.Int("wmin", defaultConfig.Server.MinWordLen, "Minimum typed word length")
	maxWord := flag.Int("wmax", defaultConfig.Server.MaxWordLen, "Maximum typed word length")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only) - runs correction on any input")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")
	configPathFlag := flag.String("config", "", "Path to a config.toml overriding the default location")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ keycorrect ] on-device typing correction")
		logger.Print("", "version", Version)
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	resolvedDataDir, err := pathResolver.GetDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	configPath := *configPathFlag
	if configPath == "" {
		configPath, err = pathResolver.GetConfigPath("config.toml")
		if err != nil {
			log.Fatalf("Failed to determine config path: (%v)", err)
		}
	}
	log.Debugf("Using config file: (%s)", configPath)

	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loader := dictionary.NewLoader(resolvedDataDir, *wordLimit)
	if err := loader.Load(); err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debug("Dictionary load done")

	corrector := suggest.NewCorrector(loader, proximity.QWERTY(), appConfig.Tuning.Params())

	// CLI is mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minWord", *minWord,
			"maxWord", *maxWord,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(corrector, *minWord, *maxWord, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(corrector, appConfig)

	showStartupInfo(resolvedDataDir)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string) {
	pid := os.Getpid()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")
}
