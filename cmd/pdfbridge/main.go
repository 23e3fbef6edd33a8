// Command pdfbridge opens a document through the configured bridge and
// inspects or edits it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/pdfbridge/internal/bridge"
	"github.com/JaimeStill/pdfbridge/internal/config"
	"github.com/JaimeStill/pdfbridge/internal/infrastructure"
	"github.com/JaimeStill/pdfbridge/internal/viewer"
)

func main() {
	var (
		doc       = flag.String("doc", "", "Document path")
		password  = flag.String("password", "", "Document password")
		cmd       = flag.String("cmd", "info", "Command to run")
		query     = flag.String("query", "", "Search query (search)")
		page      = flag.Int("page", 0, "Zero-based page index (annotations, widgets, rotate)")
		rotation  = flag.Int("rotation", 90, "Rotation in degrees (rotate)")
		tag       = flag.Int("tag", 1, "Native view tag")
		configDir = flag.String("config", ".", "Directory containing config.toml")
		list      = flag.Bool("list", false, "List available commands")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available commands:")
		for _, c := range listCommands() {
			fmt.Printf("  - %s: %s\n", c.Name(), c.Description())
		}
		return
	}

	command, ok := getCommand(*cmd)
	if !ok {
		fmt.Println("usage: pdfbridge -doc <path> [-cmd info|annotations|widgets|search|rotate|config] [-list]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if command.NeedsDocument() && *doc == "" {
		log.Fatalf("-doc required for %s", command.Name())
	}

	result, err := run(command, runConfig{
		configDir: *configDir,
		doc:       *doc,
		password:  *password,
		tag:       bridge.Tag(*tag),
		opts: options{
			query:    *query,
			page:     *page,
			rotation: *rotation,
		},
	})
	if err != nil {
		log.Fatalf("%s failed: %v", command.Name(), err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}

type runConfig struct {
	configDir string
	doc       string
	password  string
	tag       bridge.Tag
	opts      options
}

func run(command Command, rc runConfig) (any, error) {
	cfg, err := config.Load(rc.configDir)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config finalize failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := infrastructure.New(ctx, cfg, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("infrastructure init failed: %w", err)
	}
	defer func() {
		if err := infra.Close(context.Background()); err != nil {
			infra.Logger.Warn("infrastructure close failed", "error", err)
		}
	}()

	view := viewer.New(infra.View(bridge.Static(rc.tag)), infra.Logger)
	defer view.Close()

	if command.NeedsDocument() {
		if err := view.Document().Open(ctx, rc.doc, rc.password); err != nil {
			return nil, fmt.Errorf("open %s: %w", rc.doc, err)
		}
	}

	return command.Run(ctx, view, rc.opts)
}
