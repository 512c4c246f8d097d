package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/inventaris/internal/config"
	"github.com/jask/inventaris/internal/inventory"
	"github.com/jask/inventaris/internal/logging"
	"github.com/jask/inventaris/internal/report"
	"github.com/jask/inventaris/internal/storage"
	"github.com/jask/inventaris/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default $INVENTARIS_CONFIG or ~/.config/inventaris/config.toml)")
	exportPath := flag.String("export", "", "write the checklist to this .xlsx file and exit")
	room := flag.String("room", "", "room to select on startup, e.g. \"Lab PPLG\" or \"pplg\"")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer store.Close()
	logger.Info("storage ready", zap.String("driver", cfg.Storage.Driver), zap.String("path", cfg.Storage.Path))

	ctrl, err := inventory.Open(ctx, store, inventory.WithLogger(logger), inventory.WithKey(cfg.Storage.Key))
	if err != nil {
		log.Fatalf("load checklist: %v", err)
	}

	if *exportPath != "" {
		if err := exportChecklist(*exportPath, ctrl.Snapshot()); err != nil {
			log.Fatalf("export: %v", err)
		}
		logger.Info("checklist exported", zap.String("path", *exportPath))
		fmt.Printf("checklist written to %s\n", *exportPath)
		return
	}

	selectStartRoom(ctrl, logger, *room, cfg.UI.DefaultRoom)

	p := tea.NewProgram(tui.New(ctx, ctrl, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// selectStartRoom applies the -room flag, or the configured default when the
// flag is empty. Input that matches no room leaves the picker empty.
func selectStartRoom(ctrl *inventory.Controller, logger *zap.Logger, flagRoom, cfgRoom string) {
	input := flagRoom
	if input == "" {
		input = cfgRoom
	}
	if input == "" {
		return
	}
	r, ok := inventory.ClosestRoom(input)
	if !ok {
		logger.Warn("unknown start room", zap.String("room", input))
		return
	}
	ctrl.SelectRoom(string(r))
}

func exportChecklist(path string, rooms inventory.Rooms) error {
	var buf bytes.Buffer
	if err := report.WriteChecklist(&buf, rooms); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
