package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/report"
	"github.com/tomz197/collide/internal/scene"
)

func main() {
	asJSON := flag.Bool("json", false, "print the report as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: collide [-json] [scene.yaml]\n\nScene path defaults to $SCENE_PATH or %s.\n", config.DefaultScenePath)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "collide")

	path := config.GetEnv("SCENE_PATH", config.DefaultScenePath)
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	s, err := scene.LoadFile(path)
	if err != nil {
		logger.Fatal("failed to load scene", "err", err)
	}
	world, err := s.Build()
	if err != nil {
		logger.Fatal("failed to build scene", "path", path, "err", err)
	}
	logger.Debug("scene loaded", "path", path, "bodies", world.Len())

	ctx, cancel := context.WithTimeout(context.Background(), config.QueryTimeout)
	defer cancel()
	contacts, err := world.Contacts(ctx)
	if err != nil {
		logger.Fatal("contact query failed", "err", err)
	}
	rep, err := report.Build(world, contacts)
	if err != nil {
		logger.Fatal("failed to build report", "err", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			logger.Fatal("failed to write report", "err", err)
		}
		return
	}

	width := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}
	fmt.Print(report.Render(lipgloss.NewRenderer(os.Stdout), width, rep))
}
