package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/CalKK/docbrain/internal/config"
	"github.com/CalKK/docbrain/internal/extract"
	"github.com/CalKK/docbrain/internal/nlp"
	"github.com/CalKK/docbrain/internal/parser"
	"github.com/CalKK/docbrain/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var seed int64
	var asJSON bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docbrain/config.yaml if not provided)")
	flag.Int64Var(&seed, "seed", 0, "Seed for deterministic MCQ option ordering (0 = random)")
	flag.BoolVar(&asJSON, "json", false, "Print the extraction result as JSON instead of opening the viewer")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) != 1 {
		fmt.Println("Usage: docbrain [--config=config.yaml] [--seed=n] [--json] document.{pdf,docx,txt}")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if seed == 0 {
		seed = cfg.Engine.Seed
	}

	path := inputs[0]
	pipe := parser.New(parser.Config{Logger: log.Default()})
	format, err := pipe.Detect(path)
	if err != nil {
		log.Fatal("unsupported document", "err", err)
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open document", "err", err)
	}
	doc, err := pipe.Parse(f, format)
	f.Close()
	if err != nil {
		log.Fatal("failed to parse document", "err", err)
	}
	if len(strings.TrimSpace(doc.Text)) < 10 {
		log.Fatal("document did not contain enough text to analyze", "path", path)
	}

	var opts []extract.Option
	if seed != 0 {
		opts = append(opts, extract.WithSeed(seed))
	}
	engine := extract.New(nlp.New(), opts...)
	result, err := engine.Extract(doc.Text)
	if err != nil {
		log.Fatal("extraction failed", "err", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatal("failed to encode result", "err", err)
		}
		return
	}

	m := tui.New(result, path)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal("viewer failed", "err", err)
	}
}
