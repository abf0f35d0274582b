package main

// Distribute a local contact file without starting the server:
//   go run ./cmd/distribute -file ./contacts.csv -agents "Ana,Ben"

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	"listdist/internal/distribution"
	"listdist/internal/lists"
	"listdist/internal/shared/config"
)

func main() {
	cfg := config.Load()

	filePath := flag.String("file", "", "path to the contact file")
	agents := flag.String("agents", "", "comma separated roster (defaults to AGENT_ROSTER)")
	mimeType := flag.String("mime", "", "declared MIME type (defaults to one guessed from the extension)")
	parserMode := flag.String("parser", cfg.ParserMode, "parser mode: naive or quoted")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: distribute -file <path> [-agents a,b] [-mime type] [-parser naive|quoted]")
		os.Exit(2)
	}

	if err := run(os.Stdout, cfg, *filePath, *agents, *mimeType, *parserMode); err != nil {
		fmt.Fprintf(os.Stderr, "distribute failed: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cfg config.Config, filePath, agents, mimeType, parserMode string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(filePath))
	}

	roster, err := lists.ResolveRoster([]string{agents}, cfg.AgentRoster)
	if err != nil {
		return err
	}

	session := distribution.NewSession(
		distribution.NewValidator(cfg.AllowedMimeTypes...),
		distribution.NewParser(parserMode),
	)
	result, err := session.Run(distribution.File{
		Name:             filepath.Base(filePath),
		DeclaredMimeType: mimeType,
		Content:          string(content),
	}, roster)
	if err != nil {
		return err
	}

	log.Printf("%s", lists.Summary(result))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
