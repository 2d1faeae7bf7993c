// Package main provides a standalone CLI that validates a single MTB
// file without a database or Redis - catalogs are loaded once into
// memory from the paths in the lite configuration.
package main

import (
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/config"
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/mtbvalidator"
)

func main() {
	cfg := config.LoadLiteConfig()

	static, err := catalog.LoadStaticCatalog(cfg.ICD10GMPath, cfg.ICDO3Path, cfg.ATCPath)
	if err != nil {
		log.Fatalf("Failed to load clinical catalogs: %v", err)
	}

	raw, err := readInput(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to read MTB file: %v", err)
	}

	var file domain.MTBFile
	if err := json.Unmarshal(raw, &file); err != nil {
		log.Fatalf("Failed to parse MTB file JSON: %v", err)
	}

	validated, report := mtbvalidator.Check(file, static)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if report == nil {
		if err := enc.Encode(validated); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		os.Exit(0)
	}

	if err := enc.Encode(report); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}

	if report.HasFatal() {
		os.Exit(1)
	}
	os.Exit(0)
}

// readInput reads the MTB file JSON from the path given as the first
// argument, or from stdin if no argument was given.
func readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
