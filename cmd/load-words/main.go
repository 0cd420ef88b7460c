package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strings"

	"draw-guess/internal/config"
	"draw-guess/internal/game"
	"draw-guess/internal/storage"
)

func main() {
	filePath := flag.String("file", "words.csv", "path to words csv (word,lang)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, config.Load())
	if err != nil {
		log.Fatalf("storage setup failed: %v", err)
	}

	entries, err := readWords(*filePath)
	if err != nil {
		log.Fatalf("failed to read words: %v", err)
	}

	for _, entry := range entries {
		if err := backend.AddWord(ctx, entry.Lang, entry.Word); err != nil {
			log.Fatalf("failed to upsert word %q: %v", entry.Word, err)
		}
	}

	log.Printf("loaded %d words", len(entries))
}

func readWords(path string) ([]game.WordEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var entries []game.WordEntry
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		word := strings.TrimSpace(row[0])
		lang := strings.TrimSpace(row[1])
		if word == "" || lang == "" {
			continue
		}
		entries = append(entries, game.WordEntry{Word: word, Lang: lang})
	}
	return entries, nil
}
