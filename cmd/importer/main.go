package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/config"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/db"
	"github.com/Wayfinder-625/Prototype-1.1-Backend/internal/models"
)

// Loads a competitions CSV into the catalogue. Malformed rows are logged
// and skipped so one bad record does not abort the whole import.
func main() {
	path := flag.String("file", "download.csv", "path to the competitions CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		slog.Error("db error", "error", err)
		os.Exit(1)
	}

	file, err := os.Open(*path)
	if err != nil {
		slog.Error("open csv", "file", *path, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		slog.Error("read header", "error", err)
		os.Exit(1)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	imported, skipped := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("bad csv row", "error", err)
			skipped++
			continue
		}

		competition := models.Competition{
			Title:              field(record, "title"),
			Description:        field(record, "description"),
			Domain:             field(record, "domain"),
			Tags:               parseArrayField(field(record, "tags")),
			NonMonetaryRewards: parseArrayField(field(record, "nonMonetaryRewards")),
			Benefits:           parseArrayField(field(record, "benefits")),
			Difficulty:         field(record, "difficulty"),
			Website:            field(record, "website"),
			Organizer:          field(record, "organizer"),
			TimeCommitment:     field(record, "timeCommitment"),
			TeamRequirement:    field(record, "teamRequirement"),
			TargetAudience:     field(record, "targetAudience"),
		}

		if prize, err := strconv.ParseFloat(field(record, "prizeAmount"), 64); err == nil {
			competition.PrizeAmount = prize
		}
		if deadline := field(record, "deadline"); deadline != "" {
			if t, err := time.Parse("2006-01-02", deadline); err == nil {
				competition.Deadline = &t
			} else if t, err := time.Parse(time.RFC3339, deadline); err == nil {
				competition.Deadline = &t
			}
		}

		if competition.Title == "" {
			skipped++
			continue
		}

		if err := database.Create(&competition).Error; err != nil {
			slog.Warn("insert failed", "title", competition.Title, "error", err)
			skipped++
			continue
		}
		imported++
	}

	slog.Info("import finished", "imported", imported, "skipped", skipped)
}

// parseArrayField handles values exported as python-style lists,
// e.g. ['AI', 'Web'], as well as plain comma-separated strings.
func parseArrayField(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || value == "[]" {
		return []string{}
	}
	value = strings.Trim(value, "[]")
	parts := strings.Split(value, ",")
	out := []string{}
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
