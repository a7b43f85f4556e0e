// Command seed imports survey responses from a CSV export into MongoDB.
//
// Usage: seed [path/to/responses.csv]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campuspulse/internal/config"
	"campuspulse/internal/model"
	"campuspulse/internal/repository"
)

// headerMap matches CSV header fragments to response fields, tolerant of
// the long question texts Google Forms exports.
var headerMap = map[string]string{
	"timestamp":           "timestamp",
	"full name":           "name",
	"roll number":         "roll_no",
	"course of study":     "course",
	"current year":        "year",
	"parent notification": "q1",
	"monitoring policy":   "q2",
	"reasoning":           "comments",
}

func main() {
	path := "responses.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	repo := repository.NewResponseRepo(db)

	rows, err := readResponses(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	if len(rows) == 0 {
		log.Fatalf("No responses found in %s", path)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		log.Fatalf("Failed to clear responses: %v", err)
	}
	if err := repo.InsertMany(ctx, rows); err != nil {
		log.Fatalf("Failed to insert responses: %v", err)
	}

	fmt.Printf("Imported %d responses from %s\n", len(rows), path)
}

func readResponses(path string) ([]model.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := mapColumns(header)

	var rows []model.Response
	id := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		get := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		row := model.Response{
			ID:                   id,
			Timestamp:            get("timestamp"),
			Name:                 get("name"),
			RollNo:               get("roll_no"),
			Course:               get("course"),
			Year:                 get("year"),
			Q1ParentNotification: normalizeVote(get("q1")),
			Q2Monitoring:         normalizeVote(get("q2")),
			Comments:             get("comments"),
		}
		if explicit := get("id"); explicit != "" {
			if n, err := strconv.Atoi(explicit); err == nil {
				row.ID = n
			}
		}
		rows = append(rows, row)
		id++
	}
	return rows, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, col := range header {
		lower := strings.ToLower(strings.TrimSpace(col))
		if lower == "id" {
			columns["id"] = i
			continue
		}
		for fragment, field := range headerMap {
			if strings.Contains(lower, fragment) {
				if _, taken := columns[field]; !taken {
					columns[field] = i
				}
			}
		}
	}
	return columns
}

func normalizeVote(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return model.VoteYes
	case "no":
		return model.VoteNo
	}
	return ""
}
