package fixtures

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"walkthrough/internal/threat"
)

// requiredThreatColumns are the columns that must be present in a threat sheet.
var requiredThreatColumns = []string{"stage", "title", "severity"}

// ReadThreatsCSV parses a threat sheet.
//
// CSV format:
//
//	stage,title,description,example,severity
//	prompt-parsing,Prompt Injection,Malicious instructions hidden in user input,...,high
//
// Column order is free and header names are case-insensitive. The stage,
// title and severity columns are required; description and example may be
// omitted. Stage references are not checked here; that happens when the
// scenario is built.
func ReadThreatsCSV(r io.Reader) ([]threat.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read threat sheet header: %w", err)
	}

	colIndex := buildColumnIndex(header)
	if err := validateColumns(colIndex); err != nil {
		return nil, err
	}

	var records []threat.Record
	lineNum := 1 // header was line 1
	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read threat sheet line %d: %w", lineNum, err)
		}

		stageID := getField(row, colIndex, "stage")
		if stageID == "" {
			return nil, fmt.Errorf("threat sheet line %d: stage is required", lineNum)
		}

		sev, err := threat.ParseSeverity(getField(row, colIndex, "severity"))
		if err != nil {
			return nil, fmt.Errorf("threat sheet line %d: %w", lineNum, err)
		}

		records = append(records, threat.Record{
			StageID:     stageID,
			Title:       getField(row, colIndex, "title"),
			Description: getField(row, colIndex, "description"),
			Example:     getField(row, colIndex, "example"),
			Severity:    sev,
		})
	}

	return records, nil
}

func buildColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.ToLower(col))] = i
	}
	return index
}

func validateColumns(colIndex map[string]int) error {
	for _, col := range requiredThreatColumns {
		if _, ok := colIndex[col]; !ok {
			return fmt.Errorf("threat sheet missing required column: %s", col)
		}
	}
	return nil
}

func getField(record []string, colIndex map[string]int, column string) string {
	idx, ok := colIndex[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
