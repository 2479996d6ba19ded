package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/filematch/filematch/pkg/models"
)

// WriteReport writes the comparison report to a file
// Format can be "human" or "json"
func WriteReport(report *models.CompareReport, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		return writeReportJSON(report, file)
	default: // "human"
		return writeReportHuman(report, file)
	}
}

// writeReportHuman writes the report in human-readable format
func writeReportHuman(report *models.CompareReport, w io.Writer) error {
	fmt.Fprintf(w, "Comparison Report\n")
	fmt.Fprintf(w, "=================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Operation: %s\n", report.OperationID)
	fmt.Fprintf(w, "First tree: %s\n", report.Dir1Path)
	fmt.Fprintf(w, "Second tree: %s\n", report.Dir2Path)
	fmt.Fprintf(w, "Algorithm: %s\n", report.Algorithm)

	writeResultSections(w, report)
	writeSummary(w, report)
	return nil
}

// writeReportJSON writes the report in JSON format
func writeReportJSON(report *models.CompareReport, w io.Writer) error {
	output := struct {
		Generated string `json:"generated"`
		JSONReportData
	}{
		Generated:      time.Now().Format(time.RFC3339),
		JSONReportData: buildJSONReport(report),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
