// package formatter provides functions to export station and validation data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/tunebridge/internal/models"
	"github.com/desertthunder/tunebridge/internal/shared"
	"github.com/desertthunder/tunebridge/internal/streamcheck"
	"github.com/desertthunder/tunebridge/internal/tasks"
)

// StationsToCSV converts a station list to CSV format with columns: UUID, Name, StreamURL, Genre, Country, Codec, Bitrate, Votes
func StationsToCSV(stations []models.RadioStation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"UUID", "Name", "StreamURL", "Genre", "Country", "Codec", "Bitrate", "Votes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, station := range stations {
		record := []string{
			station.UUID,
			station.Name,
			station.StreamURL,
			station.Genre,
			station.Country,
			station.Codec,
			strconv.Itoa(station.Bitrate),
			strconv.Itoa(station.Votes),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ValidationToText converts a validation result to a plain text report
func ValidationToText(result *streamcheck.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil validation result")
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Stream: %s\n", result.URL))
	if result.FinalURL != "" {
		buf.WriteString(fmt.Sprintf("Final URL: %s\n", result.FinalURL))
	}
	buf.WriteString(fmt.Sprintf("Status: %s\n", result.Status))
	buf.WriteString(fmt.Sprintf("Accessible: %s\n", shared.BoolLabel(result.HTTPAccessible)))
	if result.ContentType != "" {
		buf.WriteString(fmt.Sprintf("Content-Type: %s\n", result.ContentType))
	}
	if result.AudioFormat != "" {
		buf.WriteString(fmt.Sprintf("Format: %s\n", result.AudioFormat))
	}
	buf.WriteString(fmt.Sprintf("Streaming headers: %s\n", shared.BoolLabel(result.HasStreamingHeaders)))
	buf.WriteString(fmt.Sprintf("Audio data: %s\n", shared.BoolLabel(result.AudioDataDetected)))
	buf.WriteString(fmt.Sprintf("Duration: %dms\n", result.TestDurationMs))

	if len(result.Errors) > 0 {
		buf.WriteString("\nErrors:\n")
		for _, e := range result.Errors {
			buf.WriteString(fmt.Sprintf("  - %s\n", e))
		}
	}
	if len(result.Warnings) > 0 {
		buf.WriteString("\nWarnings:\n")
		for _, warning := range result.Warnings {
			buf.WriteString(fmt.Sprintf("  - %s\n", warning))
		}
	}
	if len(result.Recommendations) > 0 {
		buf.WriteString("\nRecommendations:\n")
		for _, rec := range result.Recommendations {
			buf.WriteString(fmt.Sprintf("  - %s\n", rec))
		}
	}

	return buf.Bytes(), nil
}

// DiscoveryToMarkdown converts a discovery run to a Markdown report
func DiscoveryToMarkdown(result *tasks.DiscoverResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil discovery result")
	}

	var buf bytes.Buffer

	title := discoveryLabel(result)
	buf.WriteString(fmt.Sprintf("# Station Discovery: %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Candidates**: %d\n", result.Total))
	buf.WriteString(fmt.Sprintf("**Valid**: %d\n", result.ValidCount))
	buf.WriteString(fmt.Sprintf("**Invalid**: %d\n", result.InvalidCount))
	buf.WriteString(fmt.Sprintf("**Errors**: %d\n\n", result.ErrorCount))

	buf.WriteString("## Stations\n\n")
	buf.WriteString("| # | Station | Stream | Status | Format | Duration |\n")
	buf.WriteString("|---|---------|--------|--------|--------|----------|\n")

	for i, validation := range result.Stations {
		status := "error"
		format := ""
		duration := ""
		if validation.Result != nil {
			status = string(validation.Result.Status)
			format = validation.Result.AudioFormat
			duration = fmt.Sprintf("%dms", validation.Result.TestDurationMs)
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			escapePipes(validation.Station.Name),
			validation.Station.StreamURL,
			status,
			format,
			duration,
		))
	}

	return buf.Bytes(), nil
}

// DiscoveryToText converts a discovery run to plain text format
func DiscoveryToText(result *tasks.DiscoverResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil discovery result")
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Discovery: %s\n", discoveryLabel(result)))
	buf.WriteString(fmt.Sprintf("Candidates: %d (valid %d, invalid %d, errors %d)\n\n",
		result.Total, result.ValidCount, result.InvalidCount, result.ErrorCount))

	for i, validation := range result.Stations {
		status := "error"
		if validation.Result != nil {
			status = string(validation.Result.Status)
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s\n", i+1, status, validation.Station.Name, validation.Station.StreamURL))
	}

	return buf.Bytes(), nil
}

// ToManifestJSON generates a JSON representation of a discovery run's summary (without per-station detail)
func ToManifestJSON(result *tasks.DiscoverResult) ([]byte, error) {
	manifest := map[string]any{
		"query":        discoveryLabel(result),
		"total":        result.Total,
		"validCount":   result.ValidCount,
		"invalidCount": result.InvalidCount,
		"errorCount":   result.ErrorCount,
	}
	return shared.MarshalJSON(manifest, true)
}

// DiscoveryExportResult contains the paths of files created by WriteDiscoveryExport
type DiscoveryExportResult struct {
	StationsFile string
	ManifestFile string
}

// WriteDiscoveryExport exports a discovery run to CSV with an accompanying manifest JSON file.
//
// Defaults to "discovery" as the base filename & creates {base}_stations.csv and {base}_manifest.json
func WriteDiscoveryExport(result *tasks.DiscoverResult, baseFilepath string) (*DiscoveryExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "discovery"
	}

	stations := make([]models.RadioStation, 0, len(result.Stations))
	for _, validation := range result.Stations {
		stations = append(stations, validation.Station)
	}

	csvData, err := StationsToCSV(stations)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	stationsFile := baseFilepath + "_stations.csv"
	if err := os.WriteFile(stationsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	manifestJSON, err := ToManifestJSON(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate manifest JSON: %w", err)
	}

	manifestFile := baseFilepath + "_manifest.json"
	if err := os.WriteFile(manifestFile, manifestJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest file: %w", err)
	}

	return &DiscoveryExportResult{
		StationsFile: stationsFile,
		ManifestFile: manifestFile,
	}, nil
}

// WriteValidationReport exports a validation result to plain text format.
//
// Defaults to "validation_report.txt" as the filename.
func WriteValidationReport(result *streamcheck.Result, filepath string) (string, error) {
	if filepath == "" {
		filepath = "validation_report.txt"
	}

	textData, err := ValidationToText(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

func discoveryLabel(result *tasks.DiscoverResult) string {
	parts := []string{}
	if result.Query.Name != "" {
		parts = append(parts, result.Query.Name)
	}
	if result.Query.Tag != "" {
		parts = append(parts, "tag:"+result.Query.Tag)
	}
	if result.Query.Country != "" {
		parts = append(parts, "country:"+result.Query.Country)
	}
	if len(parts) == 0 {
		return "all stations"
	}
	return strings.Join(parts, " ")
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
