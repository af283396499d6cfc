// Package report renders reconciliation results as the CSV hash map report.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"rascan/internal/match"
)

// Filename is the fixed report name inside the output directory. Each run
// replaces the previous report.
const Filename = "RA_HashMapReport.csv"

var header = []string{"MatchFound", "System", "RomName", "Hash", "Path", "RATitle", "RAID", "CheevoCount"}

// WriteCSV writes the report rows in result order. Output is byte stable for
// identical input, so unchanged libraries diff clean between runs.
func WriteCSV(w io.Writer, results []match.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, r := range results {
		row := []string{
			strconv.FormatBool(r.MatchFound),
			r.System,
			r.RomName,
			r.Hash,
			r.Path,
			"",
			"",
			"",
		}
		if r.MatchFound {
			row[5] = r.Title
			row[6] = strconv.Itoa(r.GameID)
			row[7] = strconv.Itoa(r.AchievementCount)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row for %q: %w", r.Path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// WriteFile writes the report into dir under the fixed filename. The report
// lands under a temp name first and is renamed into place, so readers never
// see a half-written file.
func WriteFile(dir string, results []match.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	finalPath := filepath.Join(dir, Filename)
	tempPath := finalPath + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("create report temp file: %w", err)
	}

	if err := WriteCSV(file, results); err != nil {
		file.Close()
		os.Remove(tempPath)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("close report temp file: %w", err)
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("replace report file: %w", err)
	}
	return finalPath, nil
}
