// Package writer serializes a cleaned dataset to CSV.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphaelgruber/casepairs/internal/models"
)

// DefaultFileName is the dataset file written inside the dataset root.
const DefaultFileName = "judgement_summary.csv"

// header lists the columns in output order.
var header = []string{models.ColumnJudgement, models.ColumnSummary}

// WriteFile creates or truncates path and writes the dataset to it.
// There is no atomic replace: a failed write can leave a partial file.
func WriteFile(path string, dataset models.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Write(f, dataset); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Write emits the header and one row per pair. Every field is quoted, with
// embedded quotes doubled, so commas and newlines survive a CSV reader.
func Write(w io.Writer, dataset models.Dataset) error {
	bw := bufio.NewWriter(w)

	if err := writeRecord(bw, header...); err != nil {
		return err
	}
	for _, p := range dataset {
		if err := writeRecord(bw, p.Judgement, p.Summary); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeRecord(w *bufio.Writer, fields ...string) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
		if _, err := w.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
			return err
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
