// Package forms renders extracted key-value pairs as CSV, the artifact
// served to users through temporary download URLs.
package forms

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tsawler/blackout/model"
)

// PageFormsName returns the artifact name of the forms CSV for a page,
// under the document's result directory.
func PageFormsName(resultDir string, page int) string {
	return fmt.Sprintf("%spage-%d-forms.csv", resultDir, page)
}

// WriteCSV writes pairs as CSV with a Key,Value header row, preserving
// the pairs' order.
func WriteCSV(w io.Writer, pairs []model.KeyValuePair) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Key", "Value"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, kv := range pairs {
		if err := cw.Write([]string{kv.Key, kv.Value}); err != nil {
			return fmt.Errorf("writing pair %s: %w", kv.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
