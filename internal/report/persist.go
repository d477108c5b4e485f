package report

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/streamweld/streamweld/internal/errors"
)

// Artifact file names written into the output folder.
const (
	LogFileName  = "output.log"
	JSONFileName = "output.json"
)

// WriteLog persists the run log as plain text, one line per row,
// overwriting any existing file at path.
func (r *Run) WriteLog(path string) error {
	data := strings.Join(r.OutputLog, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return errors.NewPersistenceError("failed to save log file", err)
	}
	return nil
}

// WriteJSON persists the full structured report, overwriting any
// existing file at path.
func (r *Run) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return errors.NewPersistenceError("failed to encode report", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewPersistenceError("failed to save JSON file", err)
	}
	return nil
}
