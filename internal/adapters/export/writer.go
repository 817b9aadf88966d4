package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

// Output file names inside a run directory
const (
	TimeseriesFile  = "timeseries.csv"
	EventsFile      = "events.csv"
	SummaryFile     = "summary.json"
	ParametersFile  = "parameters.json"
	BandSummaryFile = "band_summary.csv"
)

// WriteJSON writes v indented by two spaces
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type outputFile struct {
	name  string
	write func(io.Writer) error
}

// DirectoryWriter writes a run's outputs as files under one directory
type DirectoryWriter struct{}

// NewDirectoryWriter creates a directory writer
func NewDirectoryWriter() *DirectoryWriter {
	return &DirectoryWriter{}
}

// Write creates dir if needed and writes every output file. The band summary
// is skipped when the run has no bands.
func (d *DirectoryWriter) Write(dir string, results *simulation.Results) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []outputFile{
		{TimeseriesFile, func(w io.Writer) error { return WriteTimeseriesCSV(w, results.Timeseries) }},
		{EventsFile, func(w io.Writer) error { return WriteEventsCSV(w, results.Events) }},
		{SummaryFile, func(w io.Writer) error { return WriteJSON(w, results.Summary) }},
		{ParametersFile, func(w io.Writer) error { return WriteJSON(w, results.Parameters) }},
	}
	if len(results.Summary.Bands) > 0 {
		files = append(files, outputFile{BandSummaryFile, func(w io.Writer) error {
			return WriteBandSummaryCSV(w, results.Summary.Bands)
		}})
	}

	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.write); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
