// Package export renders analytics outputs to CSV, JSON, and HTML chart
// reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"
)

// Format represents the export format.
type Format string

const (
	// FormatCSV represents CSV export format.
	FormatCSV Format = "csv"
	// FormatJSON represents JSON export format.
	FormatJSON Format = "json"
)

// Options holds configuration for export operations.
type Options struct {
	Format     Format
	FilePath   string
	PrettyJSON bool
	Overwrite  bool
}

// Exporter handles exporting data to various formats.
type Exporter struct {
	opts Options
}

// NewExporter creates a new Exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export exports the given data to the configured format.
// For CSV, data must be a slice of structs.
func (e *Exporter) Export(data interface{}) error {
	switch e.opts.Format {
	case FormatCSV:
		return e.exportCSV(data)
	case FormatJSON:
		return e.exportJSON(data)
	default:
		return fmt.Errorf("unsupported export format: %s", e.opts.Format)
	}
}

// exportJSON exports data to JSON format.
func (e *Exporter) exportJSON(data interface{}) error {
	var output []byte
	var err error
	if e.opts.PrettyJSON {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return e.writeToFile(output)
}

// exportCSV exports data to CSV format. data must be a slice of structs.
func (e *Exporter) exportCSV(data interface{}) (err error) {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("CSV export requires a slice, got %s", v.Kind())
	}
	if v.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	file, fileErr := e.createFile()
	if fileErr != nil {
		return fileErr
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	firstElem := v.Index(0)
	if firstElem.Kind() == reflect.Ptr {
		firstElem = firstElem.Elem()
	}
	if firstElem.Kind() != reflect.Struct {
		return fmt.Errorf("CSV export requires a slice of structs")
	}

	if err := writer.Write(e.getCSVHeaders(firstElem.Type())); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if err := writer.Write(e.structToCSVRow(elem)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	return nil
}

// getCSVHeaders extracts field names from a struct type for CSV headers.
func (e *Exporter) getCSVHeaders(t reflect.Type) []string {
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if csvTag := field.Tag.Get("csv"); csvTag != "" && csvTag != "-" {
			headers = append(headers, csvTag)
		} else if field.IsExported() {
			headers = append(headers, field.Name)
		}
	}
	return headers
}

// structToCSVRow converts a struct to a CSV row.
func (e *Exporter) structToCSVRow(v reflect.Value) []string {
	var row []string
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("csv") == "-" {
			continue
		}
		row = append(row, e.valueToString(v.Field(i)))
	}
	return row
}

// valueToString converts a reflect.Value to its CSV string representation.
func (e *Exporter) valueToString(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return v.Interface().(time.Time).Format(time.RFC3339)
		}
		return fmt.Sprintf("%v", v.Interface())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// createFile creates the output file, honoring the Overwrite option.
func (e *Exporter) createFile() (*os.File, error) {
	if e.opts.FilePath == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(e.opts.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if !e.opts.Overwrite {
		if _, err := os.Stat(e.opts.FilePath); err == nil {
			return nil, fmt.Errorf("file already exists: %s (use overwrite to replace)", e.opts.FilePath)
		}
	}

	file, err := os.Create(e.opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// writeToFile writes raw bytes to the configured file path.
func (e *Exporter) writeToFile(data []byte) (err error) {
	file, fileErr := e.createFile()
	if fileErr != nil {
		return fileErr
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = file.Write(data); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}
