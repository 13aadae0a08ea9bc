package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"ncbi/fetcher/internal/domain"

	log "github.com/sirupsen/logrus"
)

const (
	colTaxID         = "taxid"
	colFTPPath       = "ftp_path"
	colAssemblyLevel = "assembly_level"
)

// ParseError is a malformed catalog row. It is fatal for the whole run; a
// partially filtered catalog is not usable.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("catalog parse error on line %d: %s", e.Line, e.Reason)
}

// Result is the retained subset of the catalog plus the pass counters
// reported in the run summary.
type Result struct {
	Records    []domain.Assembly
	Considered int
	Matched    int
}

// Filter streams the assembly summary at path exactly once, top to bottom,
// retaining rows whose taxon id is in keep and whose assembly level passes
// the optional allow-list. The file's first line is a banner, not part of
// the tabular structure; the second is the tab-delimited column header.
func Filter(path string, keep map[string]struct{}, levels []string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open assembly summary %s: %w", path, err)
	}
	defer file.Close()

	allowed := make(map[string]struct{}, len(levels))
	for _, level := range levels {
		allowed[level] = struct{}{}
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	// banner line, discarded unconditionally
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return nil, &ParseError{Line: 1, Reason: "empty catalog"}
	}

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return nil, &ParseError{Line: 2, Reason: "missing column header"}
	}
	header := strings.Split(strings.TrimPrefix(scanner.Text(), "#"), "\t")

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colTaxID, colFTPPath, colAssemblyLevel} {
		if _, ok := columns[required]; !ok {
			return nil, &ParseError{Line: 2, Reason: fmt.Sprintf("missing required column %q", required)}
		}
	}

	result := &Result{}
	lineNo := 2
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, &ParseError{Line: lineNo, Reason: "undecodable bytes"}
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(header) {
			return nil, &ParseError{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(header), len(fields)),
			}
		}

		result.Considered++
		record := domain.Assembly{
			TaxID:         fields[columns[colTaxID]],
			FTPPath:       fields[columns[colFTPPath]],
			AssemblyLevel: fields[columns[colAssemblyLevel]],
		}

		if _, ok := keep[record.TaxID]; !ok {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[record.AssemblyLevel]; !ok {
				continue
			}
		}
		result.Records = append(result.Records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result.Matched = len(result.Records)
	log.Infof("Kept %d of %d assemblies from %s", result.Matched, result.Considered, path)
	return result, nil
}
