// Package csvimport reads session import rows from semicolon separated files
// with a "body;connections" header. Connections are comma separated.
//
// Files written with the Portuguese "planeta;conexoes" header may also use
// Portuguese body names (Terra, Estacao_Esp1, ...); those are translated to
// catalog identifiers on load.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

const (
	// Delimiter separates the body column from the connections column
	Delimiter = ';'
	// NeighborSeparator separates identifiers inside the connections column
	NeighborSeparator = ","
)

var (
	bodyColumns       = []string{"body", "planet", "planeta"}
	connectionColumns = []string{"connections", "neighbors", "conexoes"}

	// legacyBodies maps Portuguese body names, with and without accents
	legacyBodies = map[string]string{
		"Mercúrio":     catalog.Mercury,
		"Mercurio":     catalog.Mercury,
		"Vênus":        catalog.Venus,
		"Terra":        catalog.Earth,
		"Marte":        catalog.Mars,
		"Júpiter":      catalog.Jupiter,
		"Saturno":      catalog.Saturn,
		"Urano":        catalog.Uranus,
		"Netuno":       catalog.Neptune,
		"Estacao_Esp1": catalog.Station1,
		"Estacao_Esp2": catalog.Station2,
		"Estacao_Esp3": catalog.Station3,
	}
)

// Result holds the rows that parsed and the diagnostics for those that
// did not
type Result struct {
	Rows        []session.Row
	Diagnostics []session.Diagnostic
}

// LoadFile opens path and parses it with Load
func LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses an import file. A missing or unusable header fails the whole
// load; any other malformed row becomes a diagnostic and parsing continues.
func Load(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, shared.NewValidationError("header", "import file is empty")
		}
		return nil, fmt.Errorf("failed to read import header: %w", err)
	}
	bodyIdx, connIdx, err := columns(header)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			result.Diagnostics = append(result.Diagnostics, session.Diagnostic{
				Line: parseErr.Line,
				Err:  shared.NewValidationError("row", parseErr.Err.Error()),
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read import file: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if len(record) <= bodyIdx || len(record) <= connIdx {
			result.Diagnostics = append(result.Diagnostics, session.Diagnostic{
				Line: line,
				Err: shared.NewValidationError("row",
					fmt.Sprintf("expected %d fields, got %d", len(header), len(record))),
			})
			continue
		}

		result.Rows = append(result.Rows, session.Row{
			Line:      line,
			Body:      bodyID(record[bodyIdx]),
			Neighbors: splitNeighbors(record[connIdx]),
		})
	}

	return result, nil
}

func columns(header []string) (int, int, error) {
	bodyIdx, connIdx := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch {
		case bodyIdx < 0 && slices.Contains(bodyColumns, name):
			bodyIdx = i
		case connIdx < 0 && slices.Contains(connectionColumns, name):
			connIdx = i
		}
	}
	if bodyIdx < 0 || connIdx < 0 {
		return 0, 0, shared.NewValidationError("header",
			fmt.Sprintf("import file must have %q and %q columns", bodyColumns[0], connectionColumns[0]))
	}
	return bodyIdx, connIdx, nil
}

func splitNeighbors(field string) []string {
	var neighbors []string
	for _, part := range strings.Split(field, NeighborSeparator) {
		if part = bodyID(part); part != "" {
			neighbors = append(neighbors, part)
		}
	}
	return neighbors
}

// bodyID trims a body cell and translates a legacy name
func bodyID(field string) string {
	id := strings.TrimSpace(field)
	if mapped, ok := legacyBodies[id]; ok {
		return mapped
	}
	return id
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
