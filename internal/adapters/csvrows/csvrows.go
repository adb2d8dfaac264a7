// Package csvrows reads batch rows from a CSV file with a header line
package csvrows

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
)

// Default column names
const (
	DefaultIDColumn      = "identifier"
	DefaultPayloadColumn = "payload"
)

// Read maps idCol and payloadCol (matched case-insensitively) onto rows.
// An empty idCol leaves identifiers blank so the batch falls back to positional names
func Read(r io.Reader, idCol, payloadCol string) ([]qr.Row, error) {
	if payloadCol == "" {
		payloadCol = DefaultPayloadColumn
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perr.Validationf("csv: missing header row")
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "csv: header")
	}
	idIdx, payIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case idCol != "" && strings.EqualFold(h, idCol):
			idIdx = i
		case strings.EqualFold(h, payloadCol):
			payIdx = i
		}
	}
	if payIdx < 0 {
		return nil, perr.WithField(perr.Validationf("csv: no %q column", payloadCol), payloadCol)
	}
	if idCol != "" && idIdx < 0 {
		return nil, perr.WithField(perr.Validationf("csv: no %q column", idCol), idCol)
	}

	var rows []qr.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeValidation, "csv: read")
		}
		row := qr.Row{Payload: field(rec, payIdx)}
		if idIdx >= 0 {
			row.Identifier = field(rec, idIdx)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}
