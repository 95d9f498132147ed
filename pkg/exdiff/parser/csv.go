package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses CSV content into a Table. The first record is the header.
// An empty stream yields a table with no columns.
func ReadCSV(name string, r io.Reader) (*models.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return models.NewTable(nil, nil), nil
	}
	if err != nil {
		return nil, invalid(name, err)
	}

	var rows [][]models.Value
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalid(name, err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, invalid(name, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record)))
		}
		row := make([]models.Value, len(header))
		for i, field := range record {
			row[i] = parseValue(field)
		}
		rows = append(rows, row)
	}

	return buildTable(header, rows, len(header)), nil
}
