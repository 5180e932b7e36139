package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadPack parses tab-separated instances with the columns
// id_left, text_left, id_right, text_right, label.
func ReadPack(r io.Reader) (*Pack, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = 5

	var instances []Instance
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		label, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse label %q: %w", record[4], err)
		}

		instances = append(instances, Instance{
			IDLeft:    record[0],
			TextLeft:  record[1],
			IDRight:   record[2],
			TextRight: record[3],
			Label:     label,
		})
	}

	return NewPack(instances), nil
}

func LoadPack(fp string) (*Pack, error) {
	file, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	return ReadPack(file)
}
