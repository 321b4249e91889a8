package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"bigcompany-analysis/internal/apperror"
	"bigcompany-analysis/internal/models"
)

const (
	minFields     = 4
	managerColumn = 4
)

// decimalPattern accepts plain decimal numbers with an optional exponent.
// Go literal forms such as 1_000 or 0x1p4 are rejected.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

type CSVSource struct {
	Path string
}

func (s CSVSource) Describe() string {
	return "csv file " + s.Path
}

func (s CSVSource) Load(ctx context.Context) (*Dataset, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperror.Newf(apperror.CodeConfig, "data file %s not found", s.Path)
		}
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadCSV(file)
}

// ReadCSV parses id,firstName,lastName,salary[,managerId] rows after a header
// line. An empty input yields an empty Dataset.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return newDataset(0), nil
		}
		return nil, csvError(err)
	}

	dataset := newDataset(64)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		line, _ := reader.FieldPos(0)
		employee, err := parseRecord(line, record)
		if err != nil {
			return nil, err
		}
		if err := dataset.add(line, employee); err != nil {
			return nil, err
		}
	}

	return dataset, nil
}

func parseRecord(line int, record []string) (models.Employee, error) {
	if len(record) < minFields {
		return models.Employee{}, apperror.Newf(apperror.CodeMalformedRecord,
			"line %d: expected at least %d fields, got %d", line, minFields, len(record))
	}

	rawSalary := strings.TrimSpace(record[3])
	if !decimalPattern.MatchString(rawSalary) {
		return models.Employee{}, apperror.Newf(apperror.CodeMalformedRecord,
			"line %d: salary %q is not a decimal number", line, rawSalary)
	}
	salary, err := strconv.ParseFloat(rawSalary, 64)
	if err != nil {
		return models.Employee{}, apperror.Newf(apperror.CodeMalformedRecord,
			"line %d: salary %q is not a number", line, rawSalary)
	}

	employee := models.Employee{
		ID:         record[0],
		FirstName:  record[1],
		LastName:   record[2],
		Salary:     salary,
		SalaryText: rawSalary,
	}
	if len(record) > managerColumn {
		managerID := record[managerColumn]
		employee.ManagerID = &managerID
	}
	return employee, nil
}

func csvError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return apperror.Newf(apperror.CodeMalformedRecord, "line %d: %v", parseErr.Line, parseErr.Err)
	}
	return fmt.Errorf("read csv: %w", err)
}
