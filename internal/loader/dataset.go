// Package loader reads flat employee records from a data source.
//
// Every source funnels its rows through a Dataset so that validation,
// duplicate detection and row ordering behave the same for all of them.
package loader

import (
	"context"
	"math"
	"strings"

	"bigcompany-analysis/internal/apperror"
	"bigcompany-analysis/internal/models"
)

// Source produces a Dataset. Implementations read their backing store once.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	Describe() string
}

// Row keeps the linkage fields of one record in source order.
type Row struct {
	Line      int
	ID        string
	ManagerID string
}

type Dataset struct {
	Employees map[string]models.Employee
	Rows      []Row
}

func newDataset(capacity int) *Dataset {
	return &Dataset{
		Employees: make(map[string]models.Employee, capacity),
		Rows:      make([]Row, 0, capacity),
	}
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

func (d *Dataset) add(line int, employee models.Employee) error {
	employee.ID = strings.TrimSpace(employee.ID)
	employee.FirstName = strings.TrimSpace(employee.FirstName)
	employee.LastName = strings.TrimSpace(employee.LastName)
	employee.ManagerID = normalizeManagerID(employee.ManagerID)
	employee.Ordinal = len(d.Rows)

	if employee.ID == "" {
		return apperror.Newf(apperror.CodeMalformedRecord, "line %d: employee id is empty", line)
	}
	if math.IsNaN(employee.Salary) || math.IsInf(employee.Salary, 0) || employee.Salary < 0 {
		return apperror.Newf(apperror.CodeMalformedRecord, "line %d: employee %s has invalid salary %v", line, employee.ID, employee.Salary)
	}

	if previous, exists := d.Employees[employee.ID]; exists {
		return apperror.Newf(apperror.CodeDuplicateIdentifier,
			"line %d: duplicate employee id %s (first seen on line %d)", line, employee.ID, d.Rows[previous.Ordinal].Line)
	}

	d.Employees[employee.ID] = employee
	d.Rows = append(d.Rows, Row{
		Line:      line,
		ID:        employee.ID,
		ManagerID: employee.ManagerRef(),
	})
	return nil
}

func normalizeManagerID(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	return &value
}
