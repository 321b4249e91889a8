// Package analysis holds the read-only passes over a built hierarchy.
package analysis

import (
	"math/big"
	"strconv"

	"bigcompany-analysis/internal/hierarchy"
	"bigcompany-analysis/internal/models"
)

// A manager must earn at least MinSalaryRatio and at most MaxSalaryRatio times
// the average salary of their direct reports.
const (
	MinSalaryRatio = 1.2
	MaxSalaryRatio = 1.5
)

var (
	minRatio = big.NewRat(6, 5)
	maxRatio = big.NewRat(3, 2)
)

type SalaryViolation struct {
	EmployeeID          string
	FullName            string
	Salary              float64
	AverageReportSalary float64
	MinSalary           float64
	MaxSalary           float64
}

func (v SalaryViolation) Underpaid() bool {
	return v.Salary < v.MinSalary
}

// AuditSalaries visits every manager below and including from, depth-first,
// and returns those paid outside the allowed band.
func AuditSalaries(tree *hierarchy.Tree, from int) []SalaryViolation {
	return auditSalaries(tree, from, []SalaryViolation{})
}

func auditSalaries(tree *hierarchy.Tree, i int, violations []SalaryViolation) []SalaryViolation {
	reports := tree.Reports(i)
	if len(reports) == 0 {
		return violations
	}

	total := new(big.Rat)
	for _, report := range reports {
		total.Add(total, exactSalary(tree.Employee(report)))
	}

	manager := tree.Employee(i)
	salary := exactSalary(manager)
	average := new(big.Rat).Quo(total, big.NewRat(int64(len(reports)), 1))
	lower := new(big.Rat).Mul(average, minRatio)
	upper := new(big.Rat).Mul(average, maxRatio)

	if salary.Cmp(lower) < 0 || salary.Cmp(upper) > 0 {
		violations = append(violations, SalaryViolation{
			EmployeeID:          manager.ID,
			FullName:            manager.FullName(),
			Salary:              manager.Salary,
			AverageReportSalary: ratFloat(average),
			MinSalary:           ratFloat(lower),
			MaxSalary:           ratFloat(upper),
		})
	}

	for _, report := range reports {
		violations = auditSalaries(tree, report, violations)
	}
	return violations
}

// exactSalary returns the salary as an exact decimal. Records without source
// text use the shortest decimal that round-trips their float value.
func exactSalary(employee models.Employee) *big.Rat {
	text := employee.SalaryText
	if text == "" {
		text = strconv.FormatFloat(employee.Salary, 'f', -1, 64)
	}
	if value, ok := new(big.Rat).SetString(text); ok {
		return value
	}
	return new(big.Rat).SetFloat64(employee.Salary)
}

func ratFloat(value *big.Rat) float64 {
	f, _ := value.Float64()
	return f
}
