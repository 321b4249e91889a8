package service

import (
	"context"
	"fmt"
	"log"
	"math"

	"bigcompany-analysis/internal/analysis"
	"bigcompany-analysis/internal/hierarchy"
	"bigcompany-analysis/internal/loader"
)

type AnalysisService struct {
	source loader.Source
	logger *log.Logger
}

func NewAnalysisService(source loader.Source, logger *log.Logger) *AnalysisService {
	return &AnalysisService{
		source: source,
		logger: logger,
	}
}

// Analyze loads the source, builds the hierarchy and runs both passes over it.
// Any load or build error aborts before a report is produced.
func (s *AnalysisService) Analyze(ctx context.Context) (Report, error) {
	dataset, err := s.source.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load %s: %w", s.source.Describe(), err)
	}
	s.logger.Printf("loaded %d employees from %s", dataset.Len(), s.source.Describe())

	tree, err := hierarchy.Build(dataset)
	if err != nil {
		return Report{}, fmt.Errorf("build hierarchy: %w", err)
	}
	s.logger.Printf("hierarchy rooted at %s", tree.Employee(tree.Root()).FullName())

	violations := analysis.AuditSalaries(tree, tree.Root())
	deep := analysis.FindDeepEmployees(tree, tree.Root(), analysis.MaxManagersBetween)
	s.logger.Printf("found %d salary violations and %d deep employees", len(violations), len(deep))

	return buildReport(tree.Len(), violations, deep), nil
}

func buildReport(employeeCount int, violations []analysis.SalaryViolation, deep []analysis.DeepEmployee) Report {
	report := Report{
		SalaryViolations:   make([]SalaryViolationDTO, 0, len(violations)),
		DeepEmployees:      make([]DeepEmployeeDTO, 0, len(deep)),
		MaxManagersBetween: analysis.MaxManagersBetween,
		EmployeeCount:      employeeCount,
	}

	for _, violation := range violations {
		report.SalaryViolations = append(report.SalaryViolations, violationToDTO(violation))
	}
	for _, employee := range deep {
		report.DeepEmployees = append(report.DeepEmployees, DeepEmployeeDTO{
			EmployeeID: employee.EmployeeID,
			FullName:   employee.FullName,
			Depth:      employee.Depth,
		})
	}
	return report
}

func violationToDTO(violation analysis.SalaryViolation) SalaryViolationDTO {
	return SalaryViolationDTO{
		EmployeeID:          violation.EmployeeID,
		FullName:            violation.FullName,
		Salary:              roundMoney(violation.Salary),
		AverageReportSalary: roundMoney(violation.AverageReportSalary),
		MinSalary:           roundMoney(violation.MinSalary),
		MaxSalary:           roundMoney(violation.MaxSalary),
	}
}

// roundMoney rounds half away from zero to two decimals.
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
