package service

import "context"

type SalaryViolationDTO struct {
	EmployeeID          string  `json:"employee_id"`
	FullName            string  `json:"full_name"`
	Salary              float64 `json:"salary"`
	AverageReportSalary float64 `json:"average_report_salary"`
	MinSalary           float64 `json:"min_salary"`
	MaxSalary           float64 `json:"max_salary"`
}

type DeepEmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Depth      int    `json:"depth"`
}

type Report struct {
	SalaryViolations   []SalaryViolationDTO `json:"salary_violations"`
	DeepEmployees      []DeepEmployeeDTO    `json:"deep_employees"`
	MaxManagersBetween int                  `json:"max_managers_between"`
	EmployeeCount      int                  `json:"employee_count"`
}

type Analyzer interface {
	Analyze(ctx context.Context) (Report, error)
}
