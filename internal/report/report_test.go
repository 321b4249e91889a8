package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigcompany-analysis/internal/config"
	"bigcompany-analysis/internal/service"
)

func sampleReport() service.Report {
	return service.Report{
		SalaryViolations: []service.SalaryViolationDTO{
			{EmployeeID: "124", FullName: "Martin Chekov", Salary: 45000, AverageReportSalary: 50000, MinSalary: 60000, MaxSalary: 75000},
		},
		DeepEmployees: []service.DeepEmployeeDTO{
			{EmployeeID: "9", FullName: "Deep Diver", Depth: 5},
		},
		MaxManagersBetween: 4,
		EmployeeCount:      9,
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport()))

	expected := "Managers with salary constraint violations:\n" +
		"Martin Chekov: salary 45000.00, avg sub salary 50000.00 (should be between 60000.00 and 75000.00)\n" +
		"\n" +
		"Employees with more than 4 managers between them and CEO:\n" +
		"Deep Diver (depth: 5)\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteTextEmptySections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, service.Report{MaxManagersBetween: 4}))

	assert.Equal(t, "Managers with salary constraint violations:\n\n"+
		"Employees with more than 4 managers between them and CEO:\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, config.FormatJSON, sampleReport()))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))

	violations, ok := payload["salary_violations"].([]interface{})
	require.True(t, ok)
	require.Len(t, violations, 1)
	first := violations[0].(map[string]interface{})
	assert.Equal(t, "Martin Chekov", first["full_name"])
	assert.Equal(t, 60000.0, first["min_salary"])
	assert.Equal(t, 4.0, payload["max_managers_between"])
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "xml", sampleReport()))
	assert.Zero(t, buf.Len())
}
