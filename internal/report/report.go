// Package report renders an analysis report for the terminal or for tools.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"bigcompany-analysis/internal/config"
	"bigcompany-analysis/internal/service"
)

func Write(w io.Writer, format string, r service.Report) error {
	switch format {
	case config.FormatJSON:
		return WriteJSON(w, r)
	case config.FormatText, "":
		return WriteText(w, r)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func WriteText(w io.Writer, r service.Report) error {
	out := bufio.NewWriter(w)

	fmt.Fprintln(out, "Managers with salary constraint violations:")
	for _, v := range r.SalaryViolations {
		fmt.Fprintf(out, "%s: salary %.2f, avg sub salary %.2f (should be between %.2f and %.2f)\n",
			v.FullName, v.Salary, v.AverageReportSalary, v.MinSalary, v.MaxSalary)
	}

	fmt.Fprintf(out, "\nEmployees with more than %d managers between them and CEO:\n", r.MaxManagersBetween)
	for _, e := range r.DeepEmployees {
		fmt.Fprintf(out, "%s (depth: %d)\n", e.FullName, e.Depth)
	}

	return out.Flush()
}

func WriteJSON(w io.Writer, r service.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
