package analysis

import "bigcompany-analysis/internal/hierarchy"

// MaxManagersBetween is the deepest an individual contributor may sit below the
// root before being reported.
const MaxManagersBetween = 4

type DeepEmployee struct {
	EmployeeID string
	FullName   string
	Depth      int
}

// FindDeepEmployees returns the leaves below from whose depth exceeds
// threshold. from is treated as depth 0.
func FindDeepEmployees(tree *hierarchy.Tree, from, threshold int) []DeepEmployee {
	return findDeepEmployees(tree, from, 0, threshold, []DeepEmployee{})
}

func findDeepEmployees(tree *hierarchy.Tree, i, depth, threshold int, found []DeepEmployee) []DeepEmployee {
	reports := tree.Reports(i)
	if len(reports) == 0 && depth > threshold {
		employee := tree.Employee(i)
		found = append(found, DeepEmployee{
			EmployeeID: employee.ID,
			FullName:   employee.FullName(),
			Depth:      depth,
		})
	}

	for _, report := range reports {
		found = findDeepEmployees(tree, report, depth+1, threshold, found)
	}
	return found
}
