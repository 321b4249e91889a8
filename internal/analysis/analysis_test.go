package analysis

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigcompany-analysis/internal/hierarchy"
	"bigcompany-analysis/internal/loader"
	"bigcompany-analysis/internal/models"
)

func mustTree(t *testing.T, rows ...string) *hierarchy.Tree {
	t.Helper()
	input := "id,firstName,lastName,salary,managerId\n" + strings.Join(rows, "\n") + "\n"
	dataset, err := loader.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	tree, err := hierarchy.Build(dataset)
	require.NoError(t, err)
	return tree
}

// chain builds a single line of command n levels deep below the root.
func chain(levels int) []string {
	rows := []string{"0,Emp,L0,100000,"}
	for i := 1; i <= levels; i++ {
		rows = append(rows, fmt.Sprintf("%d,Emp,L%d,100000,%d", i, i, i-1))
	}
	return rows
}

func TestAuditSalariesWithinBand(t *testing.T) {
	tree := mustTree(t,
		"1,Ana,Boss,100000,",
		"2,Bob,Mid,70000,1",
		"3,Cid,Low,50000,2",
	)

	assert.Empty(t, AuditSalaries(tree, tree.Root()))
}

func TestAuditSalariesFlagsBothDirections(t *testing.T) {
	tree := mustTree(t,
		"123,Joe,Doe,80000,",
		"124,Martin,Chekov,45000,123",
		"125,Bob,Ronstad,47000,123",
		"300,Alice,Hasacat,50000,124",
		"305,Brett,Hardleaf,34000,300",
	)

	violations := AuditSalaries(tree, tree.Root())
	require.Len(t, violations, 2)

	joe := violations[0]
	assert.Equal(t, "Joe Doe", joe.FullName)
	assert.InDelta(t, 46000, joe.AverageReportSalary, 1e-9)
	assert.InDelta(t, 55200, joe.MinSalary, 1e-6)
	assert.InDelta(t, 69000, joe.MaxSalary, 1e-6)
	assert.False(t, joe.Underpaid())

	martin := violations[1]
	assert.Equal(t, "124", martin.EmployeeID)
	assert.True(t, martin.Underpaid())
	assert.InDelta(t, 60000, martin.MinSalary, 1e-6)
}

func TestAuditSalariesOverpaid(t *testing.T) {
	tree := mustTree(t,
		"1,Ana,Boss,200000,",
		"2,Bob,Mid,70000,1",
		"3,Cid,Low,50000,1",
	)

	violations := AuditSalaries(tree, tree.Root())
	require.Len(t, violations, 1)
	assert.Equal(t, "Ana Boss", violations[0].FullName)
	assert.InDelta(t, 60000, violations[0].AverageReportSalary, 1e-9)
	assert.False(t, violations[0].Underpaid())
}

func TestAuditSalariesBoundsAreInclusive(t *testing.T) {
	tests := []struct {
		name    string
		salary  string
		reports []string
		flagged bool
	}{
		{name: "exactly lower bound", salary: "60000", reports: []string{"50000"}},
		{name: "exactly upper bound", salary: "75000", reports: []string{"50000"}},
		{name: "lower bound with cents", salary: "39999.99", reports: []string{"33333.33", "33333.32"}},
		{name: "one cent below lower bound", salary: "59999.99", reports: []string{"50000"}, flagged: true},
		{name: "one cent above upper bound", salary: "75000.01", reports: []string{"50000"}, flagged: true},
		{name: "lower bound of fractional average", salary: "1200.12", reports: []string{"1000.10"}},
		{name: "fraction of a cent below lower bound", salary: "83999.996", reports: []string{"70000"}, flagged: true},
		{name: "fraction of a cent above upper bound", salary: "105000.001", reports: []string{"70000"}, flagged: true},
		{name: "lower bound with sub-cent average", salary: "0.0012", reports: []string{"0.001"}},
		{
			name:    "large salaries inside band",
			salary:  "130000000000000000",
			reports: []string{"100000000000000000", "100000000000000000", "100000000000000000"},
		},
		{
			name:    "large salaries above band",
			salary:  "50000000000000000",
			reports: []string{"10000000000000000", "10000000000000000", "10000000000000000"},
			flagged: true,
		},
		{
			name:    "large salary exactly on upper bound",
			salary:  "1.5e17",
			reports: []string{"1e17", "1e17", "1e17"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []string{"1,Ana,Boss," + tt.salary + ","}
			for i, salary := range tt.reports {
				rows = append(rows, fmt.Sprintf("%d,Rep,R%d,%s,1", i+2, i, salary))
			}
			tree := mustTree(t, rows...)

			violations := AuditSalaries(tree, tree.Root())
			if tt.flagged {
				assert.Len(t, violations, 1)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestAuditSalariesReportsDecisionBounds(t *testing.T) {
	tree := mustTree(t, "1,Ana,Boss,83999.996,", "2,Bob,Mid,70000,1")

	violations := AuditSalaries(tree, tree.Root())
	require.Len(t, violations, 1)
	assert.True(t, violations[0].Underpaid())
	assert.Equal(t, 84000.0, violations[0].MinSalary)
	assert.Equal(t, 105000.0, violations[0].MaxSalary)
}

func TestExactSalaryWithoutSourceText(t *testing.T) {
	tests := []struct {
		salary   float64
		expected *big.Rat
	}{
		{salary: 1000.10, expected: big.NewRat(100010, 100)},
		{salary: 83999.996, expected: big.NewRat(83999996, 1000)},
		{salary: 1e17, expected: new(big.Rat).SetInt64(100000000000000000)},
	}

	for _, tt := range tests {
		got := exactSalary(models.Employee{Salary: tt.salary})
		assert.Equalf(t, 0, got.Cmp(tt.expected), "salary %v became %s", tt.salary, got.RatString())
	}
}

func TestAuditSalariesIdempotent(t *testing.T) {
	tree := mustTree(t,
		"1,Ana,Boss,10,",
		"2,Bob,Mid,70000,1",
		"3,Cid,Low,50000,2",
		"4,Dee,Low,10,2",
	)

	first := AuditSalaries(tree, tree.Root())
	second := AuditSalaries(tree, tree.Root())
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestAuditSalariesFromSubtree(t *testing.T) {
	tree := mustTree(t,
		"1,Ana,Boss,1,",
		"2,Bob,Mid,1,1",
		"3,Cid,Low,50000,2",
	)

	bob, ok := tree.Lookup("2")
	require.True(t, ok)
	violations := AuditSalaries(tree, bob)
	require.Len(t, violations, 1)
	assert.Equal(t, "2", violations[0].EmployeeID)
}

func TestFindDeepEmployeesThreshold(t *testing.T) {
	atThreshold := mustTree(t, chain(MaxManagersBetween)...)
	assert.Empty(t, FindDeepEmployees(atThreshold, atThreshold.Root(), MaxManagersBetween))

	pastThreshold := mustTree(t, chain(MaxManagersBetween+1)...)
	deep := FindDeepEmployees(pastThreshold, pastThreshold.Root(), MaxManagersBetween)
	require.Len(t, deep, 1)
	assert.Equal(t, DeepEmployee{EmployeeID: "5", FullName: "Emp L5", Depth: 5}, deep[0])
}

func TestFindDeepEmployeesSkipsManagers(t *testing.T) {
	rows := append(chain(6), "7,Side,Leaf,1000,5", "8,Other,Leaf,1000,2")
	tree := mustTree(t, rows...)

	deep := FindDeepEmployees(tree, tree.Root(), MaxManagersBetween)

	var names []string
	for _, employee := range deep {
		names = append(names, fmt.Sprintf("%s@%d", employee.FullName, employee.Depth))
	}
	// employee 5 manages 6 and 7 so only the leaves are listed, in link order
	assert.Equal(t, []string{"Emp L6@6", "Side Leaf@6"}, names)
}

func TestFindDeepEmployeesShallowTree(t *testing.T) {
	tree := mustTree(t,
		"1,Ana,Boss,100000,",
		"2,Bob,Mid,70000,1",
		"3,Cid,Low,50000,2",
	)
	assert.Empty(t, FindDeepEmployees(tree, tree.Root(), MaxManagersBetween))
}
