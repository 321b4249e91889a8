// Package hierarchy links flat employee records into a management tree.
//
// The tree is an arena: records live in a slice in source order, each node
// stores the index of its manager and the indexes of its direct reports.
// A built Tree is never mutated, so it can be read from several goroutines.
package hierarchy

import (
	"slices"
	"strings"

	"bigcompany-analysis/internal/apperror"
	"bigcompany-analysis/internal/loader"
	"bigcompany-analysis/internal/models"
)

// NoManager is the manager index of the root.
const NoManager = -1

type node struct {
	employee models.Employee
	manager  int
	reports  []int
}

type Tree struct {
	nodes []node
	index map[string]int
	root  int
}

// Build links every row of the dataset to its manager in row order and returns
// the tree rooted at the only record without a manager.
func Build(dataset *loader.Dataset) (*Tree, error) {
	tree := &Tree{
		nodes: make([]node, 0, len(dataset.Rows)),
		index: make(map[string]int, len(dataset.Rows)),
		root:  NoManager,
	}

	for _, row := range dataset.Rows {
		employee, ok := dataset.Employees[row.ID]
		if !ok {
			return nil, apperror.Newf(apperror.CodeMalformedRecord, "line %d: employee %s missing from dataset", row.Line, row.ID)
		}
		tree.index[row.ID] = len(tree.nodes)
		tree.nodes = append(tree.nodes, node{employee: employee, manager: NoManager})
	}

	var roots []string
	for i, row := range dataset.Rows {
		if row.ManagerID == "" {
			roots = append(roots, row.ID)
			tree.root = i
			continue
		}

		managerIndex, ok := tree.index[row.ManagerID]
		if !ok {
			return nil, apperror.Newf(apperror.CodeDanglingManager,
				"line %d: employee %s references unknown manager %s", row.Line, row.ID, row.ManagerID)
		}
		if managerIndex == i {
			return nil, apperror.Newf(apperror.CodeCyclicChain,
				"line %d: employee %s is listed as their own manager", row.Line, row.ID)
		}

		tree.nodes[i].manager = managerIndex
		tree.nodes[managerIndex].reports = append(tree.nodes[managerIndex].reports, i)
	}

	switch {
	case len(roots) == 0 && len(tree.nodes) == 0:
		return nil, apperror.New(apperror.CodeNoRoot, "no employees found")
	case len(roots) == 0:
		return nil, apperror.New(apperror.CodeNoRoot, "no employee without a manager found")
	case len(roots) > 1:
		return nil, apperror.Newf(apperror.CodeMultipleRoots,
			"%d employees without a manager: %s", len(roots), strings.Join(roots, ", "))
	}

	if err := tree.checkReachable(); err != nil {
		return nil, err
	}
	return tree, nil
}

// checkReachable rejects records whose manager chain loops instead of
// ending at the root. Such records cannot be reached from the root.
func (t *Tree) checkReachable() error {
	reached := make([]bool, len(t.nodes))
	visited := 0
	t.Walk(func(i, _ int) {
		reached[i] = true
		visited++
	})
	if visited == len(t.nodes) {
		return nil
	}

	for i := range t.nodes {
		if reached[i] {
			continue
		}
		onLoop := t.findLoop(i)
		return apperror.Newf(apperror.CodeCyclicChain,
			"management chain of employee %s loops through %s and never reaches %s",
			t.nodes[i].employee.ID, t.nodes[onLoop].employee.ID, t.nodes[t.root].employee.ID)
	}
	return nil
}

// findLoop follows manager links from start until an index repeats.
func (t *Tree) findLoop(start int) int {
	seen := make(map[int]bool)
	current := start
	for !seen[current] {
		seen[current] = true
		current = t.nodes[current].manager
	}
	return current
}

func (t *Tree) Root() int {
	return t.root
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Employee(i int) models.Employee {
	return t.nodes[i].employee
}

// Reports returns the direct reports of i in link order.
func (t *Tree) Reports(i int) []int {
	return slices.Clone(t.nodes[i].reports)
}

func (t *Tree) ReportCount(i int) int {
	return len(t.nodes[i].reports)
}

// Manager returns the manager index of i, or false for the root.
func (t *Tree) Manager(i int) (int, bool) {
	manager := t.nodes[i].manager
	return manager, manager != NoManager
}

func (t *Tree) Lookup(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// Depth counts manager links between i and the root.
func (t *Tree) Depth(i int) int {
	depth := 0
	for t.nodes[i].manager != NoManager {
		i = t.nodes[i].manager
		depth++
	}
	return depth
}

// Walk visits every node reachable from the root depth-first, reports in link
// order, passing the node index and its depth.
func (t *Tree) Walk(fn func(i, depth int)) {
	if t.root == NoManager {
		return
	}
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(i, depth int, fn func(i, depth int)) {
	fn(i, depth)
	for _, report := range t.nodes[i].reports {
		t.walk(report, depth+1, fn)
	}
}
