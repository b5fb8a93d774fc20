package problems

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Assignment maps each task to a resource, minimizing total cost.
// Costs is indexed [resource][task].
type Assignment struct {
	Costs     [][]int
	Resources int
	Tasks     int
}

// NewAssignment validates a rectangular, non-empty cost table.
func NewAssignment(costs [][]int) (*Assignment, error) {
	if len(costs) == 0 || len(costs[0]) == 0 {
		return nil, fmt.Errorf("assignment: cost table is empty")
	}
	tasks := len(costs[0])
	for r, row := range costs {
		if len(row) != tasks {
			return nil, fmt.Errorf("assignment: resource %d has %d costs, want %d", r, len(row), tasks)
		}
	}
	return &Assignment{Costs: costs, Resources: len(costs), Tasks: tasks}, nil
}

// RandomCosts draws a resources x tasks table of integer costs in [1, 99].
func RandomCosts(resources, tasks int, rng *rand.Rand) [][]int {
	costs := make([][]int, resources)
	for r := range costs {
		costs[r] = make([]int, tasks)
		for t := range costs[r] {
			costs[r][t] = 1 + rng.Intn(99)
		}
	}
	return costs
}

func (a *Assignment) Length() int { return a.Tasks }

func (a *Assignment) NewGenome(rng *rand.Rand) []int {
	g := make([]int, a.Tasks)
	for i := range g {
		g[i] = rng.Intn(a.Resources)
	}
	return g
}

// Evaluate returns the total cost of the assignment.
func (a *Assignment) Evaluate(g []int) float64 {
	total := 0
	for task, resource := range g {
		total += a.Costs[resource][task]
	}
	return float64(total)
}

func (a *Assignment) MutateLocus(g []int, locus int, rng *rand.Rand) {
	g[locus] = rng.Intn(a.Resources)
}

// FormatAssignment renders a genome as space-separated resource indices.
func FormatAssignment(g []int) string {
	parts := make([]string, len(g))
	for i, r := range g {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, " ")
}

// ParseAssignment is the inverse of FormatAssignment.
func ParseAssignment(s string) ([]int, error) {
	fields := strings.Fields(s)
	g := make([]int, len(fields))
	for i, f := range fields {
		r, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("assignment: parse resource %q: %w", f, err)
		}
		g[i] = r
	}
	return g, nil
}
