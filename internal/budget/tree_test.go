package budget

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/logging"
)

func limit(v float64) *float64 { return &v }

func mustAdd(t *testing.T, tr *Tree, parent, name string, l *float64) Category {
	t.Helper()
	c, err := tr.AddCategory(parent, name, l)
	require.NoError(t, err)
	return c
}

func aggregateOf(t *testing.T, tr *Tree, name string) float64 {
	t.Helper()
	c, ok := tr.Search(name)
	require.True(t, ok, "category %q not found", name)
	return c.Aggregate
}

func TestNewHasOnlyRoot(t *testing.T) {
	tr := New()
	root := tr.Root()

	assert.Equal(t, DefaultRootName, root.Name)
	assert.True(t, root.IsRoot())
	assert.Nil(t, root.Limit)
	assert.Equal(t, 1, tr.Len())
	assert.Zero(t, tr.Total())
}

func TestAddCategoryDefaultsToRoot(t *testing.T) {
	tr := New(WithRootName("Household"))
	c := mustAdd(t, tr, "", "Rent", limit(1200))

	assert.Equal(t, 1, c.Depth)
	require.NotNil(t, c.Limit)
	assert.Equal(t, 1200.0, *c.Limit)
	assert.Equal(t, "Household", tr.Root().Name)
}

func TestAddCategoryUnknownParent(t *testing.T) {
	tr := New()
	_, err := tr.AddCategory("Nope", "Child", nil)

	assert.ErrorIs(t, err, fault.ErrNotFound)
	assert.Equal(t, 1, tr.Len(), "failed add must not create a node")
}

func TestAddCategoryValidation(t *testing.T) {
	tr := New()
	cases := []struct {
		name  string
		limit *float64
	}{
		{"", nil},
		{"   ", nil},
		{"Neg", limit(-1)},
		{"NaN", limit(math.NaN())},
		{"Inf", limit(math.Inf(1))},
	}
	for _, tc := range cases {
		_, err := tr.AddCategory("", tc.name, tc.limit)
		assert.ErrorIs(t, err, fault.ErrValidation, "name=%q", tc.name)
	}
	assert.Equal(t, 1, tr.Len())
}

func TestAddCategoryCopiesLimit(t *testing.T) {
	tr := New()
	l := limit(50)
	mustAdd(t, tr, "", "Books", l)
	*l = 1

	c, _ := tr.Search("Books")
	assert.Equal(t, 50.0, *c.Limit)

	*c.Limit = 2
	again, _ := tr.Search("Books")
	assert.Equal(t, 50.0, *again.Limit, "snapshots must not alias tree state")
}

func TestPresetsApplyOnlyWithoutExplicitLimit(t *testing.T) {
	tr := New(WithPresets(DefaultPresets()))

	food := mustAdd(t, tr, "", "Food", nil)
	require.NotNil(t, food.Limit)
	assert.Equal(t, 500.0, *food.Limit)

	travel := mustAdd(t, tr, "", "Travel", limit(250))
	assert.Equal(t, 250.0, *travel.Limit)

	misc := mustAdd(t, tr, "", "Misc", nil)
	assert.Nil(t, misc.Limit)
}

func TestSearchTieBreakFirstInPreOrder(t *testing.T) {
	tr := New()
	first := mustAdd(t, tr, "", "A", nil)
	mustAdd(t, tr, "", "B", nil)
	second := mustAdd(t, tr, "B", "A", nil)

	got, ok := tr.Search("A")
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 1, got.Depth)
	assert.NotEqual(t, second.ID, got.ID)

	_, ok = tr.Search("Z")
	assert.False(t, ok)
}

func TestTieBreakAppliesToParentAndExpense(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "A", nil)
	mustAdd(t, tr, "", "B", nil)
	mustAdd(t, tr, "B", "A", nil)

	child := mustAdd(t, tr, "A", "A-child", nil)
	assert.Equal(t, 2, child.Depth, "attached under the first A")

	_, err := tr.AddExpense("A", 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, aggregateOf(t, tr, "B"))
	assert.Equal(t, 10.0, tr.Total())
}

func TestBudgetAdvisoryScenario(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Food", limit(500))
	mustAdd(t, tr, "Food", "Groceries", limit(300))

	r, err := tr.AddExpense("Groceries", 350)
	require.NoError(t, err)

	require.NotNil(t, r.Exceeded)
	assert.Equal(t, "Groceries", r.Exceeded.Category)
	assert.Equal(t, 50.0, r.Exceeded.Over())
	assert.ErrorIs(t, r.Advisory(), fault.ErrBudgetExceeded)
	assert.True(t, fault.IsAdvisory(r.Advisory()))
	assert.Empty(t, r.Ancestors, "Food is still within 500")

	assert.Equal(t, 350.0, aggregateOf(t, tr, "Groceries"))
	assert.Equal(t, 350.0, aggregateOf(t, tr, "Food"))
	assert.Equal(t, 350.0, tr.Total())
	require.NoError(t, tr.Check())
}

func TestAncestorBreachesReported(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Food", limit(100))
	mustAdd(t, tr, "Food", "Groceries", nil)

	r, err := tr.AddExpense("Groceries", 150)
	require.NoError(t, err)
	assert.Nil(t, r.Exceeded)
	assert.NoError(t, r.Advisory())
	require.Len(t, r.Ancestors, 1)
	assert.Equal(t, "Food", r.Ancestors[0].Category)
}

func TestZeroLimitIsACeiling(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Frozen", limit(0))

	r, err := tr.AddExpense("Frozen", 1)
	require.NoError(t, err)
	assert.NotNil(t, r.Exceeded)
}

func TestWithinLimitNoAdvisory(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Travel", limit(1000))

	r, err := tr.AddExpense("Travel", 1000)
	require.NoError(t, err)
	assert.Nil(t, r.Exceeded, "reaching the limit exactly is not a breach")
}

func TestRootExpenseRejected(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Food", nil)
	_, err := tr.AddExpense("Food", 20)
	require.NoError(t, err)

	_, err = tr.AddExpense(DefaultRootName, 99)
	assert.ErrorIs(t, err, fault.ErrRootExpense)
	assert.Equal(t, 20.0, tr.Total())
	assert.Equal(t, 20.0, aggregateOf(t, tr, "Food"))
	assert.Zero(t, tr.Root().Own)
}

func TestAddExpenseFailures(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Food", nil)

	_, err := tr.AddExpense("Missing", 5)
	assert.ErrorIs(t, err, fault.ErrNotFound)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := tr.AddExpense("Food", amount)
		assert.ErrorIs(t, err, fault.ErrValidation, "amount %v", amount)
	}
	assert.Zero(t, tr.Total())
}

func TestOwnExpensePreservedWhenChildrenAdded(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Food", nil)
	_, err := tr.AddExpense("Food", 40)
	require.NoError(t, err)

	mustAdd(t, tr, "Food", "Snacks", nil)
	_, err = tr.AddExpense("Snacks", 2)
	require.NoError(t, err)

	food, _ := tr.Search("Food")
	assert.Equal(t, 40.0, food.Own)
	assert.Equal(t, 42.0, food.Aggregate)
}

func TestAggregateInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tr := New()
	names := []string{DefaultRootName}

	for i := 0; i < 400; i++ {
		if i%3 == 0 || len(names) == 1 {
			parent := names[rng.IntN(len(names))]
			name := "c" + strings.Repeat("x", rng.IntN(3)) + string(rune('a'+rng.IntN(6)))
			if _, err := tr.AddCategory(parent, name, nil); err == nil {
				names = append(names, name)
			}
			continue
		}
		name := names[1+rng.IntN(len(names)-1)]
		_, err := tr.AddExpense(name, float64(1+rng.IntN(50)))
		require.NoError(t, err)
		require.NoError(t, tr.Check(), "after expense %d", i)
	}
}

func TestOverviewPreOrderAndRestartable(t *testing.T) {
	tr := New()
	mustAdd(t, tr, "", "Food", limit(500))
	mustAdd(t, tr, "Food", "Groceries", limit(300))
	mustAdd(t, tr, "Food", "Restaurants", nil)
	mustAdd(t, tr, "", "Travel", nil)
	_, err := tr.AddExpense("Restaurants", 25)
	require.NoError(t, err)

	lines := slices.Collect(tr.Overview())
	var names []string
	var depths []int
	for _, l := range lines {
		names = append(names, l.Name)
		depths = append(depths, l.Depth)
	}
	assert.Equal(t, []string{DefaultRootName, "Food", "Groceries", "Restaurants", "Travel"}, names)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths)
	assert.Equal(t, 25.0, lines[1].Aggregate)
	assert.Equal(t, 0.0, lines[1].Own)

	again := slices.Collect(tr.Overview())
	assert.Equal(t, lines, again)

	// Early break leaves the tree intact.
	for range tr.Overview() {
		break
	}
	assert.Equal(t, 5, tr.Len())
}

func TestLineHelpers(t *testing.T) {
	l := Line{Aggregate: 150, Limit: limit(100)}
	rem, ok := l.Remaining()
	assert.True(t, ok)
	assert.Equal(t, -50.0, rem)
	u, _ := l.Usage()
	assert.Equal(t, 1.5, u)
	assert.True(t, l.Exceeded())

	free := Line{Aggregate: 10}
	_, ok = free.Usage()
	assert.False(t, ok)
	assert.False(t, free.Exceeded())

	zero := Line{Aggregate: 3, Limit: limit(0)}
	u, _ = zero.Usage()
	assert.Equal(t, 1.0, u)
}

func TestBreachIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelDebug, Output: &buf})
	tr := New(WithLogger(logger))
	mustAdd(t, tr, "", "Fun", limit(10))

	_, err := tr.AddExpense("Fun", 11)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "budget exceeded")
	assert.Contains(t, out, "component=budget")
	assert.Contains(t, out, "category=Fun")
}
