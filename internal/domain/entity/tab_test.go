package entity_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
)

func makeTabs(n int) *entity.TabList {
	tl := entity.NewTabList()
	for i := 0; i < n; i++ {
		tl.Add(&entity.Tab{
			ID:    entity.TabID(fmt.Sprintf("tab-%d", i)),
			Title: fmt.Sprintf("Tab %d", i),
		})
	}
	return tl
}

// assertDenseOrder checks that order values form exactly {0..N-1} in
// slice position.
func assertDenseOrder(t *testing.T, tl *entity.TabList) {
	t.Helper()
	for i, tab := range tl.Tabs {
		assert.Equal(t, i, tab.Order, "tab %s at position %d", tab.ID, i)
	}
}

func assertSingleActive(t *testing.T, tl *entity.TabList) {
	t.Helper()
	active := 0
	for _, tab := range tl.Tabs {
		if tab.IsActive {
			active++
		}
	}
	if tl.Count() == 0 {
		assert.Zero(t, active)
	} else {
		assert.Equal(t, 1, active, "exactly one tab must be active")
	}
}

func TestTabList_AddFirstBecomesActive(t *testing.T) {
	tl := makeTabs(3)

	assert.Equal(t, 3, tl.Count())
	assertDenseOrder(t, tl)
	require.NotNil(t, tl.ActiveTab())
	assert.Equal(t, entity.TabID("tab-0"), tl.ActiveTab().ID)
	assertSingleActive(t, tl)
}

func TestTabList_RemoveReindexes(t *testing.T) {
	tl := makeTabs(4)

	require.True(t, tl.Remove("tab-1"))
	assert.Equal(t, 3, tl.Count())
	assertDenseOrder(t, tl)
	assert.Nil(t, tl.Find("tab-1"))
	assertSingleActive(t, tl)
}

func TestTabList_RemoveActiveActivatesSuccessor(t *testing.T) {
	tl := makeTabs(3)
	require.True(t, tl.Activate("tab-1"))

	// The tab sliding into the removed tab's index becomes active.
	require.True(t, tl.Remove("tab-1"))
	require.NotNil(t, tl.ActiveTab())
	assert.Equal(t, entity.TabID("tab-2"), tl.ActiveTab().ID)
	assertSingleActive(t, tl)
}

func TestTabList_RemoveActiveLastActivatesPrevious(t *testing.T) {
	tl := makeTabs(3)
	require.True(t, tl.Activate("tab-2"))

	require.True(t, tl.Remove("tab-2"))
	require.NotNil(t, tl.ActiveTab())
	assert.Equal(t, entity.TabID("tab-1"), tl.ActiveTab().ID)
}

func TestTabList_RemoveLastTabLeavesNoActive(t *testing.T) {
	tl := makeTabs(1)
	require.True(t, tl.Remove("tab-0"))
	assert.Zero(t, tl.Count())
	assert.Nil(t, tl.ActiveTab())
}

func TestTabList_RemoveUnknown(t *testing.T) {
	tl := makeTabs(2)
	assert.False(t, tl.Remove("missing"))
	assert.Equal(t, 2, tl.Count())
}

func TestTabList_ActivateDeactivatesPrevious(t *testing.T) {
	tl := makeTabs(3)

	require.True(t, tl.Activate("tab-2"))
	assert.True(t, tl.Find("tab-2").IsActive)
	assert.False(t, tl.Find("tab-0").IsActive)
	assertSingleActive(t, tl)

	// Idempotent
	require.True(t, tl.Activate("tab-2"))
	assert.Equal(t, entity.TabID("tab-2"), tl.ActiveTab().ID)
	assertSingleActive(t, tl)
}

func TestTabList_Move(t *testing.T) {
	tl := makeTabs(3)

	require.True(t, tl.Move("tab-2", 0))
	assert.Equal(t, entity.TabID("tab-2"), tl.Tabs[0].ID)
	assert.Equal(t, entity.TabID("tab-0"), tl.Tabs[1].ID)
	assert.Equal(t, entity.TabID("tab-1"), tl.Tabs[2].ID)
	assertDenseOrder(t, tl)

	assert.False(t, tl.Move("tab-0", 3))
	assert.False(t, tl.Move("tab-0", -1))
	assert.False(t, tl.Move("missing", 0))
}

func TestTabList_Reorder(t *testing.T) {
	tl := makeTabs(3)

	require.NoError(t, tl.Reorder([]entity.TabID{"tab-1", "tab-2", "tab-0"}))
	assert.Equal(t, entity.TabID("tab-1"), tl.Tabs[0].ID)
	assert.Equal(t, entity.TabID("tab-2"), tl.Tabs[1].ID)
	assert.Equal(t, entity.TabID("tab-0"), tl.Tabs[2].ID)
	assertDenseOrder(t, tl)
}

func TestTabList_ReorderRejectsBadSets(t *testing.T) {
	tl := makeTabs(3)

	cases := map[string][]entity.TabID{
		"subset":      {"tab-0", "tab-1"},
		"superset":    {"tab-0", "tab-1", "tab-2", "tab-3"},
		"duplicates":  {"tab-0", "tab-0", "tab-1"},
		"unknown ids": {"tab-0", "tab-1", "nope"},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			err := tl.Reorder(ids)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrInvalidArgument)
			assert.Contains(t, err.Error(), "must include all existing tabs")
			// Collection untouched
			assert.Equal(t, entity.TabID("tab-0"), tl.Tabs[0].ID)
			assertDenseOrder(t, tl)
		})
	}
}

func TestTabList_NextWrapsAround(t *testing.T) {
	tl := makeTabs(3)

	assert.Equal(t, entity.TabID("tab-1"), tl.Next(1))
	assert.Equal(t, entity.TabID("tab-2"), tl.Next(-1), "previous from first wraps to last")

	require.True(t, tl.Activate("tab-2"))
	assert.Equal(t, entity.TabID("tab-0"), tl.Next(1), "next from last wraps to first")

	empty := entity.NewTabList()
	assert.Equal(t, entity.TabID(""), empty.Next(1))
}

func TestTabList_OrderInvariantUnderMixedOps(t *testing.T) {
	tl := makeTabs(5)

	require.True(t, tl.Remove("tab-2"))
	require.True(t, tl.Move("tab-4", 0))
	require.NoError(t, tl.Reorder([]entity.TabID{"tab-1", "tab-4", "tab-0", "tab-3"}))
	require.True(t, tl.Remove("tab-1"))

	assertDenseOrder(t, tl)
	assertSingleActive(t, tl)
}
