package tabs_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
	"github.com/tabdeck/tabdeck/internal/infrastructure/persistence/memory"
	"github.com/tabdeck/tabdeck/internal/logging"
	"github.com/tabdeck/tabdeck/internal/messaging"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func seqIDs() entity.IDGenerator {
	var counter uint64
	return func() string {
		return fmt.Sprintf("id-%d", atomic.AddUint64(&counter, 1))
	}
}

func newManager(t *testing.T) (*tabs.Manager, *memory.Store, *messaging.Bus) {
	t.Helper()
	store := memory.NewStore()
	bus := messaging.NewBus(messaging.WithIDGenerator(seqIDs()))
	mgr := tabs.New(store, bus,
		tabs.WithIDGenerator(seqIDs()),
		tabs.WithClock(func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }),
	)
	return mgr, store, bus
}

func addTab(t *testing.T, mgr *tabs.Manager, title string) entity.Tab {
	t.Helper()
	tab, err := mgr.AddTab(testCtx(), tabs.AddTabInput{Title: title})
	require.NoError(t, err)
	return tab
}

func TestManager_AddTabFirstBecomesActive(t *testing.T) {
	mgr, _, _ := newManager(t)

	a := addTab(t, mgr, "A")
	assert.True(t, a.IsActive)
	assert.Zero(t, a.Order)

	b := addTab(t, mgr, "B")
	assert.False(t, b.IsActive)
	assert.Equal(t, 1, b.Order)

	active, ok := mgr.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, a.ID, active.ID)
}

func TestManager_RemoveActivePromotesSuccessor(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")

	require.NoError(t, mgr.RemoveTab(ctx, a.ID))

	active, ok := mgr.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, b.ID, active.ID)
	assert.Equal(t, 1, mgr.TabCount())
}

func TestManager_RemoveUnknownTab(t *testing.T) {
	mgr, _, _ := newManager(t)
	err := mgr.RemoveTab(testCtx(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Equal(t, "tab with id missing not found", err.Error())
}

func TestManager_ActivateTabIdempotent(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")

	require.NoError(t, mgr.ActivateTab(ctx, b.ID))
	first := mgr.Tabs()
	require.NoError(t, mgr.ActivateTab(ctx, b.ID))
	assert.Equal(t, first, mgr.Tabs(), "second activation changes nothing")

	got, err := mgr.Tab(a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestManager_ReorderTabs(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")
	c := addTab(t, mgr, "C")

	require.NoError(t, mgr.ReorderTabs(ctx, []entity.TabID{b.ID, c.ID, a.ID}))

	got := mgr.Tabs()
	require.Len(t, got, 3)
	assert.Equal(t, []entity.TabID{b.ID, c.ID, a.ID}, []entity.TabID{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Order, got[1].Order, got[2].Order})
}

func TestManager_ReorderRejectsMismatchedSet(t *testing.T) {
	mgr, _, _ := newManager(t)
	addTab(t, mgr, "A")

	err := mgr.ReorderTabs(testCtx(), []entity.TabID{"nonexistent"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "must include all existing tabs")
}

func TestManager_MoveTab(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	a := addTab(t, mgr, "A")
	addTab(t, mgr, "B")
	c := addTab(t, mgr, "C")

	require.NoError(t, mgr.MoveTab(ctx, c.ID, 0))
	got := mgr.Tabs()
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	err := mgr.MoveTab(ctx, a.ID, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	err = mgr.MoveTab(ctx, "missing", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestManager_UpdateTabMergesFields(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")
	require.NoError(t, mgr.ActivateTab(ctx, b.ID))

	title := "renamed"
	pinned := true
	updated, err := mgr.UpdateTab(ctx, a.ID, tabs.TabUpdate{Title: &title, IsPinned: &pinned})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.IsPinned)
	assert.Zero(t, updated.Order, "update must not touch order")
	assert.False(t, updated.IsActive, "update must not touch activation")

	_, err = mgr.UpdateTab(ctx, "missing", tabs.TabUpdate{Title: &title})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestManager_ActivateNextPrevious(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")
	c := addTab(t, mgr, "C")

	require.NoError(t, mgr.ActivateNext(ctx))
	active, _ := mgr.ActiveTab()
	assert.Equal(t, b.ID, active.ID)

	require.NoError(t, mgr.ActivatePrevious(ctx))
	require.NoError(t, mgr.ActivatePrevious(ctx))
	active, _ = mgr.ActiveTab()
	assert.Equal(t, c.ID, active.ID, "previous from first wraps to last")

	require.NoError(t, mgr.ActivateNext(ctx))
	active, _ = mgr.ActiveTab()
	assert.Equal(t, a.ID, active.ID, "next from last wraps to first")
}

func TestManager_GroupLifecycle(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	group, err := mgr.CreateGroup(ctx, tabs.CreateGroupInput{Title: "Work", Color: "#fff"})
	require.NoError(t, err)
	assert.Zero(t, group.Order)
	assert.False(t, group.IsCollapsed)

	a := addTab(t, mgr, "A")
	require.NoError(t, mgr.AddTabToGroup(ctx, a.ID, group.ID))

	members, err := mgr.GroupTabs(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, a.ID, members[0].ID)

	toggled, err := mgr.ToggleGroupCollapse(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCollapsed)

	require.NoError(t, mgr.RemoveTabFromGroup(ctx, a.ID))
	members, err = mgr.GroupTabs(group.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	err = mgr.AddTabToGroup(ctx, a.ID, "missing")
	require.Error(t, err)
	assert.Equal(t, "group with id missing not found", err.Error())
}

func TestManager_RemoveGroupKeepTabs(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	group, err := mgr.CreateGroup(ctx, tabs.CreateGroupInput{Title: "Work"})
	require.NoError(t, err)
	a := addTab(t, mgr, "A")
	require.NoError(t, mgr.AddTabToGroup(ctx, a.ID, group.ID))

	require.NoError(t, mgr.RemoveGroup(ctx, group.ID, true))

	got, err := mgr.Tab(a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.GroupID, "membership cleared, tab kept")
	assert.Empty(t, mgr.Groups())
}

func TestManager_RemoveGroupDropsTabs(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := testCtx()

	group, err := mgr.CreateGroup(ctx, tabs.CreateGroupInput{Title: "Work"})
	require.NoError(t, err)
	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")
	c := addTab(t, mgr, "C")
	require.NoError(t, mgr.AddTabToGroup(ctx, a.ID, group.ID))
	require.NoError(t, mgr.AddTabToGroup(ctx, b.ID, group.ID))

	require.NoError(t, mgr.RemoveGroup(ctx, group.ID, false))

	got := mgr.Tabs()
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Zero(t, got[0].Order)
	assert.True(t, got[0].IsActive, "active tab invariant holds after member removal")
}

func TestManager_PersistsAfterEveryMutation(t *testing.T) {
	mgr, store, _ := newManager(t)
	ctx := testCtx()

	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")
	require.NoError(t, mgr.ActivateTab(ctx, b.ID))

	// A second manager over the same store sees the persisted state.
	other := tabs.New(store, messaging.NewBus())
	require.NoError(t, other.Load(ctx))

	got := other.Tabs()
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	active, ok := other.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, b.ID, active.ID)
}

func TestManager_LoadRepairsInvariants(t *testing.T) {
	ctx := testCtx()
	store := memory.NewStore()

	// A snapshot with gapped orders and no active tab, as an older or
	// buggy writer might have left it.
	require.NoError(t, store.Save(ctx, &entity.StoredTabData{
		Version: entity.StoredDataVersion,
		Tabs: []entity.Tab{
			{ID: "x", Title: "X", Order: 4},
			{ID: "y", Title: "Y", Order: 1},
		},
		Groups: []entity.Group{{ID: "g", Title: "G", Order: 3}},
	}))

	mgr := tabs.New(store, messaging.NewBus())
	require.NoError(t, mgr.Load(ctx))

	got := mgr.Tabs()
	require.Len(t, got, 2)
	assert.Equal(t, entity.TabID("y"), got[0].ID, "stored sequence kept")
	assert.Equal(t, []int{0, 1}, []int{got[0].Order, got[1].Order})
	active, ok := mgr.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, entity.TabID("y"), active.ID, "first tab promoted when none active")
	assert.Zero(t, mgr.Groups()[0].Order)
}

func TestManager_LifecycleMessages(t *testing.T) {
	mgr, _, bus := newManager(t)
	ctx := testCtx()

	var got []entity.Message
	_, err := bus.Subscribe(ctx, messaging.SubscribeInput{
		TabID: "observer",
		Handler: func(msg entity.Message) error {
			got = append(got, msg)
			return nil
		},
	})
	require.NoError(t, err)

	a := addTab(t, mgr, "A")
	b := addTab(t, mgr, "B")
	require.NoError(t, mgr.ActivateTab(ctx, b.ID))
	require.NoError(t, mgr.RemoveTab(ctx, a.ID))

	types := make([]entity.MessageType, 0, len(got))
	for _, msg := range got {
		types = append(types, msg.Type)
	}
	assert.Equal(t, []entity.MessageType{
		entity.MessageTypeTabOpened,
		entity.MessageTypeTabOpened,
		entity.MessageTypeTabActivated,
		entity.MessageTypeTabClosed,
	}, types)
}

func TestManager_ReadsReturnDefensiveCopies(t *testing.T) {
	mgr, _, _ := newManager(t)

	a := addTab(t, mgr, "A")
	got := mgr.Tabs()
	got[0].Title = "mutated"

	fresh, err := mgr.Tab(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", fresh.Title)
}

func TestManager_Clear(t *testing.T) {
	mgr, store, _ := newManager(t)
	ctx := testCtx()

	addTab(t, mgr, "A")
	_, err := mgr.CreateGroup(ctx, tabs.CreateGroupInput{Title: "Work"})
	require.NoError(t, err)

	require.NoError(t, mgr.Clear(ctx))
	assert.Empty(t, mgr.Tabs())
	assert.Empty(t, mgr.Groups())

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Tabs)
}
