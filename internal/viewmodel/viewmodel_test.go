package viewmodel

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/inventory/internal/database/dbtest"
	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/inventory"
	"github.com/jask/inventory/internal/notify"
)

// countingRepo records writes that reach the store.
type countingRepo struct {
	*inventory.OfflineItemsRepository
	inserts, updates int
}

func (r *countingRepo) InsertItem(ctx context.Context, it repository.Item) (int64, error) {
	r.inserts++
	return r.OfflineItemsRepository.InsertItem(ctx, it)
}

func (r *countingRepo) UpdateItem(ctx context.Context, it repository.Item) error {
	r.updates++
	return r.OfflineItemsRepository.UpdateItem(ctx, it)
}

func newRepo(t *testing.T) *countingRepo {
	t.Helper()
	store := repository.NewItemRepo(dbtest.Open(t))
	return &countingRepo{OfflineItemsRepository: inventory.NewOfflineItemsRepository(store, notify.NewHub())}
}

func seed(t *testing.T, repo *countingRepo, name, price string, qty int) int64 {
	t.Helper()
	id, err := repo.OfflineItemsRepository.InsertItem(context.Background(), repository.Item{
		Name: name, Price: decimal.RequireFromString(price), Quantity: qty,
	})
	require.NoError(t, err)
	return id
}

func TestValidateInput(t *testing.T) {
	cases := []struct {
		name string
		in   ItemDetails
		want bool
	}{
		{"complete", ItemDetails{Name: "Pen", Price: "1.50", Quantity: "10"}, true},
		{"zero values", ItemDetails{Name: "Pen", Price: "0", Quantity: "0"}, true},
		{"blank name", ItemDetails{Name: "  ", Price: "1", Quantity: "1"}, false},
		{"blank price", ItemDetails{Name: "Pen", Price: "", Quantity: "1"}, false},
		{"blank quantity", ItemDetails{Name: "Pen", Price: "1", Quantity: " "}, false},
		{"negative price", ItemDetails{Name: "Pen", Price: "-1", Quantity: "1"}, false},
		{"fractional quantity", ItemDetails{Name: "Pen", Price: "1", Quantity: "1.5"}, false},
		{"word price", ItemDetails{Name: "Pen", Price: "cheap", Quantity: "1"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateInput(tc.in))
		})
	}
}

func TestToItemFallsBackToZero(t *testing.T) {
	it := ItemDetails{ID: 4, Name: " Pen ", Price: "abc", Quantity: "x"}.ToItem()
	assert.Equal(t, int64(4), it.ID)
	assert.Equal(t, "Pen", it.Name)
	assert.True(t, it.Price.IsZero())
	assert.Zero(t, it.Quantity)

	back := DetailsFromItem(repository.Item{ID: 2, Name: "Ink", Price: decimal.RequireFromString("3.25"), Quantity: 7})
	assert.Equal(t, ItemDetails{ID: 2, Name: "Ink", Price: "3.25", Quantity: "7"}, back)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$3.50", FormatPrice(decimal.RequireFromString("3.5"), "$"))
	assert.Equal(t, "€0.00", FormatPrice(decimal.Zero, "€"))
	assert.Equal(t, "-$1.25", FormatPrice(decimal.RequireFromString("-1.25"), "$"))
}

func TestEntryRejectsBlankDraftsSilently(t *testing.T) {
	repo := newRepo(t)
	vm := NewItemEntryViewModel(repo)
	ctx := context.Background()

	for _, d := range []ItemDetails{
		{Name: "", Price: "1", Quantity: "1"},
		{Name: "Pen", Price: "", Quantity: "1"},
		{Name: "Pen", Price: "1", Quantity: ""},
	} {
		vm.UpdateUiState(d)
		require.False(t, vm.UiState().IsEntryValid)
		saved, err := vm.SaveItem(ctx)
		require.NoError(t, err)
		require.False(t, saved)
	}
	require.Zero(t, repo.inserts, "invalid drafts must never reach the store")

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestEntrySavesValidDraft(t *testing.T) {
	repo := newRepo(t)
	vm := NewItemEntryViewModel(repo)
	ctx := context.Background()

	vm.UpdateUiState(ItemDetails{ID: 99, Name: "Stapler", Price: "8.40", Quantity: "3"})
	require.True(t, vm.UiState().IsEntryValid)
	saved, err := vm.SaveItem(ctx)
	require.NoError(t, err)
	require.True(t, saved)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Stapler", items[0].Name)
	require.NotEqual(t, int64(99), items[0].ID, "entry ignores any draft id")
}

func TestHomeStateFollowsStore(t *testing.T) {
	repo := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	vm := NewHomeViewModel(ctx, repo, time.Second)
	defer vm.Close()

	ch, unsubscribe := vm.UiState.Subscribe()
	defer unsubscribe()

	seed(t, repo, "Glue", "2", 5)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case st := <-ch:
			if len(st.ItemList) == 1 && st.ItemList[0].Name == "Glue" {
				return
			}
		case <-deadline:
			t.Fatal("home state never listed the new item")
		}
	}
}

func TestDetailsStateSellAndDelete(t *testing.T) {
	repo := newRepo(t)
	id := seed(t, repo, "Tape", "1.10", 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vm := NewItemDetailsViewModel(ctx, repo, id, time.Second)
	defer vm.Close()
	require.True(t, vm.UiState.Value().OutOfStock, "out of stock until loaded")
	require.Equal(t, id, vm.ItemID())

	ch, unsubscribe := vm.UiState.Subscribe()
	defer unsubscribe()
	awaitDetails(t, ch, func(s ItemDetailsUiState) bool { return s.ItemDetails.Quantity == "1" && !s.OutOfStock })

	require.NoError(t, vm.ReduceQuantityByOne(ctx))
	awaitDetails(t, ch, func(s ItemDetailsUiState) bool { return s.ItemDetails.Quantity == "0" && s.OutOfStock })

	// selling when out of stock is a no-op
	require.NoError(t, vm.ReduceQuantityByOne(ctx))
	it, err := repo.GetItem(ctx, id)
	require.NoError(t, err)
	require.Zero(t, it.Quantity)

	require.NoError(t, vm.DeleteItem(ctx))
	gone, err := repo.GetItem(ctx, id)
	require.NoError(t, err)
	require.Nil(t, gone)
	// the last known state is kept after deletion
	require.Equal(t, "Tape", vm.UiState.Value().ItemDetails.Name)
}

func awaitDetails(t *testing.T, ch <-chan ItemDetailsUiState, match func(ItemDetailsUiState) bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-ch:
			if match(s) {
				return
			}
		case <-deadline:
			t.Fatal("details state never matched")
		}
	}
}

func TestEditLoadsOnceAndSaves(t *testing.T) {
	repo := newRepo(t)
	id := seed(t, repo, "Ruler", "4.00", 6)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vm := NewItemEditViewModel(ctx, repo, id)
	defer vm.Close()
	select {
	case <-vm.Loaded():
	case <-time.After(2 * time.Second):
		t.Fatal("edit holder never loaded")
	}
	st := vm.UiState()
	require.True(t, st.IsEntryValid)
	require.Equal(t, ItemDetails{ID: id, Name: "Ruler", Price: "4", Quantity: "6"}, st.ItemDetails)

	d := st.ItemDetails
	d.ID = 12345
	d.Price = "3.75"
	vm.UpdateUiState(d)
	require.Equal(t, id, vm.UiState().ItemDetails.ID)

	saved, err := vm.SaveItem(ctx)
	require.NoError(t, err)
	require.True(t, saved)
	it, err := repo.GetItem(ctx, id)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("3.75").Equal(it.Price))

	d.Name = ""
	vm.UpdateUiState(d)
	saved, err = vm.SaveItem(ctx)
	require.NoError(t, err)
	require.False(t, saved)
	require.Equal(t, 1, repo.updates)
}

func TestEditMissingItemNeverLoadsUntilClosed(t *testing.T) {
	repo := newRepo(t)
	vm := NewItemEditViewModel(context.Background(), repo, 777)

	select {
	case <-vm.Loaded():
		t.Fatal("nothing to load yet")
	case <-time.After(50 * time.Millisecond):
	}
	vm.Close()
	select {
	case <-vm.Loaded():
	case <-time.After(time.Second):
		t.Fatal("close should release the pending load")
	}
	require.False(t, vm.UiState().IsEntryValid)
}
