package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"disaster-response/internal/models"
)

// fakeRepository is an in-memory ledger store. ReserveStock mirrors the SQL
// implementation's single check-and-decrement under one lock.
type fakeRepository struct {
	mu     sync.Mutex
	items  map[string]*models.ResourceItem
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[string]*models.ResourceItem)}
}

func (f *fakeRepository) Create(_ context.Context, item *models.ResourceItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.items[item.Name]; exists {
		return models.ErrConflict
	}
	f.nextID++
	item.ID = f.nextID
	copied := *item
	f.items[item.Name] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, id int64, quantity int, status string) (*models.ResourceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.ID == id {
			item.Quantity = quantity
			item.Status = status
			copied := *item
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepository) FindByName(_ context.Context, name string) (*models.ResourceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[name]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context) ([]*models.ResourceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ResourceItem
	for _, item := range f.items {
		copied := *item
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepository) ListInStock(ctx context.Context) ([]*models.ResourceItem, error) {
	all, _ := f.List(ctx)
	var out []*models.ResourceItem
	for _, item := range all {
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRepository) ReserveStock(_ context.Context, name string, quantity int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[name]
	if !ok {
		return 0, models.ErrNotFound
	}
	if item.Quantity < quantity {
		return 0, &models.InsufficientStockError{Item: name, Available: item.Quantity, Requested: quantity}
	}
	item.Quantity -= quantity
	return item.Quantity, nil
}

func (f *fakeRepository) ReleaseStock(_ context.Context, name string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[name]
	if !ok {
		return models.ErrNotFound
	}
	item.Quantity += quantity
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return NewService(repo), repo
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.AddResourceRequest
	}{
		{"empty name", models.AddResourceRequest{Name: "", Quantity: 5, Status: models.ResourceStatusAvailable}},
		{"empty status", models.AddResourceRequest{Name: "Water", Quantity: 5, Status: ""}},
		{"negative quantity", models.AddResourceRequest{Name: "Water", Quantity: -1, Status: models.ResourceStatusAvailable}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tt.req); !errors.Is(err, models.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAddAndUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Add(ctx, models.AddResourceRequest{Name: "Water", Quantity: 10, Status: models.ResourceStatusAvailable})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected a non-zero ID")
	}

	updated, err := svc.Update(ctx, item.ID, models.UpdateResourceRequest{Quantity: 3, Status: models.ResourceStatusLow})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Quantity != 3 || updated.Status != models.ResourceStatusLow {
		t.Errorf("unexpected updated item: %+v", updated)
	}

	if _, err := svc.Update(ctx, 999, models.UpdateResourceRequest{Quantity: 1, Status: models.ResourceStatusLow}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}
}

func TestReserveInsufficientStockLeavesQuantityUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, models.AddResourceRequest{Name: "Water", Quantity: 10, Status: models.ResourceStatusAvailable}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err := svc.Reserve(ctx, "Water", 15)
	var stockErr *models.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 10 || stockErr.Requested != 15 {
		t.Errorf("unexpected counts: %+v", stockErr)
	}

	item, err := svc.FindByName(ctx, "Water")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if item.Quantity != 10 {
		t.Errorf("quantity changed on failed reservation: got %d, want 10", item.Quantity)
	}
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, models.AddResourceRequest{Name: "Blankets", Quantity: 7, Status: models.ResourceStatusAvailable}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	remaining, err := svc.Reserve(ctx, "Blankets", 4)
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if remaining != 3 {
		t.Errorf("remaining = %d, want 3", remaining)
	}

	if err := svc.Release(ctx, "Blankets", 4); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	item, _ := svc.FindByName(ctx, "Blankets")
	if item.Quantity != 7 {
		t.Errorf("round-trip quantity = %d, want 7", item.Quantity)
	}
}

func TestReserveUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Reserve(context.Background(), "Ghost", 1); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestReserveAndReleaseRejectNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Reserve(ctx, "Water", 0); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Reserve(0): expected validation error, got %v", err)
	}
	if err := svc.Release(ctx, "Water", -2); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Release(-2): expected validation error, got %v", err)
	}
}

func TestConcurrentReservationsNeverOverdraw(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const initial = 10
	const workers = 50

	if _, err := svc.Add(ctx, models.AddResourceRequest{Name: "Water", Quantity: initial, Status: models.ResourceStatusAvailable}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Reserve(ctx, "Water", 1); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	var granted int
	for range successes {
		granted++
	}
	if granted != initial {
		t.Errorf("granted %d reservations from stock of %d", granted, initial)
	}

	item, _ := svc.FindByName(ctx, "Water")
	if item.Quantity != 0 {
		t.Errorf("final quantity = %d, want 0", item.Quantity)
	}
}
