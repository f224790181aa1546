package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/bitbites/canteen/internal/entity"
	repo "github.com/bitbites/canteen/internal/repository/order"
	"github.com/bitbites/canteen/internal/token"
	"github.com/bitbites/canteen/pkg/errorbank"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	nextID     int64
	orders     map[int64]*entity.Order
	createErr  error
	listErr    error
	advanceErr error

	// beforeAdvance runs between the service's read and its conditional
	// write, simulating a concurrent staff action.
	beforeAdvance func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: make(map[int64]*entity.Order)}
}

func (f *fakeStore) Create(_ context.Context, order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	order.ID = f.nextID
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeStore) List(_ context.Context, _ repo.Filter) ([]*entity.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func (f *fakeStore) AdvanceStatus(_ context.Context, id int64, from, to entity.Status, at time.Time) (int64, error) {
	if f.beforeAdvance != nil {
		f.beforeAdvance()
	}
	if f.advanceErr != nil {
		return 0, f.advanceErr
	}
	order, ok := f.orders[id]
	if !ok || order.Status != from {
		return 0, nil
	}
	order.Status = to
	order.UpdatedAt = at
	return 1, nil
}

func newTestService(store Store) *Service {
	return &Service{
		store: store,
		tokens: token.NewGenerator(
			map[string]string{"medical": "MED", "bitbites": "BIT"},
			token.WithIntN(func(int) int { return 23 }),
		),
		now: func() time.Time { return testNow },
	}
}

func checkoutInput() CreateInput {
	return CreateInput{
		Location:   "medical",
		ClientName: "Asha",
		Lines: []LineInput{
			{ItemID: 1, Name: "Healthy Veg Thali", Price: 120, Quantity: 2},
			{ItemID: 4, Name: "Fresh Fruit Juice", Price: 45, Quantity: 1},
		},
	}
}

func wantKind(t *testing.T, err error, kind errorbank.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := errorbank.From(err).Kind(); got != kind {
		t.Fatalf("error kind = %s, want %s (err: %v)", got, kind, err)
	}
}

func TestCreateComputesTotalAndStartsPending(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	order, err := svc.Create(context.Background(), checkoutInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected a store-assigned id")
	}
	if order.Total != 285 {
		t.Fatalf("total = %v, want 285", order.Total)
	}
	if order.Status != entity.StatusPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
	if !regexp.MustCompile(`^MED-\d{3}$`).MatchString(order.Token) {
		t.Fatalf("token %q does not match MED-NNN", order.Token)
	}
	if !order.CreatedAt.Equal(testNow) || !order.UpdatedAt.Equal(testNow) {
		t.Fatalf("timestamps not set to now: %v / %v", order.CreatedAt, order.UpdatedAt)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(order.Lines))
	}
}

func TestCreateTokenPrefixFollowsLocation(t *testing.T) {
	svc := newTestService(newFakeStore())

	input := checkoutInput()
	input.Location = "bitbites"
	input.Lines[0].ItemID = 7

	order, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Token != "BIT-123" {
		t.Fatalf("token = %q, want BIT-123", order.Token)
	}
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty lines", func(in *CreateInput) { in.Lines = nil }},
		{"zero quantity", func(in *CreateInput) { in.Lines[0].Quantity = 0 }},
		{"negative price", func(in *CreateInput) { in.Lines[0].Price = -1 }},
		{"blank name", func(in *CreateInput) { in.ClientName = "   " }},
		{"unknown location", func(in *CreateInput) { in.Location = "rooftop" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestService(store)
			input := checkoutInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			wantKind(t, err, errorbank.KindBadRequest)
			if len(store.orders) != 0 {
				t.Fatal("invalid input still reached the store")
			}
		})
	}
}

func TestCreateStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("connection refused")
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), checkoutInput())
	wantKind(t, err, errorbank.KindUnavailable)
}

func TestAdvanceWalksThePipeline(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	order, err := svc.Create(context.Background(), checkoutInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, want := range []entity.Status{entity.StatusPreparing, entity.StatusReady, entity.StatusCompleted} {
		updated, err := svc.Advance(context.Background(), order.ID, want)
		if err != nil {
			t.Fatalf("Advance(%s): %v", want, err)
		}
		if updated.Status != want {
			t.Fatalf("status = %s, want %s", updated.Status, want)
		}
		if !updated.UpdatedAt.Equal(testNow) {
			t.Fatalf("updated_at not refreshed: %v", updated.UpdatedAt)
		}
	}

	// The pipeline never runs backwards, even from the terminal state.
	_, err = svc.Advance(context.Background(), order.ID, entity.StatusPending)
	wantKind(t, err, errorbank.KindInvalidTransition)
}

func TestAdvanceRejectsSkipRegressAndNoop(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	order, err := svc.Create(context.Background(), checkoutInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, requested := range []entity.Status{entity.StatusPending, entity.StatusReady, entity.StatusCompleted, entity.StatusCancelled} {
		_, err := svc.Advance(context.Background(), order.ID, requested)
		wantKind(t, err, errorbank.KindInvalidTransition)
	}

	got, err := store.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != entity.StatusPending {
		t.Fatalf("rejected transitions moved the order to %s", got.Status)
	}
}

func TestAdvanceUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeStore())
	_, err := svc.Advance(context.Background(), 1, entity.Status("delivered"))
	wantKind(t, err, errorbank.KindBadRequest)
}

func TestAdvanceUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeStore())
	_, err := svc.Advance(context.Background(), 42, entity.StatusPreparing)
	wantKind(t, err, errorbank.KindNotFound)
}

func TestAdvanceConflictWhenRaced(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	order, err := svc.Create(context.Background(), checkoutInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A second staff action lands between our read and our write.
	store.beforeAdvance = func() {
		store.orders[order.ID].Status = entity.StatusPreparing
	}

	_, err = svc.Advance(context.Background(), order.ID, entity.StatusPreparing)
	wantKind(t, err, errorbank.KindConflict)
}

func TestAdvanceStoreFailure(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	order, err := svc.Create(context.Background(), checkoutInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.advanceErr = errors.New("connection reset")

	_, err = svc.Advance(context.Background(), order.ID, entity.StatusPreparing)
	wantKind(t, err, errorbank.KindUnavailable)
}

func TestListStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection refused")
	svc := newTestService(store)

	_, err := svc.List(context.Background(), repo.Filter{Location: "medical"})
	wantKind(t, err, errorbank.KindUnavailable)
}
