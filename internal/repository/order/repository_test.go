package order

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/bitbites/canteen/internal/entity"
)

var repoNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, model := range []any{(*entity.Order)(nil), (*entity.OrderLine)(nil)} {
		if _, err := db.NewCreateTable().Model(model).Exec(ctx); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	return &Repository{writer: db, reader: db}
}

func storedOrder(token, location, name string, at time.Time) *entity.Order {
	return &entity.Order{
		Token:      token,
		Location:   location,
		Total:      120,
		Status:     entity.StatusPending,
		ClientName: name,
		CreatedAt:  at,
		UpdatedAt:  at,
		Lines: []*entity.OrderLine{
			{ItemID: 1, Name: "Healthy Veg Thali", Price: 120, Quantity: 1},
		},
	}
}

func listTokens(t *testing.T, r *Repository, filter Filter) []string {
	t.Helper()
	orders, err := r.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	tokens := make([]string, 0, len(orders))
	for _, order := range orders {
		tokens = append(tokens, order.Token)
	}
	return tokens
}

func TestListReturnsNewestFirst(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	for i, token := range []string{"MED-101", "MED-102", "MED-103"} {
		order := storedOrder(token, "medical", "Asha", repoNow.Add(time.Duration(i)*time.Minute))
		if err := r.Create(ctx, order); err != nil {
			t.Fatalf("Create(%s): %v", token, err)
		}
	}

	tokens := listTokens(t, r, Filter{Location: "medical"})
	want := []string{"MED-103", "MED-102", "MED-101"}
	if len(tokens) != len(want) {
		t.Fatalf("listed %d orders, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("listing order = %v, want %v", tokens, want)
		}
	}
}

func TestListBreaksTimestampTiesByID(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	// Same creation instant; the later insertion must still list first.
	for _, token := range []string{"MED-201", "MED-202"} {
		if err := r.Create(ctx, storedOrder(token, "medical", "Asha", repoNow)); err != nil {
			t.Fatalf("Create(%s): %v", token, err)
		}
	}

	tokens := listTokens(t, r, Filter{Location: "medical"})
	if len(tokens) != 2 || tokens[0] != "MED-202" || tokens[1] != "MED-201" {
		t.Fatalf("tie-broken listing = %v, want [MED-202 MED-201]", tokens)
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	medical := storedOrder("MED-301", "medical", "Asha", repoNow)
	if err := r.Create(ctx, medical); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Create(ctx, storedOrder("BIT-301", "bitbites", "Ravi", repoNow)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if medical.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	orders, err := r.List(ctx, Filter{Location: "medical"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("location filter returned %d orders, want 1", len(orders))
	}
	got := orders[0]
	if got.Token != "MED-301" || got.ClientName != "Asha" || got.Status != entity.StatusPending {
		t.Fatalf("round-tripped order = %+v", got)
	}
	if len(got.Lines) != 1 || got.Lines[0].Name != "Healthy Veg Thali" || got.Lines[0].Quantity != 1 {
		t.Fatalf("round-tripped lines = %+v", got.Lines)
	}

	fetched, err := r.GetByID(ctx, medical.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Token != "MED-301" || len(fetched.Lines) != 1 {
		t.Fatalf("GetByID round-trip = %+v", fetched)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	pending := storedOrder("MED-401", "medical", "Asha", repoNow)
	if err := r.Create(ctx, pending); err != nil {
		t.Fatalf("Create: %v", err)
	}
	preparing := storedOrder("MED-402", "medical", "Ravi", repoNow.Add(time.Minute))
	preparing.Status = entity.StatusPreparing
	if err := r.Create(ctx, preparing); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tokens := listTokens(t, r, Filter{Location: "medical", Statuses: []entity.Status{entity.StatusPreparing}})
	if len(tokens) != 1 || tokens[0] != "MED-402" {
		t.Fatalf("status filter returned %v, want [MED-402]", tokens)
	}
}

func TestAdvanceStatusIsConditionalOnPredecessor(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	order := storedOrder("MED-501", "medical", "Asha", repoNow)
	if err := r.Create(ctx, order); err != nil {
		t.Fatalf("Create: %v", err)
	}

	at := repoNow.Add(time.Minute)
	affected, err := r.AdvanceStatus(ctx, order.ID, entity.StatusPending, entity.StatusPreparing, at)
	if err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	// The predecessor no longer holds, so a racing identical write is a no-op.
	affected, err = r.AdvanceStatus(ctx, order.ID, entity.StatusPending, entity.StatusPreparing, at)
	if err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stale-predecessor write affected %d rows, want 0", affected)
	}

	fetched, err := r.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Status != entity.StatusPreparing {
		t.Fatalf("status = %s, want preparing", fetched.Status)
	}
}
