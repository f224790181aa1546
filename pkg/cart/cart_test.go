package cart

import "testing"

var (
	thali = Item{ID: 1, Name: "Healthy Veg Thali", Price: 120, Location: "medical"}
	juice = Item{ID: 4, Name: "Fresh Fruit Juice", Price: 45, Location: "medical"}
	wrap  = Item{ID: 8, Name: "Crispy Chicken Wrap", Price: 129, Location: "bitbites"}
)

func mustAdd(t *testing.T, c *Cart, item Item) {
	t.Helper()
	if err := c.Add(item); err != nil {
		t.Fatalf("Add(%s): %v", item.Name, err)
	}
}

func TestAddSameItemIncrementsQuantity(t *testing.T) {
	c := New("medical")
	mustAdd(t, c, thali)
	mustAdd(t, c, thali)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", lines[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New("medical")
	mustAdd(t, c, thali)
	mustAdd(t, c, juice)

	c.UpdateQuantity(thali.ID, 0)

	lines := c.Lines()
	if len(lines) != 1 || lines[0].ItemID != juice.ID {
		t.Fatalf("expected only the juice line, got %+v", lines)
	}

	c.UpdateQuantity(juice.ID, -3)
	if len(c.Lines()) != 0 {
		t.Fatal("negative quantity should remove the line")
	}
}

func TestDerivedValuesTrackLines(t *testing.T) {
	c := New("medical")
	mustAdd(t, c, thali)
	mustAdd(t, c, thali)
	mustAdd(t, c, juice)

	if got := c.ItemCount(); got != 3 {
		t.Fatalf("ItemCount = %d, want 3", got)
	}
	if got := c.Total(); got != 285 {
		t.Fatalf("Total = %v, want 285", got)
	}

	c.UpdateQuantity(thali.ID, 1)
	if got := c.ItemCount(); got != 2 {
		t.Fatalf("ItemCount after update = %d, want 2", got)
	}
	if got := c.Total(); got != 165 {
		t.Fatalf("Total after update = %v, want 165", got)
	}
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	c := New("medical")
	mustAdd(t, c, thali)
	c.Remove(999)
	if len(c.Lines()) != 1 {
		t.Fatal("removing an absent item changed the cart")
	}
}

func TestAddRejectsOtherSite(t *testing.T) {
	c := New("medical")
	if err := c.Add(wrap); err != ErrWrongSite {
		t.Fatalf("Add from other site: got %v, want ErrWrongSite", err)
	}
	if len(c.Lines()) != 0 {
		t.Fatal("rejected add still stored a line")
	}
}

func TestClearKeepsSiteBinding(t *testing.T) {
	c := New("bitbites")
	mustAdd(t, c, wrap)
	c.Clear()

	if len(c.Lines()) != 0 || c.ItemCount() != 0 || c.Total() != 0 {
		t.Fatal("Clear left lines behind")
	}
	if c.Site() != "bitbites" {
		t.Fatalf("Site after Clear = %q", c.Site())
	}
	mustAdd(t, c, wrap)
}

func TestCheckoutSnapshotLeavesCartIntact(t *testing.T) {
	c := New("medical")
	mustAdd(t, c, thali)
	mustAdd(t, c, thali)
	mustAdd(t, c, juice)

	snapshot, err := c.Checkout()
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("snapshot lines = %d, want 2", len(snapshot))
	}
	if snapshot[0].ItemID != thali.ID || snapshot[1].ItemID != juice.ID {
		t.Fatalf("snapshot not in insertion order: %+v", snapshot)
	}

	// Mutating the snapshot must not leak back into the cart.
	snapshot[0].Quantity = 99
	if c.ItemCount() != 3 {
		t.Fatal("snapshot mutation changed the cart")
	}

	// The cart survives checkout so a failed submission can retry.
	if c.ItemCount() != 3 {
		t.Fatal("checkout emptied the cart")
	}
	c.Clear()
	if _, err := c.Checkout(); err != ErrEmpty {
		t.Fatalf("Checkout on empty cart: got %v, want ErrEmpty", err)
	}
}
