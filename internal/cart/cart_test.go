package cart

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restokasir/kasir-web/internal/domain"
)

func newTestStore() *Store {
	return NewStore(time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var (
	ayamGoreng = domain.Product{ID: 1, Name: "Ayam Goreng", Price: 20000}
	esTeh      = domain.Product{ID: 2, Name: "Es Teh", Price: 15000}
)

func TestStore_Add(t *testing.T) {
	t.Run("adding the same product twice yields one line with quantity 2", func(t *testing.T) {
		store := newTestStore()
		store.Add("sess", ayamGoreng)
		store.Add("sess", ayamGoreng)

		c := store.Get("sess")
		if len(c.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(c.Lines))
		}
		if c.Lines[0].Quantity != 2 {
			t.Errorf("expected quantity 2, got %d", c.Lines[0].Quantity)
		}
	})

	t.Run("distinct products keep first-add order", func(t *testing.T) {
		store := newTestStore()
		store.Add("sess", esTeh)
		store.Add("sess", ayamGoreng)
		store.Add("sess", esTeh)

		c := store.Get("sess")
		if len(c.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(c.Lines))
		}
		if c.Lines[0].Product.ID != esTeh.ID || c.Lines[1].Product.ID != ayamGoreng.ID {
			t.Errorf("unexpected order: %v", c.Lines)
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		store := newTestStore()
		store.Add("a", ayamGoreng)

		if c := store.Get("b"); !c.IsEmpty() {
			t.Errorf("expected empty cart for fresh session, got %d lines", len(c.Lines))
		}
	})
}

func TestStore_SetQuantity(t *testing.T) {
	t.Run("sets quantity on an existing line", func(t *testing.T) {
		store := newTestStore()
		store.Add("sess", ayamGoreng)
		store.SetQuantity("sess", ayamGoreng.ID, 5)

		if got := store.Get("sess").Lines[0].Quantity; got != 5 {
			t.Errorf("expected quantity 5, got %d", got)
		}
	})

	t.Run("zero or below removes the line, others unaffected", func(t *testing.T) {
		store := newTestStore()
		store.Add("sess", ayamGoreng)
		store.Add("sess", esTeh)
		store.Add("sess", esTeh)
		store.SetQuantity("sess", ayamGoreng.ID, 0)

		c := store.Get("sess")
		if len(c.Lines) != 1 {
			t.Fatalf("expected 1 line left, got %d", len(c.Lines))
		}
		if c.Lines[0].Product.ID != esTeh.ID || c.Lines[0].Quantity != 2 {
			t.Errorf("remaining line changed: %+v", c.Lines[0])
		}

		store.SetQuantity("sess", esTeh.ID, -1)
		if c := store.Get("sess"); !c.IsEmpty() {
			t.Errorf("expected empty cart, got %d lines", len(c.Lines))
		}
	})

	t.Run("unknown product id is a no-op", func(t *testing.T) {
		store := newTestStore()
		store.Add("sess", ayamGoreng)
		store.SetQuantity("sess", 999, 3)

		c := store.Get("sess")
		if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 {
			t.Errorf("cart changed unexpectedly: %+v", c.Lines)
		}
	})
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore()
	store.Add("sess", ayamGoreng)
	store.Add("sess", esTeh)
	store.Clear("sess")

	c := store.Get("sess")
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(c.Lines))
	}
	if !c.Total().IsZero() {
		t.Errorf("expected zero total after clear, got %s", c.Total())
	}
}

func TestCart_Totals(t *testing.T) {
	t.Run("total is exactly subtotal times 1.11", func(t *testing.T) {
		store := newTestStore()
		store.Add("sess", ayamGoreng)
		store.Add("sess", ayamGoreng)
		store.Add("sess", esTeh)

		c := store.Get("sess")
		if got := c.Subtotal(); !got.Equal(decimal.NewFromInt(55000)) {
			t.Errorf("expected subtotal 55000, got %s", got)
		}
		if got := c.Tax(); !got.Equal(decimal.NewFromInt(6050)) {
			t.Errorf("expected tax 6050, got %s", got)
		}
		if got := c.Total(); !got.Equal(decimal.NewFromInt(61050)) {
			t.Errorf("expected total 61050, got %s", got)
		}
		if got := domain.FormatRupiah(c.Total()); got != "Rp 61.050" {
			t.Errorf("expected display Rp 61.050, got %q", got)
		}
	})

	t.Run("odd subtotals keep full precision", func(t *testing.T) {
		c := Cart{Lines: []Line{{Product: domain.Product{ID: 3, Price: 333}, Quantity: 1}}}
		want := decimal.RequireFromString("369.63")
		if got := c.Total(); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("total items sums quantities", func(t *testing.T) {
		c := Cart{Lines: []Line{
			{Product: ayamGoreng, Quantity: 2},
			{Product: esTeh, Quantity: 3},
		}}
		if got := c.TotalItems(); got != 5 {
			t.Errorf("expected 5 items, got %d", got)
		}
	})
}

func TestStore_CheckoutGuard(t *testing.T) {
	store := newTestStore()
	if !store.BeginCheckout("sess") {
		t.Fatal("first BeginCheckout should win the flag")
	}
	if store.BeginCheckout("sess") {
		t.Fatal("second BeginCheckout while in flight should lose")
	}
	store.EndCheckout("sess")
	if !store.BeginCheckout("sess") {
		t.Fatal("BeginCheckout after EndCheckout should win again")
	}
}

func TestStore_EvictIdle(t *testing.T) {
	store := newTestStore()
	store.Add("old", ayamGoreng)
	store.Add("busy", esTeh)
	if !store.BeginCheckout("busy") {
		t.Fatal("BeginCheckout failed")
	}

	future := time.Now().Add(2 * time.Hour)
	if n := store.evictIdle(future); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}

	if c := store.Get("old"); !c.IsEmpty() {
		t.Error("idle cart should have been evicted")
	}
	if c := store.Get("busy"); c.IsEmpty() {
		t.Error("cart with checkout in flight must not be evicted")
	}
}
