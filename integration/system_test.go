//go:build integration
// +build integration

package integration

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"MiniShop/internal/storefront"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

// Runs against a live storefront with Postgres-backed receipts. The cart
// is process state, so this test must be the only client.
func TestSystem_E2E_Checkout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	c := storefront.NewClient(baseURL)

	items, err := c.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected non-empty catalog")
	}

	var pick string
	for _, it := range items {
		if it.Stock > 0 {
			pick = it.Name
			break
		}
	}
	if pick == "" {
		t.Fatalf("no item in stock: %#v", items)
	}

	if _, err := c.Add(ctx, pick, 1); err != nil {
		t.Fatalf("add %q: %v", pick, err)
	}

	cart, err := c.Cart(ctx)
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if cart.TotalUnits < 1 {
		t.Fatalf("cart not updated: %#v", cart)
	}

	rc, err := c.Checkout(ctx)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if rc.ID == "" || rc.ItemCount != cart.TotalUnits {
		t.Fatalf("bad receipt: %#v", rc)
	}

	_, err = c.Checkout(ctx)
	var apiErr *storefront.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict || apiErr.Kind != "empty_cart" {
		t.Fatalf("second checkout err=%v", err)
	}

	if _, err := c.Receipt(ctx, rc.ID); err != nil {
		t.Fatalf("receipt: %v", err)
	}

	if os.Getenv("E2E_RESTART_STOREFRONT") == "1" {
		restartContainer(t, ctx, "storefront")
		waitReady(t, ctx, baseURL+"/readyz")
		if _, err := c.Receipt(ctx, rc.ID); err != nil {
			t.Fatalf("receipt after restart: %v", err)
		}
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
