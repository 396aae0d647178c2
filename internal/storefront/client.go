package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MiniShop/internal/inventory"
	"MiniShop/internal/receipt"
	"MiniShop/pkg/kit"
)

var (
	ErrUnavailable = errors.New("storefront unavailable")
	ErrBadStatus   = errors.New("storefront bad status")
)

// APIError is a non-2xx reply. It unwraps to ErrBadStatus.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("storefront: status=%d kind=%s: %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("storefront: status=%d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return ErrBadStatus }

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) Items(ctx context.Context) ([]inventory.ItemView, error) {
	var out []inventory.ItemView
	err := c.do(ctx, http.MethodGet, "/items", nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Item(ctx context.Context, term string) (inventory.ItemView, error) {
	var out inventory.ItemView
	err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(term), nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Search(ctx context.Context, term string) ([]inventory.ItemView, error) {
	var out []inventory.ItemView
	err := c.do(ctx, http.MethodGet, "/search?q="+url.QueryEscape(term), nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Cart(ctx context.Context) (inventory.CartView, error) {
	var out inventory.CartView
	err := c.do(ctx, http.MethodGet, "/cart", nil, http.StatusOK, &out)
	return out, err
}

// Add puts qty units of the item matching name in the cart. A qty of zero
// lets the server apply its default of one.
func (c *Client) Add(ctx context.Context, name string, qty int) (inventory.AddResult, error) {
	req := addReq{Name: name}
	if qty != 0 {
		req.Quantity = &qty
	}
	var out inventory.AddResult
	err := c.do(ctx, http.MethodPost, "/cart/items", req, http.StatusOK, &out)
	return out, err
}

// Remove takes qty units of the matching item out of the cart. A qty of
// zero removes the whole line.
func (c *Client) Remove(ctx context.Context, term string, qty int) (inventory.RemoveResult, error) {
	path := "/cart/items/" + url.PathEscape(term)
	if qty != 0 {
		path += "?quantity=" + strconv.Itoa(qty)
	}
	var out inventory.RemoveResult
	err := c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Checkout(ctx context.Context) (receipt.Receipt, error) {
	var out receipt.Receipt
	err := c.do(ctx, http.MethodPost, "/checkout", nil, http.StatusCreated, &out)
	return out, err
}

func (c *Client) Receipt(ctx context.Context, id string) (receipt.Receipt, error) {
	var out receipt.Receipt
	err := c.do(ctx, http.MethodGet, "/receipts/"+url.PathEscape(id), nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var er kit.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if json.Unmarshal(raw, &er) != nil || er.Error == "" {
			er.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Kind: er.Kind, Message: er.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
