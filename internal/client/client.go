// Package client is the Go API client for the storefront and the admin
// back office. Public calls (catalog, checkout) need no session; admin
// calls carry the bearer token from an explicit Session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
	"go-galon-gas/internal/service"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New builds a client against baseURL. Pass nil to use http.DefaultClient;
// no extra timeout is layered on top of the transport's own.
func New(baseURL string, httpClient *http.Client, session *Session) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if session == nil {
		session = NewSession()
	}
	return &Client{baseURL: baseURL, http: httpClient, session: session}
}

func (c *Client) Session() *Session {
	return c.session
}

// Login exchanges credentials for a bearer token and stores it in the
// session.
func (c *Client) Login(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp service.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", body, false, &resp); err != nil {
		return nil, err
	}
	c.session.SetToken(resp.AccessToken)
	return &resp, nil
}

// Logout drops the session token locally.
func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var resp struct {
		Products []model.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", nil, false, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	var resp struct {
		Product model.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/products", product, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error) {
	var resp struct {
		Product model.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPut, "/products/"+id, update, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *Client) UpdateProductStock(ctx context.Context, id string, inStock bool) (*model.Product, error) {
	var resp struct {
		Product model.Product `json:"product"`
	}
	body := map[string]bool{"inStock": inStock}
	if err := c.do(ctx, http.MethodPatch, "/products/"+id+"/stock", body, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, true, nil)
}

// PlaceOrder submits a checkout payload. Public; implements the checkout
// flow's OrderPlacer.
func (c *Client) PlaceOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	var resp struct {
		Order model.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", order, false, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var resp struct {
		Orders []model.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var resp struct {
		Order model.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var resp struct {
		Order model.Order `json:"order"`
	}
	body := map[string]model.OrderStatus{"status": status}
	if err := c.do(ctx, http.MethodPut, "/orders/"+id+"/status", body, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+id, nil, true, nil)
}

// GetReport fetches the aggregated sales report; empty bounds mean all time.
func (c *Client) GetReport(ctx context.Context, startDate, endDate string) (*service.Report, error) {
	path := "/orders/report"
	if startDate != "" && endDate != "" {
		path += fmt.Sprintf("?startDate=%s&endDate=%s", startDate, endDate)
	}
	var report service.Report
	if err := c.do(ctx, http.MethodGet, path, nil, true, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, false, nil)
}

// do runs one request/response cycle. A 401 clears the session before
// returning an auth error, which is what forces the re-login redirect.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, authed bool, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperr.Unknown(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperr.Unknown(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		token := c.session.Token()
		if token == "" {
			return apperr.Auth("not logged in")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Transport("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = resp.Status
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			c.session.Clear()
			return apperr.Auth(errBody.Error)
		case http.StatusNotFound:
			return apperr.NotFound("%s", errBody.Error)
		case http.StatusBadRequest:
			return apperr.Validation("%s", errBody.Error)
		default:
			return apperr.Unknown(fmt.Errorf("%s: %s", resp.Status, errBody.Error))
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Unknown(err)
	}
	return nil
}
