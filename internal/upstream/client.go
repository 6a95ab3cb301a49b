// Package upstream is the typed client for the remote commerce API,
// the source of truth for catalog, pricing, and orders. Nothing here
// retries; a failed call is reported to the caller and the user retries
// by re-invoking the action.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/restokasir/kasir-web/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) Menu(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/api/menu", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// MenuItem returns nil, nil when the product does not exist.
func (c *Client) MenuItem(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	err := c.getJSON(ctx, "/api/menu/"+strconv.Itoa(id), &product)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, "/api/kategori", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// PaymentMethods returns only active methods; inactive ones are
// filtered out before anything can display them.
func (c *Client) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	if err := c.getJSON(ctx, "/api/metode-pembayaran", &methods); err != nil {
		return nil, err
	}

	active := methods[:0]
	for _, m := range methods {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

func (c *Client) Orders(ctx context.Context) ([]domain.OrderDetail, error) {
	var orders []domain.OrderDetail
	if err := c.getJSON(ctx, "/api/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order returns nil, nil when the order does not exist.
func (c *Client) Order(ctx context.Context, id int) (*domain.OrderDetail, error) {
	var order domain.OrderDetail
	err := c.getJSON(ctx, "/api/orders/"+strconv.Itoa(id), &order)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder submits a new order and returns the created record. The
// response must carry the order id the views navigate to.
func (c *Client) CreateOrder(ctx context.Context, order domain.CreateOrderRequest) (*domain.OrderDetail, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal create order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created domain.OrderDetail
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	if created.ID == 0 {
		return nil, fmt.Errorf("create order response missing order id")
	}
	return &created, nil
}

// ConfirmPayment uploads a payment-proof image for the given order as
// multipart form data and returns the API's confirmation message.
func (c *Client) ConfirmPayment(ctx context.Context, orderID int, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("bukti", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy payment proof: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	url := c.baseURL + "/api/konfirmasi-pembayaran/" + strconv.Itoa(orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("create confirm payment request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request for %s: %w", path, err)
	}
	return c.do(req, v)
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("commerce api unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Path: req.URL.Path}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
