package shopclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

// Client is a typed HTTP client for the shop API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func New(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// CreateProduct posts a new product and returns its location path.
func (c *Client) CreateProduct(name string, price, weight float64) (string, error) {
	payload := map[string]interface{}{
		"name":   name,
		"price":  price,
		"weight": weight,
	}
	return c.post("/products", payload)
}

// CreateOrder posts a new order over the given product IDs and returns
// its location path.
func (c *Client) CreateOrder(productIDs []string) (string, error) {
	payload := map[string]interface{}{
		"product_list": productIDs,
	}
	return c.post("/orders", payload)
}

func (c *Client) post(path string, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("shop service returned error status: %d", resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	c.logger.WithFields(logrus.Fields{
		"path":     path,
		"location": location,
	}).Info("Resource created")

	return location, nil
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := c.get("/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListOrders fetches all orders.
func (c *Client) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := c.get("/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shop service returned error status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
