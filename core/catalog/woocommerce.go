package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"material-manager/core/errs"
	"material-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Product is a WooCommerce product as far as availability cares.
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
	StockStatus   string           `json:"stock_status"`
	Image         string           `json:"image,omitempty"`
}

type wooProduct struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	StockQuantity *int   `json:"stock_quantity"`
	StockStatus   string `json:"stock_status"`
	Images        []struct {
		Src string `json:"src"`
	} `json:"images"`
}

func (p wooProduct) toProduct() Product {
	out := Product{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		StockQuantity: p.StockQuantity,
		StockStatus:   p.StockStatus,
	}
	out.Price = utils.ToDecimal(p.Price)
	if len(p.Images) > 0 {
		out.Image = p.Images[0].Src
	}
	return out
}

// WooCommerce is a minimal client of the WooCommerce REST API.
type WooCommerce struct {
	baseURL string
	key     string
	secret  string
	timeout time.Duration
}

// NewWooCommerce creates a client. BaseURL is required.
func NewWooCommerce(cfg Config) (*WooCommerce, error) {
	if cfg.BaseURL == "" {
		return nil, errs.Invalid("catalog.base_url", "required")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WooCommerce{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.ConsumerKey,
		secret:  cfg.ConsumerSecret,
		timeout: timeout,
	}, nil
}

func (w *WooCommerce) do(ctx context.Context, a *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := w.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			if left <= 0 {
				return context.DeadlineExceeded
			}
			timeout = left
		}
	}
	if w.key != "" {
		a.BasicAuth(w.key, w.secret)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Timeout(timeout)

	code, body, callErrs := a.Bytes()
	if len(callErrs) > 0 {
		err := errors.Join(callErrs...)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if code >= 400 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("woocommerce answered %d: %s", code, apiErr.Message)
		}
		return fmt.Errorf("woocommerce answered %d", code)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("woocommerce returned invalid json: %w", err)
	}
	return nil
}

// SearchProducts runs the store's product search for term, returning at most perPage products.
func (w *WooCommerce) SearchProducts(ctx context.Context, term string, perPage int) ([]Product, error) {
	if perPage <= 0 {
		perPage = 10
	}
	q := url.Values{}
	q.Set("search", term)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("status", "publish")

	var raw []wooProduct
	if err := w.do(ctx, fiber.Get(w.baseURL+"/products").QueryString(q.Encode()), &raw); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, p.toProduct())
	}
	return products, nil
}

// CreateTag creates a product tag and returns its id.
func (w *WooCommerce) CreateTag(ctx context.Context, name, slug string) (int, error) {
	var tag struct {
		ID int `json:"id"`
	}
	a := fiber.Post(w.baseURL + "/products/tags").JSON(map[string]string{"name": name, "slug": slug})
	if err := w.do(ctx, a, &tag); err != nil {
		return 0, fmt.Errorf("failed to create tag %s: %w", slug, err)
	}
	return tag.ID, nil
}

// DeleteTag removes a product tag permanently.
func (w *WooCommerce) DeleteTag(ctx context.Context, id int) error {
	a := fiber.Delete(w.baseURL + "/products/tags/" + strconv.Itoa(id)).QueryString("force=true")
	if err := w.do(ctx, a, nil); err != nil {
		return fmt.Errorf("failed to delete tag %d: %w", id, err)
	}
	return nil
}
