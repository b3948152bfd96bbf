package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/scanlens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// DefaultEndpointTemplate is the Open Food Facts product endpoint; the
// barcode is substituted into the path.
const DefaultEndpointTemplate = "https://world.openfoodfacts.org/api/v2/product/%s.json"

// productEnvelope is the outer JSON shape returned by the product API.
// A decoded envelope with a nil product means "not found", not a
// transport error.
type productEnvelope struct {
	Product       *envelopeProduct `json:"product"`
	Status        int              `json:"status"`
	StatusVerbose string           `json:"status_verbose"`
}

type envelopeProduct struct {
	ProductName string   `json:"product_name"`
	Quantity    string   `json:"quantity"`
	ImageURL    string   `json:"image_url"`
	Categories  string   `json:"categories"`
	GenericName string   `json:"generic_name"`
	Keywords    []string `json:"_keywords"`
}

// ClientConfig holds configuration for the product lookup client
type ClientConfig struct {
	EndpointTemplate  string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client handles communication with the remote product database
type Client struct {
	httpClient       *http.Client
	endpointTemplate string
	userAgent        string
	rateLimiter      *rate.Limiter
	debug            bool
}

// NewClient creates a new product lookup client
func NewClient(cfg ClientConfig) *Client {
	if cfg.EndpointTemplate == "" {
		cfg.EndpointTemplate = DefaultEndpointTemplate
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ScanLens/1.0"
	}
	if cfg.Timeout == 0 {
		// 10s keeps a dead network from pinning a lookup forever
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst == 0 {
		cfg.Burst = 10
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpointTemplate: cfg.EndpointTemplate,
		userAgent:        cfg.UserAgent,
		rateLimiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Lookup resolves a barcode against the product database. Exactly one GET
// is issued per call; every failure is classified and terminal to this
// attempt (no retries).
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	reqURL := fmt.Sprintf(c.endpointTemplate, url.PathEscape(barcode))
	if _, err := url.ParseRequestURI(reqURL); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEndpoint, err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEndpoint, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.debug {
			log.Printf("[OFF] Request error for barcode %q: %v", barcode, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[OFF] API error for barcode %q - status: %d", barcode, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrTransportFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}
	if len(body) == 0 {
		return nil, domain.ErrEmptyResponse
	}

	var envelope productEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		if c.debug {
			log.Printf("[OFF] JSON decode error for barcode %q: %v", barcode, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}

	if envelope.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	record := MapToProductRecord(barcode, envelope.Product)
	if c.debug {
		log.Printf("[OFF] Resolved barcode %q to %q (category=%q, volume=%q)",
			barcode, record.Name, record.Category, record.VolumeText)
	}

	return record, nil
}
