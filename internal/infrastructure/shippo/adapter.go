package shippo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/shipping"
)

// maxResponseSize is the maximum allowed response size from the Shippo API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Adapter implements the shipping.Provider interface against the Shippo API
type Adapter struct {
	config     *Config
	httpClient *http.Client

	// tenantConfigs stores per-tenant configurations
	tenantConfigs map[uuid.UUID]*Config
	mu            sync.RWMutex // Protects tenantConfigs map
}

// NewAdapter creates a new Shippo adapter with the given default
// configuration. A nil config is allowed; tenants must then be configured
// individually.
func NewAdapter(config *Config) (*Adapter, error) {
	if config != nil {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	timeout := 30 * time.Second
	if config != nil {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	return &Adapter{
		config:        config,
		httpClient:    &http.Client{Timeout: timeout},
		tenantConfigs: make(map[uuid.UUID]*Config),
	}, nil
}

// SetTenantConfig sets the configuration for a specific tenant
func (a *Adapter) SetTenantConfig(tenantID uuid.UUID, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tenantConfigs[tenantID] = config
	return nil
}

func (a *Adapter) getTenantConfig(tenantID uuid.UUID) (*Config, error) {
	a.mu.RLock()
	config, ok := a.tenantConfigs[tenantID]
	a.mu.RUnlock()
	if ok {
		return config, nil
	}
	if a.config != nil {
		return a.config, nil
	}
	return nil, shipping.ErrNotConfigured
}

// GetRates creates a shipment and returns the quoted rates
func (a *Adapter) GetRates(ctx context.Context, tenantID uuid.UUID, from, to shipping.Address, parcel shipping.Parcel) ([]shipping.Rate, error) {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	payload := shipmentRequest{
		AddressFrom: toAddressPayload(from),
		AddressTo:   toAddressPayload(to),
		Parcels: []parcelPayload{{
			Length:       parcel.Length.String(),
			Width:        parcel.Width.String(),
			Height:       parcel.Height.String(),
			DistanceUnit: "in",
			Weight:       parcel.Weight.String(),
			MassUnit:     "oz",
		}},
		Async: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("shippo: failed to encode shipment: %w", err)
	}

	respBody, err := a.doRequest(ctx, config, http.MethodPost, "/shipments/", body)
	if err != nil {
		return nil, err
	}

	var resp shipmentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("shippo: failed to parse shipment response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("shippo: shipment rating failed: %s", joinMessages(resp.Messages))
	}

	rates := make([]shipping.Rate, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			continue
		}
		rates = append(rates, shipping.Rate{
			RateID:       r.ObjectID,
			Carrier:      r.Provider,
			Service:      r.ServiceLevel.Name,
			Amount:       amount,
			Currency:     r.Currency,
			EstimateDays: r.EstimatedDays,
		})
	}
	return rates, nil
}

// PurchaseLabel buys a label for a previously quoted rate
func (a *Adapter) PurchaseLabel(ctx context.Context, tenantID uuid.UUID, rateID string) (*shipping.Label, error) {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(transactionRequest{
		Rate:          rateID,
		LabelFileType: "PDF",
		Async:         false,
	})
	if err != nil {
		return nil, fmt.Errorf("shippo: failed to encode transaction: %w", err)
	}

	respBody, err := a.doRequest(ctx, config, http.MethodPost, "/transactions/", body)
	if err != nil {
		return nil, err
	}

	var resp transactionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("shippo: failed to parse transaction response: %w", err)
	}
	if resp.Status != "SUCCESS" {
		msg := joinMessages(resp.Messages)
		if strings.Contains(strings.ToLower(msg), "rate") && strings.Contains(strings.ToLower(msg), "expired") {
			return nil, shipping.ErrRateExpired
		}
		return nil, fmt.Errorf("shippo: label purchase failed: %s", msg)
	}

	amount, _ := decimal.NewFromString(resp.Rate.Amount)
	return &shipping.Label{
		LabelID:        resp.ObjectID,
		TrackingNumber: resp.TrackingNumber,
		Carrier:        resp.Rate.Provider,
		LabelURL:       resp.LabelURL,
		Amount:         amount,
	}, nil
}

// Track returns the current tracking state of a shipment
func (a *Adapter) Track(ctx context.Context, tenantID uuid.UUID, carrier, trackingNumber string) (*shipping.Tracking, error) {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/tracks/%s/%s", url.PathEscape(carrier), url.PathEscape(trackingNumber))
	respBody, err := a.doRequest(ctx, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp trackResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("shippo: failed to parse track response: %w", err)
	}

	tracking := &shipping.Tracking{
		Carrier:        resp.Carrier,
		TrackingNumber: resp.TrackingNumber,
		Status:         shipping.TrackingUnknown,
	}
	if resp.TrackingStatus != nil {
		tracking.Status = mapTrackingStatus(resp.TrackingStatus.Status)
		tracking.StatusDetail = resp.TrackingStatus.StatusDetails
		if resp.TrackingStatus.Location.City != "" {
			tracking.Location = resp.TrackingStatus.Location.City + ", " + resp.TrackingStatus.Location.State
		}
	}
	return tracking, nil
}

// doRequest performs an authenticated HTTP request against the Shippo API
func (a *Adapter) doRequest(ctx context.Context, config *Config, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("shippo: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "ShippoToken "+config.APIToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shippo: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("shippo: HTTP %d: %s", resp.StatusCode, truncate(respBody, 200))
	}
	return respBody, nil
}

// toAddressPayload converts a domain address to the wire format
func toAddressPayload(addr shipping.Address) addressPayload {
	return addressPayload{
		Name:    addr.Name,
		Street1: addr.Street1,
		Street2: addr.Street2,
		City:    addr.City,
		State:   addr.State,
		Zip:     addr.Zip,
		Country: addr.Country,
		Phone:   addr.Phone,
		Email:   addr.Email,
	}
}

// mapTrackingStatus maps a Shippo tracking status to the normalized status
func mapTrackingStatus(status string) shipping.TrackingStatus {
	switch status {
	case "PRE_TRANSIT":
		return shipping.TrackingPreTransit
	case "TRANSIT":
		return shipping.TrackingInTransit
	case "DELIVERED":
		return shipping.TrackingDelivered
	case "RETURNED":
		return shipping.TrackingReturned
	case "FAILURE":
		return shipping.TrackingFailure
	default:
		return shipping.TrackingUnknown
	}
}

// joinMessages flattens API messages into one error string
func joinMessages(messages []apiMessage) string {
	if len(messages) == 0 {
		return "no details provided"
	}
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "; ")
}

// truncate clips a response body for inclusion in error messages
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Ensure Adapter implements the Provider interface
var _ shipping.Provider = (*Adapter)(nil)
