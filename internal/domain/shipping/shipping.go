package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errors returned by shipping providers
var (
	ErrNotConfigured = errors.New("shipping: provider not configured for tenant")
	ErrRateExpired   = errors.New("shipping: rate is no longer purchasable")
	ErrUnavailable   = errors.New("shipping: provider temporarily unavailable")
)

// Address is a shipping address
type Address struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Parcel describes a package. Weight in ounces, dimensions in inches.
type Parcel struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
	Weight decimal.Decimal `json:"weight"`
}

// Rate is a purchasable shipping rate quote
type Rate struct {
	RateID       string          `json:"rate_id"`
	Carrier      string          `json:"carrier"`
	Service      string          `json:"service"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	EstimateDays int             `json:"estimate_days"`
}

// Label is a purchased shipping label
type Label struct {
	LabelID        string          `json:"label_id"`
	TrackingNumber string          `json:"tracking_number"`
	Carrier        string          `json:"carrier"`
	LabelURL       string          `json:"label_url"`
	Amount         decimal.Decimal `json:"amount"`
}

// TrackingStatus is a normalized tracking state
type TrackingStatus string

const (
	TrackingUnknown    TrackingStatus = "unknown"
	TrackingPreTransit TrackingStatus = "pre_transit"
	TrackingInTransit  TrackingStatus = "in_transit"
	TrackingDelivered  TrackingStatus = "delivered"
	TrackingReturned   TrackingStatus = "returned"
	TrackingFailure    TrackingStatus = "failure"
)

// Tracking is the latest known state of a shipment
type Tracking struct {
	Carrier        string         `json:"carrier"`
	TrackingNumber string         `json:"tracking_number"`
	Status         TrackingStatus `json:"status"`
	StatusDetail   string         `json:"status_detail"`
	Location       string         `json:"location,omitempty"`
}

// Provider is the port implemented by the shipping adapter.
type Provider interface {
	// GetRates quotes rates for shipping a parcel between two addresses
	GetRates(ctx context.Context, tenantID uuid.UUID, from, to Address, parcel Parcel) ([]Rate, error)

	// PurchaseLabel buys a label for a previously quoted rate
	PurchaseLabel(ctx context.Context, tenantID uuid.UUID, rateID string) (*Label, error)

	// Track returns the current tracking state of a shipment
	Track(ctx context.Context, tenantID uuid.UUID, carrier, trackingNumber string) (*Tracking, error)
}
