package shipping

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/shipping"
)

// RateInput is the request to quote rates for a parcel
type RateInput struct {
	TenantID uuid.UUID
	From     shipping.Address
	To       shipping.Address
	Parcel   shipping.Parcel
}

// Service fronts the shipping provider with input validation
type Service struct {
	provider shipping.Provider
	logger   *zap.Logger
}

// NewService creates a new shipping service
func NewService(provider shipping.Provider, logger *zap.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// GetRates quotes rates for shipping a parcel
func (s *Service) GetRates(ctx context.Context, input RateInput) ([]shipping.Rate, error) {
	if err := validateAddress(input.From); err != nil {
		return nil, err
	}
	if err := validateAddress(input.To); err != nil {
		return nil, err
	}
	if !input.Parcel.Length.IsPositive() || !input.Parcel.Width.IsPositive() ||
		!input.Parcel.Height.IsPositive() || !input.Parcel.Weight.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PARCEL", "Parcel dimensions and weight must be positive")
	}

	rates, err := s.provider.GetRates(ctx, input.TenantID, input.From, input.To, input.Parcel)
	if err != nil {
		s.logger.Error("Failed to fetch shipping rates", zap.Error(err))
		return nil, shared.NewDomainError("SHIPPING_PROVIDER_ERROR", "Failed to fetch rates")
	}
	return rates, nil
}

// PurchaseLabel buys a label for a quoted rate
func (s *Service) PurchaseLabel(ctx context.Context, tenantID uuid.UUID, rateID string) (*shipping.Label, error) {
	if strings.TrimSpace(rateID) == "" {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate ID cannot be empty")
	}

	label, err := s.provider.PurchaseLabel(ctx, tenantID, rateID)
	if err != nil {
		s.logger.Error("Failed to purchase shipping label",
			zap.String("rate_id", rateID),
			zap.Error(err))
		return nil, shared.NewDomainError("SHIPPING_PROVIDER_ERROR", "Failed to purchase label")
	}

	s.logger.Info("Shipping label purchased",
		zap.String("tracking_number", label.TrackingNumber),
		zap.String("carrier", label.Carrier))
	return label, nil
}

// Track returns the current tracking state of a shipment
func (s *Service) Track(ctx context.Context, tenantID uuid.UUID, carrier, trackingNumber string) (*shipping.Tracking, error) {
	if strings.TrimSpace(carrier) == "" || strings.TrimSpace(trackingNumber) == "" {
		return nil, shared.NewDomainError("INVALID_TRACKING", "Carrier and tracking number are required")
	}

	tracking, err := s.provider.Track(ctx, tenantID, carrier, trackingNumber)
	if err != nil {
		s.logger.Error("Failed to track shipment",
			zap.String("carrier", carrier),
			zap.String("tracking_number", trackingNumber),
			zap.Error(err))
		return nil, shared.NewDomainError("SHIPPING_PROVIDER_ERROR", "Failed to track shipment")
	}
	return tracking, nil
}

func validateAddress(addr shipping.Address) error {
	if strings.TrimSpace(addr.Street1) == "" || strings.TrimSpace(addr.City) == "" ||
		strings.TrimSpace(addr.Zip) == "" || strings.TrimSpace(addr.Country) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Street, city, zip and country are required")
	}
	return nil
}
