//go:generate mockgen -source ./types.go -destination=./mocks/storage.go -package=mock_storage
package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/notify"
	"github.com/freightlink/portal/internal/repository"
)

type SequenceRepository interface {
	Next(ctx context.Context, kind repository.SequenceKind) (int64, error)
	NextTx(ctx context.Context, tx db.Tx, kind repository.SequenceKind) (int64, error)
}

type QuoteRequestRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, req *repository.QuoteRequest) error
	GetByID(ctx context.Context, id string) (*repository.QuoteRequest, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.QuoteRequest, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string) error
	GetByCustomerID(ctx context.Context, customerID string) ([]*repository.QuoteRequest, error)
	GetAll(ctx context.Context) ([]*repository.QuoteRequest, error)
}

type QuoteRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, quote *repository.Quote) error
	GetByID(ctx context.Context, id string) (*repository.Quote, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Quote, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string) error
	GetByCustomerID(ctx context.Context, customerID string) ([]*repository.Quote, error)
	GetAll(ctx context.Context) ([]*repository.Quote, error)
	CountAcceptedByRequestID(ctx context.Context, tx db.Tx, requestID string) (int, error)
}

type ShipmentRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, shipment *repository.Shipment) error
	GetByID(ctx context.Context, id string) (*repository.Shipment, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Shipment, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id, status string) error
	UpdateCargo(ctx context.Context, id string, upd repository.ShipmentCargoUpdate) error
	GetByCustomerID(ctx context.Context, customerID string) ([]*repository.Shipment, error)
	GetAll(ctx context.Context) ([]*repository.Shipment, error)
}

type TrackingRepository interface {
	Create(ctx context.Context, event *repository.TrackingEvent) error
	CreateTx(ctx context.Context, tx db.Tx, event *repository.TrackingEvent) error
	GetByShipmentID(ctx context.Context, shipmentID string) ([]*repository.TrackingEvent, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, username, password, role string) (*repository.User, error)
	Authenticate(ctx context.Context, username, password string) (*repository.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *repository.Session) error
	GetByToken(ctx context.Context, token string) (*repository.Session, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// Storage is the service layer over the postgres repositories. Every
// multi-row write runs inside one transaction obtained from db.
type Storage struct {
	db           db.DB
	requestRepo  QuoteRequestRepository
	quoteRepo    QuoteRepository
	shipmentRepo ShipmentRepository
	trackingRepo TrackingRepository
	sequenceRepo SequenceRepository
	notifier     notify.Notifier
	logger       *zap.Logger

	timeNow func() time.Time
}

func NewStorage(
	db db.DB,
	requestRepo QuoteRequestRepository,
	quoteRepo QuoteRepository,
	shipmentRepo ShipmentRepository,
	trackingRepo TrackingRepository,
	sequenceRepo SequenceRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
) *Storage {
	return &Storage{
		db:           db,
		requestRepo:  requestRepo,
		quoteRepo:    quoteRepo,
		shipmentRepo: shipmentRepo,
		trackingRepo: trackingRepo,
		sequenceRepo: sequenceRepo,
		notifier:     notifier,
		logger:       logger,
		timeNow:      func() time.Time { return time.Now().UTC() },
	}
}

type QuoteRequest struct {
	ID             string                     `json:"id"`
	CustomerID     string                     `json:"customer_id"`
	ServiceType    string                     `json:"service_type"`
	PickupLocation string                     `json:"pickup_location"`
	Destinations   []repository.Destination   `json:"destinations"`
	GrossWeightKg  decimal.Decimal            `json:"gross_weight_kg"`
	VolumeCbm      decimal.Decimal            `json:"volume_cbm"`
	CartonCount    int                        `json:"carton_count"`
	CargoReadyDate time.Time                  `json:"cargo_ready_date"`
	SpecialNotes   string                     `json:"special_notes,omitempty"`
	Status         string                     `json:"status"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

type Quote struct {
	ID                string                       `json:"id"`
	RequestID         string                       `json:"request_id"`
	CustomerID        string                       `json:"customer_id"`
	StaffID           string                       `json:"staff_id"`
	FreightCost       decimal.Decimal              `json:"freight_cost"`
	InsuranceCost     decimal.Decimal              `json:"insurance_cost"`
	AdditionalCharges []repository.Charge          `json:"additional_charges"`
	DestinationRates  []repository.DestinationRate `json:"destination_rates"`
	CommissionRate    decimal.Decimal              `json:"commission_rate"`
	TotalCost         decimal.Decimal              `json:"total_cost"`
	ValidUntil        time.Time                    `json:"valid_until"`
	Status            string                       `json:"status"`
	Notes             string                       `json:"notes,omitempty"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
}

type Shipment struct {
	ID                 string                   `json:"id"`
	QuoteID            string                   `json:"quote_id"`
	CustomerID         string                   `json:"customer_id"`
	Status             string                   `json:"status"`
	Origin             string                   `json:"origin"`
	Destinations       []repository.Destination `json:"destinations"`
	CartonCount        int                      `json:"carton_count"`
	GrossWeightKg      decimal.Decimal          `json:"gross_weight_kg"`
	ChargeableWeightKg decimal.Decimal          `json:"chargeable_weight_kg"`
	EstimatedDelivery  time.Time                `json:"estimated_delivery"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

type TrackingEvent struct {
	ID          int64     `json:"id"`
	ShipmentID  string    `json:"shipment_id"`
	Status      string    `json:"status"`
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ShipmentDetail is a shipment together with its audit log, newest event
// first.
type ShipmentDetail struct {
	Shipment Shipment        `json:"shipment"`
	Events   []TrackingEvent `json:"tracking_events"`
}

// ConversionResult is what AcceptQuote hands back: the accepted quote and
// the shipment created from it.
type ConversionResult struct {
	Quote    Quote    `json:"quote"`
	Shipment Shipment `json:"shipment"`
}

type NewQuoteRequest struct {
	ServiceType    string
	PickupLocation string
	Destinations   []repository.Destination
	GrossWeightKg  decimal.Decimal
	VolumeCbm      decimal.Decimal
	CartonCount    int
	CargoReadyDate time.Time
	SpecialNotes   string
}

type NewQuote struct {
	RequestID         string
	FreightCost       decimal.Decimal
	InsuranceCost     decimal.Decimal
	AdditionalCharges []repository.Charge
	DestinationRates  []repository.DestinationRate
	CommissionRate    decimal.Decimal
	ValidUntil        time.Time
	Notes             string
}

type NewTrackingEvent struct {
	Status      string
	Location    *string
	Description *string
	OccurredAt  *time.Time
}

type ShipmentStatusUpdate struct {
	Status      string
	Location    *string
	Description *string
}

func requestFromRepo(r *repository.QuoteRequest) QuoteRequest {
	return QuoteRequest{
		ID:             r.ID,
		CustomerID:     r.CustomerID,
		ServiceType:    r.ServiceType,
		PickupLocation: r.PickupLocation,
		Destinations:   r.Destinations,
		GrossWeightKg:  r.GrossWeightKg,
		VolumeCbm:      r.VolumeCbm,
		CartonCount:    r.CartonCount,
		CargoReadyDate: r.CargoReadyDate,
		SpecialNotes:   r.SpecialNotes,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func quoteFromRepo(q *repository.Quote) Quote {
	return Quote{
		ID:                q.ID,
		RequestID:         q.RequestID,
		CustomerID:        q.CustomerID,
		StaffID:           q.StaffID,
		FreightCost:       q.FreightCost,
		InsuranceCost:     q.InsuranceCost,
		AdditionalCharges: q.AdditionalCharges,
		DestinationRates:  q.DestinationRates,
		CommissionRate:    q.CommissionRate,
		TotalCost:         q.TotalCost,
		ValidUntil:        q.ValidUntil,
		Status:            q.Status,
		Notes:             q.Notes,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}

func shipmentFromRepo(s *repository.Shipment) Shipment {
	return Shipment{
		ID:                 s.ID,
		QuoteID:            s.QuoteID,
		CustomerID:         s.CustomerID,
		Status:             s.Status,
		Origin:             s.Origin,
		Destinations:       s.Destinations,
		CartonCount:        s.CartonCount,
		GrossWeightKg:      s.GrossWeightKg,
		ChargeableWeightKg: s.ChargeableWeightKg,
		EstimatedDelivery:  s.EstimatedDelivery,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func eventFromRepo(e *repository.TrackingEvent) TrackingEvent {
	return TrackingEvent{
		ID:          e.ID,
		ShipmentID:  e.ShipmentID,
		Status:      e.Status,
		Location:    e.Location,
		Description: e.Description,
		OccurredAt:  e.OccurredAt,
	}
}
