package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrObjectNotFound = errors.New("not found")

// Quote request lifecycle.
const (
	RequestStatusAwaitingQuote = "awaiting_quote"
	RequestStatusQuoted        = "quoted"
	RequestStatusQuoteAccepted = "quote_accepted"
	RequestStatusQuoteRejected = "quote_rejected"
)

// Quote lifecycle. Accepted is only ever written by the conversion
// transaction, never by a direct status update.
const (
	QuoteStatusPending   = "pending"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusRejected  = "rejected"
	QuoteStatusFinalized = "finalized"
	QuoteStatusExpired   = "expired"
)

// SequenceKind names an ID namespace in the sequences table.
type SequenceKind string

const (
	SequenceKindQuoteRequest SequenceKind = "quote_request"
	SequenceKindQuote        SequenceKind = "quote"
	SequenceKindShipment     SequenceKind = "shipment"
)

var sequencePrefixes = map[SequenceKind]string{
	SequenceKindQuoteRequest: "QR",
	SequenceKindQuote:        "Q",
	SequenceKindShipment:     "FS",
}

// FormatID renders a sequencer value as the human-readable identifier
// persisted as the entity's primary key, e.g. Q-00007 or FS-00012.
func (k SequenceKind) FormatID(n int64) string {
	return fmt.Sprintf("%s-%05d", sequencePrefixes[k], n)
}

// Destination is one leg of a request's destination set: which warehouse the
// cargo goes to and how much of it.
type Destination struct {
	Warehouse   string          `json:"warehouse"`
	Address     string          `json:"address"`
	CartonCount int             `json:"carton_count"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
}

// DestinationList is stored as a jsonb column.
type DestinationList []Destination

func (d DestinationList) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *DestinationList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DestinationList", src)
	}
}

// Charge is one itemized line of a quote's cost breakdown.
type Charge struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ChargeList is stored as a jsonb column.
type ChargeList []Charge

func (c ChargeList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ChargeList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ChargeList", src)
	}
}

// DestinationRate prices one destination warehouse within a quote.
type DestinationRate struct {
	Warehouse string          `json:"warehouse"`
	Rate      decimal.Decimal `json:"rate"`
}

// RateList is stored as a jsonb column.
type RateList []DestinationRate

func (r RateList) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *RateList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RateList", src)
	}
}

type QuoteRequest struct {
	ID             string          `db:"id"`
	CustomerID     string          `db:"customer_id"`
	ServiceType    string          `db:"service_type"`
	PickupLocation string          `db:"pickup_location"`
	Destinations   DestinationList `db:"destinations"`
	GrossWeightKg  decimal.Decimal `db:"gross_weight_kg"`
	VolumeCbm      decimal.Decimal `db:"volume_cbm"`
	CartonCount    int             `db:"carton_count"`
	CargoReadyDate time.Time       `db:"cargo_ready_date"`
	SpecialNotes   string          `db:"special_notes"`
	Status         string          `db:"status"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type Quote struct {
	ID                string          `db:"id"`
	RequestID         string          `db:"request_id"`
	CustomerID        string          `db:"customer_id"`
	StaffID           string          `db:"staff_id"`
	FreightCost       decimal.Decimal `db:"freight_cost"`
	InsuranceCost     decimal.Decimal `db:"insurance_cost"`
	AdditionalCharges ChargeList      `db:"additional_charges"`
	DestinationRates  RateList        `db:"destination_rates"`
	CommissionRate    decimal.Decimal `db:"commission_rate"`
	TotalCost         decimal.Decimal `db:"total_cost"`
	ValidUntil        time.Time       `db:"valid_until"`
	Status            string          `db:"status"`
	Notes             string          `db:"notes"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

type Shipment struct {
	ID                 string          `db:"id"`
	QuoteID            string          `db:"quote_id"`
	CustomerID         string          `db:"customer_id"`
	Status             string          `db:"status"`
	Origin             string          `db:"origin"`
	Destinations       DestinationList `db:"destinations"`
	CartonCount        int             `db:"carton_count"`
	GrossWeightKg      decimal.Decimal `db:"gross_weight_kg"`
	ChargeableWeightKg decimal.Decimal `db:"chargeable_weight_kg"`
	EstimatedDelivery  time.Time       `db:"estimated_delivery"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

type TrackingEvent struct {
	ID          int64     `db:"id"`
	ShipmentID  string    `db:"shipment_id"`
	Status      string    `db:"status"`
	Location    *string   `db:"location"`
	Description *string   `db:"description"`
	OccurredAt  time.Time `db:"occurred_at"`
	CreatedAt   time.Time `db:"created_at"`
}

// ShipmentCargoUpdate is the closed set of cargo fields staff may patch on a
// shipment. Nil means leave the column untouched.
type ShipmentCargoUpdate struct {
	CartonCount        *int
	GrossWeightKg      *decimal.Decimal
	ChargeableWeightKg *decimal.Decimal
}

type User struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

type Session struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
