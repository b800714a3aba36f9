package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/storage"
)

func sessionOrFail(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	sess, ok := auth.SessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no session")
	}
	return sess, ok
}

func (s *Server) handleCreateQuoteRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var req struct {
		ServiceType    string                   `json:"service_type"`
		PickupLocation string                   `json:"pickup_location"`
		Destinations   []repository.Destination `json:"destinations"`
		GrossWeightKg  decimal.Decimal          `json:"gross_weight_kg"`
		VolumeCbm      decimal.Decimal          `json:"volume_cbm"`
		CartonCount    int                      `json:"carton_count"`
		CargoReadyDate time.Time                `json:"cargo_ready_date"`
		SpecialNotes   string                   `json:"special_notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.storage.CreateQuoteRequest(r.Context(), sess, storage.NewQuoteRequest{
		ServiceType:    req.ServiceType,
		PickupLocation: req.PickupLocation,
		Destinations:   req.Destinations,
		GrossWeightKg:  req.GrossWeightKg,
		VolumeCbm:      req.VolumeCbm,
		CartonCount:    req.CartonCount,
		CargoReadyDate: req.CargoReadyDate,
		SpecialNotes:   req.SpecialNotes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListQuoteRequests(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	requests, err := s.storage.ListQuoteRequests(r.Context(), sess)
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

func (s *Server) handleGetQuoteRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	request, err := s.storage.GetQuoteRequest(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var req struct {
		RequestID         string                       `json:"request_id"`
		FreightCost       decimal.Decimal              `json:"freight_cost"`
		InsuranceCost     decimal.Decimal              `json:"insurance_cost"`
		AdditionalCharges []repository.Charge          `json:"additional_charges"`
		DestinationRates  []repository.DestinationRate `json:"destination_rates"`
		CommissionRate    decimal.Decimal              `json:"commission_rate"`
		ValidUntil        time.Time                    `json:"valid_until"`
		Notes             string                       `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := s.storage.CreateQuote(r.Context(), sess, storage.NewQuote{
		RequestID:         req.RequestID,
		FreightCost:       req.FreightCost,
		InsuranceCost:     req.InsuranceCost,
		AdditionalCharges: req.AdditionalCharges,
		DestinationRates:  req.DestinationRates,
		CommissionRate:    req.CommissionRate,
		ValidUntil:        req.ValidUntil,
		Notes:             req.Notes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, quote)
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	quotes, err := s.storage.ListQuotes(r.Context(), sess)
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quotes)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	quote, err := s.storage.GetQuote(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (s *Server) handleUpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := s.storage.UpdateQuoteStatus(r.Context(), sess, mux.Vars(r)["id"], req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// handleAcceptQuote is the conversion endpoint: one call accepts the quote
// and books the shipment, returning both.
func (s *Server) handleAcceptQuote(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	result, err := s.storage.AcceptQuote(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListShipments(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	shipments, err := s.storage.ListShipments(r.Context(), sess)
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipments)
}

func (s *Server) handleGetShipment(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	detail, err := s.storage.GetShipment(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateShipmentStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var req struct {
		Status      string  `json:"status"`
		Location    *string `json:"location"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shipment, err := s.storage.UpdateShipmentStatus(r.Context(), sess, mux.Vars(r)["id"], storage.ShipmentStatusUpdate{
		Status:      req.Status,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleUpdateShipmentCargo(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var req struct {
		CartonCount        *int             `json:"carton_count"`
		GrossWeightKg      *decimal.Decimal `json:"gross_weight_kg"`
		ChargeableWeightKg *decimal.Decimal `json:"chargeable_weight_kg"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shipment, err := s.storage.UpdateShipmentCargo(r.Context(), sess, mux.Vars(r)["id"], repository.ShipmentCargoUpdate{
		CartonCount:        req.CartonCount,
		GrossWeightKg:      req.GrossWeightKg,
		ChargeableWeightKg: req.ChargeableWeightKg,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleAppendTrackingEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}

	var req struct {
		Status      string     `json:"status"`
		Location    *string    `json:"location"`
		Description *string    `json:"description"`
		OccurredAt  *time.Time `json:"occurred_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := s.storage.AppendTrackingEvent(r.Context(), sess, mux.Vars(r)["id"], storage.NewTrackingEvent{
		Status:      req.Status,
		Location:    req.Location,
		Description: req.Description,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}
