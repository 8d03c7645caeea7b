package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/papinesquik/SmokeRider/internal/model"
	"github.com/papinesquik/SmokeRider/internal/service"
	"github.com/papinesquik/SmokeRider/internal/watch"
)

type createOrderRequest struct {
	ClientID string            `json:"clientId"`
	Items    []model.OrderItem `json:"items"`
}

type riderActionRequest struct {
	RiderID string `json:"riderId"`
}

type clientActionRequest struct {
	ClientID string `json:"clientId"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := s.svc.CreateOrder(r.Context(), req.ClientID, req.Items)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.svc.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	orders, err := s.svc.ListPending(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleAcceptOrder(w http.ResponseWriter, r *http.Request) {
	var req riderActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RiderID == "" {
		respondError(w, http.StatusBadRequest, "riderId required")
		return
	}

	accepted, err := s.svc.AcceptOrder(r.Context(), mux.Vars(r)["id"], req.RiderID)
	if err != nil {
		// Store failure, not a lost race: the rider may try again.
		respondError(w, http.StatusServiceUnavailable, "please retry")
		return
	}
	if !accepted {
		respondError(w, http.StatusConflict, "order no longer available")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"accepted": true})
}

func (s *Server) handleDispatchOrder(w http.ResponseWriter, r *http.Request) {
	var req riderActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RiderID == "" {
		respondError(w, http.StatusBadRequest, "riderId required")
		return
	}

	order, err := s.svc.MarkOnTheWay(r.Context(), mux.Vars(r)["id"], req.RiderID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleDeliverOrder(w http.ResponseWriter, r *http.Request) {
	var req riderActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RiderID == "" {
		respondError(w, http.StatusBadRequest, "riderId required")
		return
	}

	if err := s.svc.MarkDelivered(r.Context(), mux.Vars(r)["id"], req.RiderID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req clientActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID == "" {
		respondError(w, http.StatusBadRequest, "clientId required")
		return
	}

	if err := s.svc.CancelOrder(r.Context(), mux.Vars(r)["id"], req.ClientID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExpireOrder(w http.ResponseWriter, r *http.Request) {
	expired, err := s.svc.ExpireIfElapsed(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"expired": expired})
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		respondError(w, http.StatusBadRequest, "clientId required")
		return
	}

	if err := s.svc.DeleteTerminal(r.Context(), mux.Vars(r)["id"], clientID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.OrderHistory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type watchEvent struct {
	State      watch.ViewState `json:"state"`
	Order      *model.Order    `json:"order,omitempty"`
	ObservedAt time.Time       `json:"observedAt"`
}

// handleWatchOrder streams order snapshots as server-sent events until the
// client disconnects. A vanished order is still an event, with state gone.
func (s *Server) handleWatchOrder(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for snap := range s.watcher.Watch(r.Context(), mux.Vars(r)["id"]) {
		payload, err := json.Marshal(watchEvent{
			State:      watch.Reduce(snap, time.Now().UTC()),
			Order:      snap.Order,
			ObservedAt: snap.ObservedAt,
		})
		if err != nil {
			s.logger.Error("encoding watch event failed", zap.Error(err))
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return
		}
		flusher.Flush()
	}
}

func (s *Server) handleClientRedirect(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.FindClientRedirect(r.Context(), mux.Vars(r)["uid"]))
}

func (s *Server) handleRiderRedirect(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.FindRiderRedirect(r.Context(), mux.Vars(r)["uid"]))
}

func (s *Server) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	var pos model.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pos.UID = mux.Vars(r)["uid"]

	if err := s.svc.UpdatePosition(r.Context(), &pos); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.svc.Sweep(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrNotOwner), errors.Is(err, service.ErrWrongRider):
		respondError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, model.ErrInvalidTransition), errors.Is(err, service.ErrNotTerminal):
		respondError(w, http.StatusConflict, "order state does not permit this")
	case errors.Is(err, model.ErrNoItems),
		errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrInvalidPrice),
		errors.Is(err, model.ErrZeroTotal):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "please retry")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
