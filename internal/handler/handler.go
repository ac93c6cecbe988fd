package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateBusiness handles business registration
func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var profile models.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateBusiness(r.Context(), &profile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// RecordFiling handles recording a filing with an agency
func (h *Handler) RecordFiling(w http.ResponseWriter, r *http.Request) {
	businessID, err := businessIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Agency     models.Agency `json:"agency"`
		FilingType string        `json:"filing_type"`
		FiledDate  time.Time     `json:"filed_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	filing := &models.FilingRecord{
		BusinessID: businessID,
		Agency:     req.Agency,
		FilingType: req.FilingType,
		FiledDate:  req.FiledDate,
	}
	created, err := h.svc.RecordFiling(r.Context(), filing)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetComplianceScore handles the weighted-score endpoint
func (h *Handler) GetComplianceScore(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(businessID int64) (any, error) {
		return h.svc.GetComplianceScore(r.Context(), businessID)
	})
}

// GetComplianceResults handles the raw per-agency results endpoint
func (h *Handler) GetComplianceResults(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(businessID int64) (any, error) {
		return h.svc.GetComplianceResults(r.Context(), businessID)
	})
}

// GetDeadlines handles the merged deadline calendar endpoint
func (h *Handler) GetDeadlines(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(businessID int64) (any, error) {
		return h.svc.GetUpcomingDeadlines(r.Context(), businessID)
	})
}

// GetActionPlan handles the remediation plan endpoint
func (h *Handler) GetActionPlan(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(businessID int64) (any, error) {
		return h.svc.GetActionPlan(r.Context(), businessID)
	})
}

// ValidateSetup handles the setup validation endpoint
func (h *Handler) ValidateSetup(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(businessID int64) (any, error) {
		return h.svc.ValidateSetup(r.Context(), businessID)
	})
}

// GenerateReport handles the composed report endpoint
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(businessID int64) (any, error) {
		return h.svc.GenerateReport(r.Context(), businessID)
	})
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fn func(businessID int64) (any, error)) {
	businessID, err := businessIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := fn(businessID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func businessIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
