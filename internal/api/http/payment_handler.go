package http

import (
	"net/http"

	"dueshub-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type recordPaymentRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
	Note   string `json:"note,omitempty"`
}

// Record handles POST /dues/{duesID}/payments and returns the reconciled
// status view after the payment is applied.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	duesID, err := pathID(r, "duesID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req recordPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.payments.RecordPayment(r.Context(), ActorID(r.Context()), duesID, req.Amount, req.Method, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// List handles GET /dues/{duesID}/payments.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	duesID, err := pathID(r, "duesID")
	if err != nil {
		writeError(w, err)
		return
	}
	payments, err := h.payments.ListPayments(r.Context(), ActorID(r.Context()), duesID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}
