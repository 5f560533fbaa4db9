package http

import (
	"net/http"
	"strconv"
	"time"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/service"
)

type TransactionHandler struct {
	transactions service.TransactionService
}

func NewTransactionHandler(transactions service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type recordTransactionRequest struct {
	Type       string `json:"type"`
	Amount     int64  `json:"amount"`
	Category   string `json:"category"`
	Note       string `json:"note,omitempty"`
	OccurredAt string `json:"occurred_at,omitempty"` // RFC 3339, defaults to now
}

// Record handles POST /orgs/{orgID}/transactions.
func (h *TransactionHandler) Record(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req recordTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	occurredAt := time.Now()
	if req.OccurredAt != "" {
		occurredAt, err = time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			writeError(w, domain.NewValidationError("occurred_at", "must be RFC 3339"))
			return
		}
	}
	tx := &domain.Transaction{
		OrgID:      orgID,
		Type:       domain.TransactionType(req.Type),
		Amount:     req.Amount,
		Category:   req.Category,
		Note:       req.Note,
		OccurredAt: occurredAt,
	}
	if err := h.transactions.RecordTransaction(r.Context(), ActorID(r.Context()), tx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func pagination(r *http.Request) (int32, int32) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}

// List handles GET /orgs/{orgID}/transactions with optional type/category
// filters and pagination.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	q := r.URL.Query()
	transactions, total, err := h.transactions.ListTransactions(r.Context(), ActorID(r.Context()), orgID, q.Get("type"), q.Get("category"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// Summary handles GET /orgs/{orgID}/transactions/summary?month=&year=.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		writeError(w, err)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.transactions.MonthlySummary(r.Context(), ActorID(r.Context()), orgID, month, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
