package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/service"
)

type DuesHandler struct {
	dues      service.DuesService
	reminders service.ReminderService
}

func NewDuesHandler(dues service.DuesService, reminders service.ReminderService) *DuesHandler {
	return &DuesHandler{dues: dues, reminders: reminders}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(id), nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, domain.NewValidationError(name, "is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

type setDuesRequest struct {
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Amount   int64  `json:"amount"`
	MemberID *int32 `json:"member_id,omitempty"`
}

// SetDues handles POST /orgs/{orgID}/dues. With member_id set it targets a
// single member, otherwise every active member of the organization.
func (h *DuesHandler) SetDues(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req setDuesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	affected, err := h.dues.SetDuesForPeriod(r.Context(), ActorID(r.Context()), orgID, req.Month, req.Year, req.Amount, req.MemberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"createdOrUpdated": affected})
}

// OutstandingForMember handles GET /members/{memberID}/dues/outstanding.
func (h *DuesHandler) OutstandingForMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeError(w, err)
		return
	}
	views, err := h.dues.OutstandingDuesForMember(r.Context(), ActorID(r.Context()), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"dues": views})
}

// UnpaidForPeriod handles GET /orgs/{orgID}/dues/unpaid?month=&year=.
func (h *DuesHandler) UnpaidForPeriod(w http.ResponseWriter, r *http.Request) {
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
	members, err := h.dues.UnpaidMembersForPeriod(r.Context(), ActorID(r.Context()), orgID, month, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

// YearlyMatrix handles GET /orgs/{orgID}/dues/yearly?year=.
func (h *DuesHandler) YearlyMatrix(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := h.dues.YearlyStatusMatrix(r.Context(), ActorID(r.Context()), orgID, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": rows})
}

type sendRemindersRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type sendRemindersResponse struct {
	OK        bool `json:"ok"`
	Month     int  `json:"month"`
	Year      int  `json:"year"`
	Attempted int  `json:"attempted"`
	Sent      int  `json:"sent"`
}

// SendReminders handles POST /orgs/{orgID}/reminders. Month and year
// default to the current period when omitted.
func (h *DuesHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req sendRemindersRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	now := time.Now().UTC()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	run, err := h.reminders.SendMonthlyReminders(r.Context(), ActorID(r.Context()), orgID, req.Month, req.Year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sendRemindersResponse{
		OK:        true,
		Month:     run.Month,
		Year:      run.Year,
		Attempted: run.Attempted,
		Sent:      run.Sent,
	})
}
