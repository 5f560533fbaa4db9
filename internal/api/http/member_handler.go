package http

import (
	"io"
	"net/http"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/service"
)

type MemberHandler struct {
	members service.MemberService
}

func NewMemberHandler(members service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type memberRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Create handles POST /orgs/{orgID}/members.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	member := &domain.Member{
		OrgID:    orgID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := h.members.CreateMember(r.Context(), ActorID(r.Context()), member); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// Update handles PUT /members/{memberID}.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req memberRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	member := &domain.Member{
		ID:       memberID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := h.members.UpdateMember(r.Context(), ActorID(r.Context()), member); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// Deactivate handles POST /members/{memberID}/deactivate. The member keeps
// its dues history but drops out of future materialization and reminders.
func (h *MemberHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.members.DeactivateMember(r.Context(), ActorID(r.Context()), memberID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// Delete handles DELETE /members/{memberID}.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.members.DeleteMember(r.Context(), ActorID(r.Context()), memberID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// List handles GET /orgs/{orgID}/members?active=true.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	members, err := h.members.ListMembers(r.Context(), ActorID(r.Context()), orgID, activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

const maxImportSize = 1 << 20 // 1 MiB of CSV is thousands of members

// Import handles POST /orgs/{orgID}/members/import with a CSV body.
func (h *MemberHandler) Import(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeError(w, domain.NewValidationError("body", "could not read CSV payload"))
		return
	}
	count, err := h.members.ImportMembersCSV(r.Context(), ActorID(r.Context()), orgID, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": count})
}
