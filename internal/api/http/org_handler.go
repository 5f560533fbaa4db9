package http

import (
	"net/http"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/service"
)

type OrgHandler struct {
	orgs service.OrganizationService
}

func NewOrgHandler(orgs service.OrganizationService) *OrgHandler {
	return &OrgHandler{orgs: orgs}
}

type orgRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	TreasurerEmail    string `json:"treasurer_email,omitempty"`
	TreasurerPhone    string `json:"treasurer_phone,omitempty"`
	DefaultDuesAmount int64  `json:"default_dues_amount,omitempty"`
}

// Create handles POST /orgs. The creator becomes the organization's admin.
func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orgRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	org := &domain.Organization{
		Name:              req.Name,
		Description:       req.Description,
		TreasurerEmail:    req.TreasurerEmail,
		TreasurerPhone:    req.TreasurerPhone,
		DefaultDuesAmount: req.DefaultDuesAmount,
	}
	if err := h.orgs.CreateOrganization(r.Context(), ActorID(r.Context()), org); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

// Get handles GET /orgs/{orgID}.
func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	org, err := h.orgs.GetOrganization(r.Context(), ActorID(r.Context()), orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// Update handles PUT /orgs/{orgID}.
func (h *OrgHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req orgRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	org := &domain.Organization{
		ID:                orgID,
		Name:              req.Name,
		Description:       req.Description,
		TreasurerEmail:    req.TreasurerEmail,
		TreasurerPhone:    req.TreasurerPhone,
		DefaultDuesAmount: req.DefaultDuesAmount,
	}
	if err := h.orgs.UpdateOrganization(r.Context(), ActorID(r.Context()), org); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}
