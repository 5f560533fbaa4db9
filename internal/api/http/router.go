package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"dueshub-backend/internal/security"
	"dueshub-backend/internal/service"
)

type RouterConfig struct {
	Dues          service.DuesService
	Payments      service.PaymentService
	Reminders     service.ReminderService
	Members       service.MemberService
	Organizations service.OrganizationService
	Transactions  service.TransactionService
	Notifications service.NotificationService
	Validator     security.TokenValidator
}

// NewRouter builds the API router. Everything under /api/v1 requires a
// valid bearer token; /healthz does not.
func NewRouter(cfg RouterConfig) *mux.Router {
	root := mux.NewRouter()
	root.Use(RequestIDMiddleware)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(cfg.Validator))

	orgs := NewOrgHandler(cfg.Organizations)
	api.HandleFunc("/orgs", orgs.Create).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}", orgs.Get).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{orgID}", orgs.Update).Methods(http.MethodPut)

	members := NewMemberHandler(cfg.Members)
	api.HandleFunc("/orgs/{orgID}/members", members.Create).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/members", members.List).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{orgID}/members/import", members.Import).Methods(http.MethodPost)
	api.HandleFunc("/members/{memberID}", members.Update).Methods(http.MethodPut)
	api.HandleFunc("/members/{memberID}", members.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/members/{memberID}/deactivate", members.Deactivate).Methods(http.MethodPost)

	dues := NewDuesHandler(cfg.Dues, cfg.Reminders)
	api.HandleFunc("/orgs/{orgID}/dues", dues.SetDues).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/dues/unpaid", dues.UnpaidForPeriod).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{orgID}/dues/yearly", dues.YearlyMatrix).Methods(http.MethodGet)
	api.HandleFunc("/members/{memberID}/dues/outstanding", dues.OutstandingForMember).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{orgID}/reminders", dues.SendReminders).Methods(http.MethodPost)

	payments := NewPaymentHandler(cfg.Payments)
	api.HandleFunc("/dues/{duesID}/payments", payments.Record).Methods(http.MethodPost)
	api.HandleFunc("/dues/{duesID}/payments", payments.List).Methods(http.MethodGet)

	transactions := NewTransactionHandler(cfg.Transactions)
	api.HandleFunc("/orgs/{orgID}/transactions", transactions.Record).Methods(http.MethodPost)
	api.HandleFunc("/orgs/{orgID}/transactions", transactions.List).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{orgID}/transactions/summary", transactions.Summary).Methods(http.MethodGet)

	notifications := NewNotificationHandler(cfg.Notifications)
	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationID}/read", notifications.MarkRead).Methods(http.MethodPost)

	return root
}
