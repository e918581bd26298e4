package services

import (
	"log/slog"
	"strings"
	"time"

	"gold-ledger/internal/models"

	"github.com/google/uuid"
)

// RedactedValue masks personal data in audit records
const RedactedValue = "***REDACTED***"

// AuditLogger writes one structured record per ledger event. Records carry an
// event_type attribute so they can be filtered out of the application log.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger.With(slog.String("log_type", "audit"))}
}

func (al *AuditLogger) LogTransactionSettled(t *models.Transaction) {
	al.logger.Info("transaction settled",
		slog.String("event_type", "transaction_settled"),
		slog.Uint64("transaction_id", uint64(t.ID)),
		slog.Uint64("customer_id", uint64(t.CustomerID)),
		slog.String("store", t.StoreName),
		slog.String("type", string(t.Type)),
		slog.String("payment_method", string(t.PaymentMethod)),
		slog.String("gold_weight", t.GoldWeight.String()),
		slog.String("amount", t.Amount.String()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

func (al *AuditLogger) LogTransactionRejected(t *models.Transaction, reason error) {
	al.logger.Warn("transaction rejected",
		slog.String("event_type", "transaction_rejected"),
		slog.Uint64("customer_id", uint64(t.CustomerID)),
		slog.String("store", t.StoreName),
		slog.String("type", string(t.Type)),
		slog.String("payment_method", string(t.PaymentMethod)),
		slog.String("error", reason.Error()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

func (al *AuditLogger) LogStoreOpened(store *models.Store) {
	al.logger.Info("store opened",
		slog.String("event_type", "store_opened"),
		slog.String("store", store.Name),
		slog.String("opening_gold", store.TotalGold.String()),
		slog.String("opening_amount", store.TotalAmount.String()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

func (al *AuditLogger) LogCustomerAdded(customer *models.Customer) {
	al.logger.Info("customer added",
		slog.String("event_type", "customer_added"),
		slog.Uint64("customer_id", uint64(customer.ID)),
		slog.String("phone", maskPhone(customer.Phone)),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

func (al *AuditLogger) LogAdminSignedIn(admin *models.Admin, registered bool) {
	event := "admin_signed_in"
	if registered {
		event = "admin_registered"
	}
	al.logger.Info("admin session started",
		slog.String("event_type", event),
		slog.String("admin_id", admin.ID.String()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// LogSignInFailed never records the attempted email
func (al *AuditLogger) LogSignInFailed(reason string) {
	al.logger.Warn("admin sign-in failed",
		slog.String("event_type", "admin_sign_in_failed"),
		slog.String("email", RedactedValue),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

func (al *AuditLogger) LogAdminSignedOut(adminID uuid.UUID, jti string) {
	al.logger.Info("admin session revoked",
		slog.String("event_type", "admin_signed_out"),
		slog.String("admin_id", adminID.String()),
		slog.String("jti", jti),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// maskPhone keeps the last four digits
func maskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if len(phone) <= 4 {
		return RedactedValue
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
