package auth

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit reasons. Specific reasons are forensic detail for the log only;
// clients always get the same generic failure.
const (
	ReasonLoginSuccessful    = "login successful"
	ReasonMissingCredentials = "missing credentials"
	ReasonUserNotFound       = "user not found"
	ReasonIncorrectPassword  = "incorrect password"
	ReasonLogout             = "logout"
)

// maxAuditEntries caps how many rows a single listing returns.
const maxAuditEntries = 1000

// AuditRecorder appends authentication events to the audit log. Writes are
// fire-and-forget: the caller's response never waits on, nor fails because
// of, an audit insert.
type AuditRecorder struct {
	db *gorm.DB
}

func NewAuditRecorder(db *gorm.DB) *AuditRecorder {
	return &AuditRecorder{db: db}
}

// Record writes one audit entry in the background. A failed insert is logged
// locally and otherwise dropped.
func (a *AuditRecorder) Record(username string, success bool, reason, sourceIP, userAgent string) {
	entry := AuditEntry{
		ID:        uuid.NewString(),
		Username:  username,
		Success:   success,
		Reason:    reason,
		SourceIP:  sourceIP,
		UserAgent: userAgent,
	}
	go func() {
		if err := a.db.Create(&entry).Error; err != nil {
			log.Printf("Audit insert error: %v", err)
		}
	}()
}

// Recent returns up to limit entries, newest first. The cap of 1000 holds
// regardless of the requested limit.
func (a *AuditRecorder) Recent(limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > maxAuditEntries {
		limit = maxAuditEntries
	}
	var entries []AuditEntry
	err := a.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
