package auth

import "time"

type User struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	Username       string    `gorm:"uniqueIndex;size:20;not null" json:"username"`
	First          string    `json:"first"`
	Last           string    `json:"last"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"-"`
}

// Session rows exist before login too; UserID stays nil until a login binds
// an identity to the session. The foreign key keeps a bound user_id pointing
// at a real user row.
type Session struct {
	SessionID string  `gorm:"primaryKey" json:"-"`
	UserID    *string `gorm:"index" json:"-"`
	User      *User   `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null"`
}

type AuditEntry struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason"`
	SourceIP  string    `json:"source_ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string       { return "app_auth.users" }
func (Session) TableName() string    { return "app_auth.sessions" }
func (AuditEntry) TableName() string { return "app_auth.audit_log" }
