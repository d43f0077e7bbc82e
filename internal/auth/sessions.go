package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionManager owns the server-side session rows. Ids are opaque uuids
// delivered to clients only through the HttpOnly session cookie.
type SessionManager struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionManager(db *gorm.DB, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &SessionManager{db: db, ttl: ttl}
}

// TTL is the configured session lifetime; the cookie MaxAge follows it.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Create issues a fresh anonymous session.
func (m *SessionManager) Create() (string, error) {
	s := Session{
		SessionID: uuid.NewString(),
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.db.Create(&s).Error; err != nil {
		return "", err
	}
	return s.SessionID, nil
}

func (m *SessionManager) Get(id string) (*Session, error) {
	var s Session
	if err := m.db.First(&s, "session_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SetUser binds an authenticated identity to an existing session. The user
// must exist at the time of setting; binding an unknown user id is rejected.
func (m *SessionManager) SetUser(id, userID string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Model(&Session{}).Where("session_id = ?", id).Update("user_id", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Regenerate retires oldID and issues a new session id already bound to
// userID, all in one transaction. The old id never coexists with the new one
// and the new session is never observable unauthenticated. An empty or
// unknown oldID simply creates the bound session; a pre-seeded session id
// in the victim's browser is therefore worthless after login.
func (m *SessionManager) Regenerate(oldID, userID string) (string, error) {
	newID := uuid.NewString()
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if oldID != "" {
			if err := tx.Where("session_id = ?", oldID).Delete(&Session{}).Error; err != nil {
				return err
			}
		}
		s := Session{
			SessionID: newID,
			UserID:    &userID,
			ExpiresAt: time.Now().Add(m.ttl),
		}
		return tx.Create(&s).Error
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

// Destroy removes the session row. Destroying an already-gone session is
// not an error.
func (m *SessionManager) Destroy(id string) error {
	return m.db.Where("session_id = ?", id).Delete(&Session{}).Error
}
