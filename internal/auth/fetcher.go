package auth

import (
	"github.com/bertiesbooks/bookshop-backend/internal/utils"
)

// FindSessionByID satisfies middleware.SessionFetcher so the session
// middleware can gate routes without importing this package's models.
func (m *SessionManager) FindSessionByID(id string) (utils.SessionData, error) {
	s, err := m.Get(id)
	if err != nil {
		return utils.SessionData{}, err
	}

	var userID string
	if s.UserID != nil {
		userID = *s.UserID
	}

	return utils.SessionData{
		UserID:    userID,
		ExpiresAt: s.ExpiresAt,
	}, nil
}
