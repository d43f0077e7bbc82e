package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service orchestrates registration, login and logout over the user store,
// the session manager and the audit recorder. It keeps no state between
// calls; everything lives in the injected collaborators.
type Service struct {
	db       *gorm.DB
	hasher   Hasher
	sessions *SessionManager
	audit    *AuditRecorder
}

func NewService(db *gorm.DB, hasher Hasher, sessions *SessionManager, audit *AuditRecorder) *Service {
	return &Service{db: db, hasher: hasher, sessions: sessions, audit: audit}
}

func (s *Service) Sessions() *SessionManager { return s.sessions }
func (s *Service) Audit() *AuditRecorder     { return s.audit }

type RegisterInput struct {
	Username string
	First    string
	Last     string
	Email    string
	Password string
}

// Origin is the request metadata recorded alongside each audit entry.
type Origin struct {
	SourceIP  string
	UserAgent string
}

// Register validates, hashes and persists a new user. Duplicate username and
// duplicate email both come back as ErrConflict so callers can't probe which
// one exists.
func (s *Service) Register(in RegisterInput) (*User, error) {
	if errs := ValidateRegistration(in.Username, in.First, in.Last, in.Email, in.Password); len(errs) > 0 {
		return nil, errs
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		UserID:         uuid.NewString(),
		Username:       strings.TrimSpace(in.Username),
		First:          Sanitize(in.First),
		Last:           Sanitize(in.Last),
		Email:          strings.TrimSpace(in.Email),
		HashedPassword: hashed,
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the submitted credentials. On success it rotates the
// caller's session id, binding the user to the replacement session, and
// returns the new id. Every attempt, whatever its outcome, produces exactly
// one audit entry; every failure surfaces as ErrInvalidCredentials.
func (s *Service) Login(username, password, priorSessionID string, origin Origin) (*User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		s.audit.Record(username, false, ReasonMissingCredentials, origin.SourceIP, origin.UserAgent)
		return nil, "", ErrInvalidCredentials
	}

	var user User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a bcrypt comparison so this path takes as long as a
			// wrong-password one.
			s.hasher.Verify(password, dummyHash)
			s.audit.Record(username, false, ReasonUserNotFound, origin.SourceIP, origin.UserAgent)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.audit.Record(username, false, ReasonIncorrectPassword, origin.SourceIP, origin.UserAgent)
		return nil, "", ErrInvalidCredentials
	}

	newID, err := s.sessions.Regenerate(priorSessionID, user.UserID)
	if err != nil {
		return nil, "", err
	}

	s.audit.Record(username, true, ReasonLoginSuccessful, origin.SourceIP, origin.UserAgent)
	return &user, newID, nil
}

// Logout destroys the session and records the event. The username lookup is
// best-effort; a user row deleted out from under a live session still logs
// out cleanly.
func (s *Service) Logout(sessionID, userID string, origin Origin) error {
	var username string
	var user User
	if err := s.db.First(&user, "user_id = ?", userID).Error; err == nil {
		username = user.Username
	}

	if err := s.sessions.Destroy(sessionID); err != nil {
		return err
	}

	s.audit.Record(username, true, ReasonLogout, origin.SourceIP, origin.UserAgent)
	return nil
}

// UserByID fetches a single user, for identity confirmation endpoints.
func (s *Service) UserByID(userID string) (*User, error) {
	var user User
	if err := s.db.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user's public fields. Hashes never leave the store.
func (s *Service) ListUsers() ([]User, error) {
	var users []User
	err := s.db.Select("user_id", "username", "first", "last", "email").
		Order("username ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
