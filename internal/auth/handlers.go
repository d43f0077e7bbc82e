package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bertiesbooks/bookshop-backend/internal/utils"
)

// Handler is the HTTP surface of the auth module.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username"`
	First    string `json:"first"`
	Last     string `json:"last"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(RegisterInput{
		Username: req.Username,
		First:    req.First,
		Last:     req.Last,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verrs ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
		case errors.Is(err, ErrConflict):
			// Deliberately generic: don't reveal which field collided.
			http.Error(w, "Username or email already in use", http.StatusBadRequest)
		default:
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
		}
		return
	}

	// The password, plaintext or hashed, is never echoed back.
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
		"first":    user.First,
		"last":     user.Last,
		"email":    user.Email,
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	// A malformed body is handled as missing credentials so the attempt is
	// still audited.
	_ = json.NewDecoder(r.Body).Decode(&req)

	prior := ""
	if cookie, err := r.Cookie("session_id"); err == nil {
		prior = cookie.Value
	}

	user, sessionID, err := h.svc.Login(req.Username, req.Password, prior, originFromRequest(r))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "Login failed", http.StatusBadRequest)
			return
		}
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, sessionCookie(sessionID, int(h.svc.Sessions().TTL().Seconds())))
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// LoginPromptHandler stands in for the old login page: anything redirected
// here lands on a plain 401.
func (h *Handler) LoginPromptHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Login required", http.StatusUnauthorized)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}

	session, err := h.svc.Sessions().Get(cookie.Value)
	if err != nil || session.UserID == nil || session.ExpiresAt.Before(time.Now()) {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}

	if err := h.svc.Logout(cookie.Value, *session.UserID, originFromRequest(r)); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, sessionCookie("", -1))
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.svc.UserByID(userID)
	if err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

func (h *Handler) AuditHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Audit().Recent(maxAuditEntries)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers()
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// sessionCookie builds the session_id cookie. Hosted deploys set PORT and run
// behind TLS, so the cookie goes Secure + SameSite=None there; local dev over
// plain HTTP gets Secure=false, SameSite=Lax.
func sessionCookie(value string, maxAge int) *http.Cookie {
	secure := os.Getenv("PORT") != ""
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   secure,
	}
}

func originFromRequest(r *http.Request) Origin {
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		// First hop in the chain is the client.
		if i := strings.IndexByte(ip, ','); i >= 0 {
			ip = ip[:i]
		}
		ip = strings.TrimSpace(ip)
	} else {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}
	return Origin{SourceIP: ip, UserAgent: r.UserAgent()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
