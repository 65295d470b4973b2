package auth

import (
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

type Server struct {
	Log      *zap.Logger
	Store    UserStore
	Sessions *SessionManager
}

type credentialsReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}

	username := *req.Username
	if s.Store.Exists(username) {
		kit.WriteMessage(w, http.StatusUnprocessableEntity, "User already exists")
		return
	}

	if err := s.Store.Create(username, *req.Password); err != nil {
		s.log().Error("create user failed", zap.Error(err), zap.String("username", username))
		kit.WriteError(w, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteMessage(w, http.StatusCreated, "User created successfully")
}

func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}

	if !s.Store.Verify(*req.Username, *req.Password) {
		s.Sessions.Clear(w)
		kit.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := s.Sessions.Start(w, *req.Username); err != nil {
		s.log().Error("session issue", zap.Error(err))
		kit.WriteError(w, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteMessage(w, http.StatusOK, "Login successful")
}

func (s *Server) SignOut(w http.ResponseWriter, _ *http.Request) {
	s.Sessions.Clear(w)
	kit.WriteMessage(w, http.StatusOK, "Logout successful")
}

// decodeCredentials writes the 400 response itself when it returns false.
func (s *Server) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsReq, bool) {
	var req credentialsReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, http.StatusBadRequest, kit.InvalidJSONMsg)
		return credentialsReq{}, false
	}
	if errs := validateCredentials(req.Username, req.Password); len(errs) > 0 {
		kit.WriteValidation(w, errs)
		return credentialsReq{}, false
	}
	return req, true
}

// validateCredentials reports every failed rule, not just the first one.
func validateCredentials(username, password *string) []string {
	var errs []string
	if username == nil || *username == "" {
		errs = append(errs, "Username is required")
	}
	if username == nil || utf8.RuneCountInString(*username) < minUsernameLen {
		errs = append(errs, "Username must be at least 3 characters long")
	}
	if password == nil || *password == "" {
		errs = append(errs, "Password is required")
	}
	if password == nil || utf8.RuneCountInString(*password) < minPasswordLen {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	return errs
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
