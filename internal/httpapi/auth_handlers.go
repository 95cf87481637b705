// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"net/http"

	"github.com/tasknest/tasknest/internal/validate"
)

// sessionJSON pairs a user with their freshly issued token.
type sessionJSON struct {
	User  userJSON `json:"user"`
	Token string   `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req validate.RegisterRequest
	if !s.decodeBody(w, r, validate.SchemaRegister, &req) {
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	writeData(w, http.StatusCreated, "User registered", sessionJSON{
		User:  toUserJSON(user),
		Token: token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req validate.LoginRequest
	if !s.decodeBody(w, r, validate.SchemaLogin, &req) {
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", sessionJSON{
		User:  toUserJSON(user),
		Token: token,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := IdentityFromContext(r.Context())
	if !ok {
		// Unreachable behind requireAuth.
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: messageForCode("TOKEN_MISSING")})
		return
	}
	writeData(w, http.StatusOK, "", toUserJSON(user))
}
