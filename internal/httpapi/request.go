// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"

	"github.com/tasknest/tasknest/internal/validate"
)

// maxBodyBytes bounds request bodies; no legitimate payload comes close.
const maxBodyBytes = 1 << 20

// decodeBody reads, schema-validates, and unmarshals a request body into
// dst. It writes the validation response itself and reports whether the
// handler should continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, schema string, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeValidation(w, []validate.FieldError{{Field: "body", Message: "could not read request body"}})
		return false
	}

	fieldErrs, err := s.validator.Check(schema, body)
	if err != nil {
		writeError(s.logger, w, err)
		return false
	}
	if len(fieldErrs) > 0 {
		writeValidation(w, fieldErrs)
		return false
	}

	// The schema has already vetted shape and types.
	if err := json.Unmarshal(body, dst); err != nil {
		writeValidation(w, []validate.FieldError{{Field: "body", Message: "must be valid JSON"}})
		return false
	}
	return true
}

// pathID parses the {id} path variable as a ULID. It writes the
// validation response itself and reports whether the handler should
// continue.
func pathID(w http.ResponseWriter, r *http.Request) (ulid.ULID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := ulid.Parse(raw)
	if err != nil {
		writeValidation(w, []validate.FieldError{{Field: "id", Message: "must be a valid ULID"}})
		return ulid.ULID{}, false
	}
	return id, true
}
