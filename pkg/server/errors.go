// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"net/http"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/serializer"
)

// HeaderErrorCode carries the machine-readable error code; the body only
// holds the message.
const HeaderErrorCode = "X-Error-Code"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error" yaml:"error"`
}

// HTTPStatusFromCode maps an error code to its HTTP status. Anything not
// listed is a 500.
func HTTPStatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnrecognizedSoil:
		return http.StatusBadRequest
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, _ *http.Request, statusCode int, code apperrors.ErrorCode, message string) {
	w.Header().Set(HeaderErrorCode, string(code))
	serializer.RespondJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorFromErr derives status and message from err. Structured errors
// contribute their code and Detail; other errors are internal and use their
// text as is.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	var se *apperrors.StructuredError
	if errors.As(err, &se) {
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Detail())
		return
	}
	WriteError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternal, err.Error())
}
