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

package recommend

import (
	"net/http"

	"github.com/mchmarny/crop-advisor/pkg/defaults"
	"github.com/mchmarny/crop-advisor/pkg/serializer"
	"github.com/mchmarny/crop-advisor/pkg/server"
)

// HandlePredict serves POST /predecir.
func (s *Service) HandlePredict(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r, VariantSingle)
	if !ok {
		return
	}

	result, err := s.Recommend(r.Context(), req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// HandleRanked serves POST /predecir/top3.
func (s *Service) HandleRanked(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r, VariantRanked)
	if !ok {
		return
	}

	result, err := s.RecommendRanked(r.Context(), req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

func (s *Service) decode(w http.ResponseWriter, r *http.Request, variant string) (Request, bool) {
	if r.Method != http.MethodPost {
		server.MethodNotAllowed(w, r, http.MethodPost)
		return Request{}, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes)
	defer r.Body.Close()

	req, err := ParseRequest(r.Body)
	if err != nil {
		server.WriteErrorFromErr(w, r, s.fail(r.Context(), variant, req, err))
		return Request{}, false
	}
	return req, true
}
