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

package feature

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

// CoerceFloat converts a raw JSON value into a float64.
//
// Accepted: JSON numbers, strings holding a decimal or scientific number
// (surrounding whitespace ignored, inf/nan spellings allowed) and booleans
// (true=1, false=0). Anything else is an ErrCodeValidation error.
func CoerceFloat(field string, raw json.RawMessage) (float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, missingField(field)
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, invalidField(field, err)
		}
		return parseNumericString(field, s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return 0, invalidField(field, err)
		}
		if b {
			return 1, nil
		}
		return 0, nil
	case 'n':
		return 0, apperrors.NewWithContext(apperrors.ErrCodeValidation,
			fmt.Sprintf("%s: float() argument must be a string or a real number, not 'null'", field),
			map[string]any{"field": field})
	case '{', '[':
		return 0, apperrors.NewWithContext(apperrors.ErrCodeValidation,
			fmt.Sprintf("%s: float() argument must be a string or a real number, not '%s'", field, jsonKind(trimmed[0])),
			map[string]any{"field": field})
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return 0, invalidField(field, err)
	}
	return f, nil
}

func parseNumericString(field, s string) (float64, error) {
	t := strings.TrimSpace(s)
	// ParseFloat also takes hex floats; plain decimal only.
	if t == "" || strings.ContainsAny(t, "xXpP") {
		return 0, notConvertible(field, s)
	}
	t, ok := stripDigitSeparators(t)
	if !ok {
		return 0, notConvertible(field, s)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			// Out-of-range literals overflow to ±Inf instead of failing.
			return f, nil
		}
		return 0, notConvertible(field, s)
	}
	return f, nil
}

// stripDigitSeparators drops underscores that sit between two digits, as in
// "1_000.5". Any other underscore makes the string invalid.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func jsonKind(b byte) string {
	if b == '{' {
		return "dict"
	}
	return "list"
}

func missingField(field string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeValidation,
		fmt.Sprintf("missing required field: %s", field),
		map[string]any{"field": field})
}

func notConvertible(field, s string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeValidation,
		fmt.Sprintf("%s: could not convert string to float: %q", field, s),
		map[string]any{"field": field})
}

func invalidField(field string, cause error) error {
	return apperrors.WrapWithContext(apperrors.ErrCodeValidation,
		fmt.Sprintf("%s: invalid value", field), cause,
		map[string]any{"field": field})
}
