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

package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Reader deserializes JSON or YAML from an io.Reader.
//
// Readers created by NewFileReader own the file handle and must be closed.
// Close is a no-op for readers over non-closeable sources.
type Reader struct {
	format Format
	strict bool
	input  io.Reader
	closer io.Closer
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithStrict rejects documents carrying fields the target type does not
// declare.
func WithStrict(strict bool) ReaderOption {
	return func(r *Reader) {
		r.strict = strict
	}
}

// NewReader creates a Reader over input. Table is write-only and rejected.
func NewReader(format Format, input io.Reader, opts ...ReaderOption) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewFileReader opens path and detects its format from the extension.
func NewFileReader(path string, opts ...ReaderOption) (*Reader, error) {
	format := FormatFromPath(path)
	if err := checkReadable(format); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &Reader{
		format: format,
		input:  file,
		closer: file,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func checkReadable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %q", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		dec := json.NewDecoder(r.input)
		if r.strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(r.input)
		dec.KnownFields(r.strict)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying source. Safe on nil and repeated calls.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Unmarshal decodes data in the given format into v.
func Unmarshal(format Format, data []byte, v any, opts ...ReaderOption) error {
	r, err := NewReader(format, bytes.NewReader(data), opts...)
	if err != nil {
		return err
	}
	return r.Deserialize(v)
}

// FromFile loads a JSON or YAML file into a new T.
func FromFile[T any](path string, opts ...ReaderOption) (*T, error) {
	r, err := NewFileReader(path, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", path, err)
	}
	return &out, nil
}
