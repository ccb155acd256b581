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
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mchmarny/crop-advisor/pkg/defaults"
	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

// RespondJSON writes data as a JSON response with the given status code.
// The body is encoded into a buffer first so an encoding failure can still
// produce a clean 500.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// connection is gone
		slog.Warn("response write failed", "error", err)
	}
}

const (
	// HttpReaderUserAgent is sent with every outbound request.
	HttpReaderUserAgent = "crop-advisor/1.0"

	// HttpReaderDefaultMaxBytes caps a single response body.
	HttpReaderDefaultMaxBytes int64 = 64 << 20
)

// HttpReaderOption configures an HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches documents over HTTP(S).
type HttpReader struct {
	UserAgent string
	MaxBytes  int64
	Client    *http.Client
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) HttpReaderOption {
	return func(r *HttpReader) {
		r.UserAgent = userAgent
	}
}

// WithTotalTimeout sets the overall request timeout.
func WithTotalTimeout(timeout time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		if timeout > 0 && r.Client != nil {
			r.Client.Timeout = timeout
		}
	}
}

// WithMaxBytes caps the accepted response body size.
func WithMaxBytes(n int64) HttpReaderOption {
	return func(r *HttpReader) {
		if n > 0 {
			r.MaxBytes = n
		}
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) HttpReaderOption {
	return func(r *HttpReader) {
		if r.Client == nil {
			return
		}
		if tr, ok := r.Client.Transport.(*http.Transport); ok && tr.TLSClientConfig != nil {
			tr.TLSClientConfig.InsecureSkipVerify = skip //nolint:gosec // opt-in for lab registries
		}
	}
}

// WithClient replaces the underlying client. Apply it before options that
// tune the client.
func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		if client != nil {
			r.Client = client
		}
	}
}

// NewHttpReader creates an HttpReader with pooled, TLS 1.2+ defaults.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent: HttpReaderUserAgent,
		MaxBytes:  HttpReaderDefaultMaxBytes,
		Client: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newDefaultHTTPTransport(),
		},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// ReadWithContext GETs url and returns the body.
//
// Status mapping: 404 is ErrCodeNotFound, 429 and 5xx are ErrCodeUnavailable,
// any other non-200 is ErrCodeInvalidRequest. Transport failures are
// ErrCodeUnavailable.
func (r *HttpReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "url is empty")
	}
	if r.Client == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "http client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to create request for %s", url), err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("http request failed for %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewWithContext(codeForStatus(resp.StatusCode),
			fmt.Sprintf("failed to fetch %s: status %s", url, resp.Status),
			map[string]any{"url": url, "status": resp.StatusCode})
	}

	limit := r.MaxBytes
	if limit <= 0 {
		limit = HttpReaderDefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("failed to read body of %s", url), err)
	}
	if int64(len(data)) > limit {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("response from %s exceeds %d bytes", url, limit),
			map[string]any{"url": url})
	}
	return data, nil
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch {
	case status == http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case status == http.StatusTooManyRequests, status >= 500:
		return apperrors.ErrCodeUnavailable
	default:
		return apperrors.ErrCodeInvalidRequest
	}
}
