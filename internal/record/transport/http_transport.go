// Package transport implements the record Transport against the Level-2 student store API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/allisson/recordseal/internal/errors"
	recordDomain "github.com/allisson/recordseal/internal/record/domain"
)

const (
	studentsPath   = "/v1/students"
	maxErrorBody   = 4096
	unwrapFailedID = "decryption_failed"
)

type payloadRequest struct {
	Payload string `json:"payload"`
}

type studentResponse struct {
	ID      string `json:"id"`
	Payload string `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type listResponse struct {
	Data []studentResponse `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HTTPTransport talks to the student store over HTTP. Requests are never retried.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport for baseURL (e.g. "http://localhost:8080").
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) Create(ctx context.Context, payload string) (string, error) {
	var resp studentResponse
	if err := t.do(ctx, http.MethodPost, studentsPath, payloadRequest{Payload: payload}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (t *HTTPTransport) Get(ctx context.Context, id string) (recordDomain.StoredRecord, error) {
	var resp studentResponse
	if err := t.do(ctx, http.MethodGet, studentsPath+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return recordDomain.StoredRecord{}, err
	}
	return toStoredRecord(resp), nil
}

func (t *HTTPTransport) List(ctx context.Context, offset, limit int) ([]recordDomain.StoredRecord, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var resp listResponse
	if err := t.do(ctx, http.MethodGet, studentsPath+"?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	records := make([]recordDomain.StoredRecord, 0, len(resp.Data))
	for _, s := range resp.Data {
		records = append(records, toStoredRecord(s))
	}
	return records, nil
}

func (t *HTTPTransport) Update(ctx context.Context, id, payload string) error {
	return t.do(ctx, http.MethodPut, studentsPath+"/"+url.PathEscape(id), payloadRequest{Payload: payload}, nil)
}

func (t *HTTPTransport) Delete(ctx context.Context, id string) error {
	return t.do(ctx, http.MethodDelete, studentsPath+"/"+url.PathEscape(id), nil, nil)
}

func toStoredRecord(s studentResponse) recordDomain.StoredRecord {
	return recordDomain.StoredRecord{
		ID:          s.ID,
		Payload:     s.Payload,
		Unavailable: s.Error == unwrapFailedID,
	}
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", apperrors.ErrUnavailable, method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body)

	message := body.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.Wrap(apperrors.ErrNotFound, message)
	case http.StatusConflict:
		return apperrors.Wrap(apperrors.ErrConflict, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Wrap(apperrors.ErrInvalidInput, message)
	case http.StatusUnauthorized:
		return apperrors.Wrap(apperrors.ErrUnauthorized, message)
	case http.StatusForbidden:
		return apperrors.Wrap(apperrors.ErrForbidden, message)
	default:
		return apperrors.Wrapf(apperrors.ErrUnavailable, "status %d: %s", resp.StatusCode, message)
	}
}
