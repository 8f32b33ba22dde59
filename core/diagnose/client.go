// Package diagnose implements the Diagnoser interface.
// HTTPDiagnoser posts the fault description (and optional photo) to the
// Diagnosis Service; MockDiagnoser returns a fixed payload for demos.
package diagnose

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/selffix-ai/repairguide/core"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "SelfFix/1.0 (+https://github.com/selffix-ai/repairguide)"
	diagnosePath     = "/api/diagnose"
	maxErrorBody     = 4 << 10
)

var (
	// ErrMissingAppliance is returned when a request names no appliance.
	ErrMissingAppliance = errors.New("appliance type is required")
	// ErrEmptyResult is returned when the service answers with an empty payload.
	ErrEmptyResult = errors.New("diagnosis service returned an empty result")
)

// Validate checks the parts of a request every Diagnoser needs.
func Validate(req core.DiagnosisRequest) error {
	if strings.TrimSpace(req.ApplianceType) == "" {
		return ErrMissingAppliance
	}
	return nil
}

// HTTPDiagnoser calls the Diagnosis Service over HTTP.
type HTTPDiagnoser struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	client   *http.Client
	logger   *zap.Logger
}

// Option configures an HTTPDiagnoser.
type Option func(*HTTPDiagnoser)

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) Option {
	return func(d *HTTPDiagnoser) { d.apiKey = key }
}

// WithTimeout sets the overall request timeout. It applies to a copy of
// the client, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(d *HTTPDiagnoser) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client. A nil client is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(d *HTTPDiagnoser) {
		if c != nil {
			d.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *HTTPDiagnoser) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates an HTTPDiagnoser for the service at endpoint (scheme and host,
// e.g. "https://api.example.com").
func New(endpoint string, opts ...Option) *HTTPDiagnoser {
	d := &HTTPDiagnoser{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.timeout > 0 {
		c := *d.client
		c.Timeout = d.timeout
		d.client = &c
	}
	return d
}

// Diagnose submits req as a multipart form and decodes the JSON result.
func (d *HTTPDiagnoser) Diagnose(ctx context.Context, req core.DiagnosisRequest) (*core.DiagnosisResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	body, contentType, err := encodeForm(req)
	if err != nil {
		return nil, fmt.Errorf("encoding form: %w", err)
	}

	url := d.endpoint + diagnosePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", defaultUserAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if d.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	d.logger.Debug("Requesting diagnosis",
		zap.String("url", url),
		zap.String("request_id", requestID),
		zap.String("appliance", req.ApplianceType),
		zap.Bool("has_image", req.Image != nil))

	start := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling diagnosis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("diagnosis service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result core.DiagnosisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding diagnosis response: %w", err)
	}
	if result.RepairText() == "" && result.Diagnosis == nil {
		return nil, ErrEmptyResult
	}

	d.logger.Info("Diagnosis received",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return &result, nil
}

// encodeForm builds the multipart body the service expects.
func encodeForm(req core.DiagnosisRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("appliance_type", req.ApplianceType); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("user_prompt", req.Description); err != nil {
		return nil, "", err
	}
	if img := req.Image; img != nil {
		name := img.Name
		if name == "" {
			name = "image"
		}
		part, err := w.CreateFormFile("image", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
