// Package feeapi is the client for the backend fee calculation API.
// Both endpoints are idempotent reads; calls are never retried here.
package feeapi

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
	"fee-wizard/internal/logging"
	"fee-wizard/internal/telemetry"
)

const (
	listAvailablePath = "/fees/list-available"
	calculatePath     = "/fees/calculate"
)

// Service is what the wizard needs from the fee API
type Service interface {
	ListAvailable(ctx context.Context, q types.FeeQuery) ([]types.FeeDescriptor, error)
	Calculate(ctx context.Context, req *types.FeeRequest) (*types.CalculationResponse, error)
}

// Config holds client configuration
type Config struct {
	// BaseURL of the API, without trailing slash
	BaseURL string

	// Timeout bounds each call
	Timeout time.Duration

	// MaxConnsPerHost caps pooled connections
	MaxConnsPerHost int
}

// Option customizes a Client
type Option func(*fasthttp.Client)

// WithDialer routes connections through dial, e.g. an in-memory listener
func WithDialer(dial fasthttp.DialFunc) Option {
	return func(c *fasthttp.Client) {
		c.Dial = dial
	}
}

// Client calls the fee API over HTTP
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	tracer  trace.Tracer
	logger  *zap.Logger
}

// New creates a client
func New(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	hc := &fasthttp.Client{
		Name:            "fee-wizard",
		MaxConnsPerHost: cfg.MaxConnsPerHost,
		ReadTimeout:     cfg.Timeout,
		WriteTimeout:    cfg.Timeout,
	}
	for _, opt := range opts {
		opt(hc)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    hc,
		tracer:  telemetry.Tracer(),
		logger:  logging.Component("feeapi"),
	}
}

type listAvailableResponse struct {
	Fees []types.FeeDescriptor `json:"fees"`
}

// ListAvailable returns the fees that may apply to a matter
func (c *Client) ListAvailable(ctx context.Context, q types.FeeQuery) ([]types.FeeDescriptor, error) {
	var out listAvailableResponse
	if err := c.get(ctx, listAvailablePath, queryArgs(q), &out); err != nil {
		return nil, err
	}
	return out.Fees, nil
}

// Calculate asks the API to price a request
func (c *Client) Calculate(ctx context.Context, req *types.FeeRequest) (*types.CalculationResponse, error) {
	args := queryArgs(req.FeeQuery)
	if len(req.LevelCodes) > 0 {
		encoded, err := json.Marshal(req.LevelCodes)
		if err != nil {
			return nil, errors.Internal("encode level codes", err)
		}
		args = append(args, [2]string{"levelCodes", string(encoded)})
	}

	var out types.CalculationResponse
	if err := c.get(ctx, calculatePath, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func queryArgs(q types.FeeQuery) [][2]string {
	return [][2]string{
		{"matterCode1", q.MatterCode1},
		{"matterCode2", q.MatterCode2},
		{"locationCode", q.LocationCode},
		{"caseStage", q.CaseStage},
	}
}

func (c *Client) get(ctx context.Context, path string, args [][2]string, out interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "feeapi.GET "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return errors.Backend("request cancelled", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.SetRequestURI(c.baseURL + path)
	query := req.URI().QueryArgs()
	for _, kv := range args {
		query.Add(kv[0], kv[1])
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{&req.Header})

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Error("fee api call failed", zap.String("path", path), zap.Error(err))
		return errors.Backend("call "+path, err)
	}

	status := resp.StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", status))
	c.logger.Debug("fee api call",
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)

	if status < 200 || status >= 300 {
		return errors.Newf(errors.TypeBackend, "%s returned status %d", path, status).
			WithContext("body", truncate(string(resp.Body()), 256))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Backend("decode "+path+" response", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// headerCarrier adapts fasthttp request headers to otel propagation
type headerCarrier struct {
	h *fasthttp.RequestHeader
}

func (c headerCarrier) Get(key string) string {
	return string(c.h.Peek(key))
}

func (c headerCarrier) Set(key, value string) {
	c.h.Set(key, value)
}

func (c headerCarrier) Keys() []string {
	var keys []string
	c.h.VisitAll(func(key, _ []byte) {
		keys = append(keys, string(key))
	})
	return keys
}
