// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// EventRevalidate is the event name of a revalidation delivery.
const EventRevalidate = "cache.revalidate"

// UserAgent header value
const UserAgent = "artadmin/1.0"

// maxResponseLen caps how much of a response body is kept for logs.
const maxResponseLen = 1024

// Payload is the JSON body of a delivery.
type Payload struct {
	Event     string    `json:"event"`
	Paths     []string  `json:"paths"`
	Timestamp time.Time `json:"timestamp"`
}

// DeliveryResult represents the result of a delivery attempt.
type DeliveryResult struct {
	Success      bool
	StatusCode   int
	ResponseBody string
	Error        error
	ShouldRetry  bool
}

// deliver posts paths, retrying transient failures with exponential backoff.
func (r *Revalidator) deliver(ctx context.Context, paths []string) {
	body, err := json.Marshal(Payload{
		Event:     EventRevalidate,
		Paths:     paths,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		r.logger.Error("failed to encode revalidation payload", "error", err)
		return
	}
	deliveryID := uuid.NewString()

	for attempt := 1; ; attempt++ {
		result := r.attemptDelivery(ctx, deliveryID, body)
		if result.Success {
			r.logger.Debug("storefront revalidated",
				"delivery_id", deliveryID, "paths", paths, "status_code", result.StatusCode)
			return
		}

		if !result.ShouldRetry || attempt >= r.cfg.MaxAttempts {
			r.logger.Warn("storefront revalidation failed",
				"category", "cache",
				"delivery_id", deliveryID,
				"paths", paths,
				"attempts", attempt,
				"status_code", result.StatusCode,
				"response", result.ResponseBody,
				"error", result.Error)
			return
		}

		backoff := calculateBackoff(r.cfg.InitialBackoff, attempt)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// attemptDelivery performs the actual HTTP POST request.
func (r *Revalidator) attemptDelivery(ctx context.Context, deliveryID string, body []byte) DeliveryResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{
			Error:       fmt.Errorf("failed to create request: %w", err),
			ShouldRetry: false, // Bad URL, don't retry
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(HeaderEvent, EventRevalidate)
	req.Header.Set(HeaderDelivery, deliveryID)
	if r.cfg.Secret != "" {
		req.Header.Set(HeaderSignature, GenerateSignature(body, r.cfg.Secret))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return DeliveryResult{
			Error:       fmt.Errorf("request failed: %w", err),
			ShouldRetry: ctx.Err() == nil, // Network error, retry
		}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	result := DeliveryResult{
		StatusCode:   resp.StatusCode,
		ResponseBody: string(respBody),
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Success = true
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Client error - don't retry (except for 408 Request Timeout and 429 Too Many Requests)
		result.Error = fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		result.ShouldRetry = resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests
	default:
		result.Error = fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		result.ShouldRetry = true
	}
	return result
}

// calculateBackoff doubles initial for every attempt after the first.
func calculateBackoff(initial time.Duration, attempt int) time.Duration {
	if attempt <= 1 {
		return initial
	}
	return initial << (attempt - 1)
}
