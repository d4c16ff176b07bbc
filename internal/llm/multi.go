package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/logger"
)

// MultiProvider chains several backends with automatic fallback. It
// starts at the last known-good backend and rotates forward on quota,
// rate-limit or availability errors until one answers or all fail.
type MultiProvider struct {
	mu      sync.RWMutex
	entries []Provider
	current int
}

// NewMultiProvider builds the chain from the configured model list.
func NewMultiProvider(models []config.ModelConfig) (*MultiProvider, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("at least one LLM model must be configured")
	}

	entries := make([]Provider, 0, len(models))
	names := make([]string, 0, len(models))
	for _, m := range models {
		entries = append(entries, NewOpenAIProvider(m.Name, m.APIURL, m.APIKey, m.Model))
		names = append(names, m.Name)
	}
	logger.Infof("[llm] %d models configured: %s", len(entries), strings.Join(names, ", "))

	return &MultiProvider{entries: entries}, nil
}

// CurrentName returns the name of the active backend.
func (m *MultiProvider) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[m.current].Name()
}

// Name implements Provider.
func (m *MultiProvider) Name() string { return "multi" }

// Complete implements Provider with fallback across the chain.
func (m *MultiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.RLock()
	start := m.current
	total := len(m.entries)
	m.mu.RUnlock()

	var lastErr error
	for i := 0; i < total; i++ {
		idx := (start + i) % total
		entry := m.entries[idx]

		out, err := entry.Complete(ctx, system, user)
		if err == nil {
			if idx != start {
				m.mu.Lock()
				m.current = idx
				m.mu.Unlock()
				logger.Infof("[llm] switched to model [%s]", entry.Name())
			}
			return out, nil
		}

		lastErr = err
		logger.Warnf("[llm] model [%s] failed: %v", entry.Name(), err)

		if !shouldFallback(err) {
			// Cancellation and malformed-request errors will not get
			// better with a different backend.
			return "", err
		}

		m.mu.Lock()
		m.current = (idx + 1) % total
		m.mu.Unlock()
	}

	return "", fmt.Errorf("all LLM models unavailable, last error: %w", lastErr)
}

// shouldFallback reports whether an error warrants trying the next
// backend.
func shouldFallback(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}

	msg := strings.ToLower(err.Error())

	for _, code := range []string{"402", "429", "503"} {
		if strings.Contains(msg, "status code "+code) || strings.Contains(msg, "status code: "+code) {
			return true
		}
	}

	for _, kw := range []string{
		"insufficient", "balance", "quota",
		"rate limit", "too many requests",
		"timeout", "deadline exceeded", "connection refused",
		"circuit breaker is open",
	} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
