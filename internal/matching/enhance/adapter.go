// internal/matching/enhance/adapter.go
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "candidate-workers/internal/common/errors"
	"candidate-workers/internal/common/logger"
	"candidate-workers/internal/common/metrics"
	"candidate-workers/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const (
	DefaultTimeout = 12 * time.Second
	MinTimeout     = 10 * time.Second
	MaxTimeout     = 15 * time.Second
)

var ErrProviderPanic = errors.New("PROVIDER_PANIC")

var payloadSchema = mustCompile(enhancementSchema)

// Adapter makes one bounded call to a Provider and merges a validated
// payload into the base categories. It fails open: any timeout, transport
// error, panic or malformed payload yields the base categories unchanged and
// a nil enhancement. It never retries.
type Adapter struct {
	provider Provider
	timeout  time.Duration
	logger   logger.Logger
}

// NewAdapter clamps timeout to [MinTimeout, MaxTimeout]; zero selects
// DefaultTimeout. A nil provider disables enhancement.
func NewAdapter(p Provider, timeout time.Duration, log logger.Logger) *Adapter {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	name := "none"
	if p != nil {
		name = p.Name()
	}
	return &Adapter{
		provider: p,
		timeout:  ClampTimeout(timeout),
		logger:   log.WithFields(map[string]interface{}{"component": "enhance", "provider": name}),
	}
}

func ClampTimeout(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultTimeout
	case d < MinTimeout:
		return MinTimeout
	case d > MaxTimeout:
		return MaxTimeout
	default:
		return d
	}
}

func (a *Adapter) Enabled() bool {
	return a != nil && a.provider != nil
}

// Enhance never returns an error. The returned Base is always base itself.
func (a *Adapter) Enhance(ctx context.Context, p models.CandidateProfile, base models.NormalizedProfile) models.EnhancedCategories {
	out := models.EnhancedCategories{Base: base}
	if !a.Enabled() {
		return out
	}

	start := time.Now()
	enhancement, err := a.call(ctx, NewSummary(p, base))
	metrics.EnhancementDuration.WithLabelValues(a.provider.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		stdErr := apperrors.AsStandardError(err)
		metrics.EnhancementFailures.WithLabelValues(a.provider.Name(), failureReason(stdErr)).Inc()
		a.logger.Warn("enhancement unavailable, using base categories", map[string]interface{}{
			"candidateId": p.ID,
			"errorCode":   string(stdErr.Code),
			"details":     stdErr.Details,
		})
		return out
	}

	out.Enhancement = enhancement
	return out
}

type callResult struct {
	payload []byte
	err     error
}

func (a *Adapter) call(ctx context.Context, summary Summary) (*models.Enhancement, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	name := a.provider.Name()
	done := make(chan callResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callResult{err: fmt.Errorf("%w: %v", ErrProviderPanic, r)}
			}
		}()
		payload, err := a.provider.Complete(ctx, summary)
		done <- callResult{payload: payload, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, apperrors.NewExternalServiceTimeoutError(name, ctx.Err())
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, context.DeadlineExceeded) {
				return nil, apperrors.NewExternalServiceTimeoutError(name, r.err)
			}
			stdErr := apperrors.NewExternalServiceError(name, r.err)
			if errors.Is(r.err, ErrProviderPanic) {
				stdErr.WithMetadata("panic", true)
			}
			return nil, stdErr
		}
		return Decode(r.payload)
	}
}

// Decode validates payload against the enhancement schema and decodes it.
// Nothing is returned unless the whole payload is valid.
func Decode(payload []byte) (*models.Enhancement, error) {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return nil, apperrors.NewMalformedEnhancementResponseError("empty payload")
	}

	result, err := payloadSchema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return nil, apperrors.NewMalformedEnhancementResponseError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, apperrors.NewMalformedEnhancementResponseError(strings.Join(msgs, "; "))
	}

	var enhancement models.Enhancement
	if err := json.Unmarshal(payload, &enhancement); err != nil {
		return nil, apperrors.NewMalformedEnhancementResponseError(err.Error())
	}
	return &enhancement, nil
}

func failureReason(stdErr *apperrors.StandardError) string {
	switch stdErr.Code {
	case apperrors.ErrCodeExternalServiceTimeout:
		return "timeout"
	case apperrors.ErrCodeMalformedEnhancementResponse:
		return "malformed"
	case apperrors.ErrCodeExternalServiceError:
		if stdErr.Metadata["panic"] == true {
			return "panic"
		}
		return "error"
	default:
		return "other"
	}
}

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("enhancement schema: %v", err))
	}
	return s
}
