// Package services contains the generation pipeline and its collaborators.
package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/retry"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/sitespec"
)

// suffixDigits is the width of the random numeric suffix appended on
// collision. The base is truncated so base + "-" + suffix stays within the
// subdomain length bound.
const suffixDigits = 4

// SubdomainChecker is the slice of the datastore the resolver needs.
type SubdomainChecker interface {
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
}

// SubdomainResolver finds a free subdomain near the requested one.
type SubdomainResolver interface {
	// Resolve probes the requested subdomain and, on collision, suffixed
	// candidates, within a bounded attempt count. The result is free at
	// probe time only; commit-time uniqueness is the real arbiter.
	Resolve(ctx context.Context, requested string) (string, error)
}

type subdomainResolver struct {
	checker     SubdomainChecker
	maxAttempts int
	logger      *zap.Logger
	intn        func(n int) int
}

// NewSubdomainResolver creates a SubdomainResolver with the given attempt
// bound.
func NewSubdomainResolver(checker SubdomainChecker, maxAttempts int, logger *zap.Logger) SubdomainResolver {
	return &subdomainResolver{
		checker:     checker,
		maxAttempts: maxAttempts,
		logger:      logger.Named("subdomain_resolver"),
		intn:        rand.Intn,
	}
}

var _ SubdomainResolver = (*subdomainResolver)(nil)

// errSubdomainTaken marks a probe collision as retryable for the retry
// combinator; datastore failures stay non-retryable and abort resolution.
type errSubdomainTaken struct{ candidate string }

func (e errSubdomainTaken) Error() string { return fmt.Sprintf("subdomain %q taken", e.candidate) }

func (errSubdomainTaken) IsRetryable() bool { return true }

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }

func (e permanentError) Unwrap() error { return e.err }

func (permanentError) IsRetryable() bool { return false }

func (r *subdomainResolver) Resolve(ctx context.Context, requested string) (string, error) {
	attempt := 0
	subdomain, err := retry.DoWithResult(ctx, retry.Immediate(r.maxAttempts), func() (string, error) {
		attempt++

		candidate := requested
		if attempt > 1 {
			candidate = r.suffixed(requested)
		}

		exists, err := r.checker.SubdomainExists(ctx, candidate)
		if err != nil {
			return "", permanentError{fmt.Errorf("probe subdomain: %w", err)}
		}
		if exists {
			r.logger.Debug("subdomain taken",
				zap.String("candidate", candidate),
				zap.Int("attempt", attempt))
			return "", errSubdomainTaken{candidate}
		}

		return candidate, nil
	})
	if err != nil {
		if _, taken := err.(errSubdomainTaken); taken {
			return "", fmt.Errorf("%w: %d attempts for %q", apperrors.ErrSubdomainExhausted, r.maxAttempts, requested)
		}
		return "", err
	}

	return subdomain, nil
}

// suffixed appends a random 4-digit suffix, truncating the base so the
// result still satisfies the subdomain pattern and length bound.
func (r *subdomainResolver) suffixed(base string) string {
	maxBase := sitespec.SubdomainMaxLen - suffixDigits - 1
	if len(base) > maxBase {
		base = strings.TrimRight(base[:maxBase], "-")
	}
	return fmt.Sprintf("%s-%d", base, 1000+r.intn(9000))
}
