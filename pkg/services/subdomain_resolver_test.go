package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/sitespec"
)

type mockChecker struct {
	ExistsFunc func(ctx context.Context, subdomain string) (bool, error)
	Probes     []string
}

func (m *mockChecker) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	m.Probes = append(m.Probes, subdomain)
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, subdomain)
	}
	return false, nil
}

func newTestResolver(checker SubdomainChecker, maxAttempts int) *subdomainResolver {
	r := NewSubdomainResolver(checker, maxAttempts, zap.NewNop()).(*subdomainResolver)
	return r
}

func TestResolve_RequestedIsFree(t *testing.T) {
	checker := &mockChecker{}
	r := newTestResolver(checker, 10)

	got, err := r.Resolve(context.Background(), "harbor-bakery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "harbor-bakery" {
		t.Errorf("expected the requested subdomain back, got %q", got)
	}
	if len(checker.Probes) != 1 {
		t.Errorf("expected a single probe, got %d", len(checker.Probes))
	}
}

func TestResolve_CollisionGetsSuffix(t *testing.T) {
	checker := &mockChecker{
		ExistsFunc: func(ctx context.Context, subdomain string) (bool, error) {
			return subdomain == "harbor-bakery", nil
		},
	}
	r := newTestResolver(checker, 10)
	r.intn = func(n int) int { return 234 }

	got, err := r.Resolve(context.Background(), "harbor-bakery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "harbor-bakery-1234" {
		t.Errorf("expected suffixed candidate, got %q", got)
	}
	if len(checker.Probes) != 2 {
		t.Errorf("expected 2 probes, got %d", len(checker.Probes))
	}
}

func TestResolve_SuffixKeepsLengthBound(t *testing.T) {
	long := strings.Repeat("a", sitespec.SubdomainMaxLen)
	checker := &mockChecker{
		ExistsFunc: func(ctx context.Context, subdomain string) (bool, error) {
			return subdomain == long, nil
		},
	}
	r := newTestResolver(checker, 10)

	got, err := r.Resolve(context.Background(), long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > sitespec.SubdomainMaxLen {
		t.Errorf("candidate %q exceeds the length bound", got)
	}
	if !regexp.MustCompile(`^[a-z0-9-]{3,30}$`).MatchString(got) {
		t.Errorf("candidate %q does not satisfy the subdomain pattern", got)
	}
}

func TestResolve_TruncationNeverLeavesTrailingHyphen(t *testing.T) {
	// A base whose truncation point lands on a hyphen run.
	base := strings.Repeat("a", sitespec.SubdomainMaxLen-suffixDigits-2) + "--"
	r := newTestResolver(&mockChecker{}, 10)
	r.intn = func(n int) int { return 0 }

	got := r.suffixed(base)
	if strings.Contains(got, "--") {
		t.Errorf("suffixed candidate %q contains a doubled hyphen", got)
	}
	if len(got) > sitespec.SubdomainMaxLen {
		t.Errorf("candidate %q exceeds the length bound", got)
	}
}

func TestResolve_ExhaustsAfterBoundedAttempts(t *testing.T) {
	checker := &mockChecker{
		ExistsFunc: func(ctx context.Context, subdomain string) (bool, error) {
			return true, nil
		},
	}
	r := newTestResolver(checker, 10)

	_, err := r.Resolve(context.Background(), "harbor-bakery")
	if !errors.Is(err, apperrors.ErrSubdomainExhausted) {
		t.Fatalf("expected ErrSubdomainExhausted, got %v", err)
	}
	if len(checker.Probes) != 10 {
		t.Errorf("expected exactly 10 probes, got %d", len(checker.Probes))
	}
	if checker.Probes[0] != "harbor-bakery" {
		t.Errorf("first probe should be the requested subdomain, got %q", checker.Probes[0])
	}
	for _, p := range checker.Probes[1:] {
		if !strings.HasPrefix(p, "harbor-bakery-") {
			t.Errorf("later probes should be suffixed, got %q", p)
		}
	}
}

func TestResolve_DatastoreErrorAborts(t *testing.T) {
	probeErr := fmt.Errorf("connection reset")
	checker := &mockChecker{
		ExistsFunc: func(ctx context.Context, subdomain string) (bool, error) {
			return false, probeErr
		},
	}
	r := newTestResolver(checker, 10)

	_, err := r.Resolve(context.Background(), "harbor-bakery")
	if !errors.Is(err, probeErr) {
		t.Fatalf("expected the datastore error, got %v", err)
	}
	if len(checker.Probes) != 1 {
		t.Errorf("a datastore failure must not be retried, got %d probes", len(checker.Probes))
	}
}

func TestResolve_SuffixIsFourDigits(t *testing.T) {
	r := newTestResolver(&mockChecker{}, 10)
	for _, n := range []int{0, 4499, 8999} {
		r.intn = func(int) int { return n }
		got := r.suffixed("cafe")
		suffix := got[strings.LastIndex(got, "-")+1:]
		if len(suffix) != 4 {
			t.Errorf("expected a 4-digit suffix, got %q in %q", suffix, got)
		}
	}
}
