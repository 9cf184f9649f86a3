package apperrors

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned when no authenticated actor is present.
	// The pipeline refuses before contacting the generation provider.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrGenerationUnavailable is returned when the text-generation provider
	// call fails (timeout, quota, network). Re-invoking the whole pipeline is
	// the only retry path.
	ErrGenerationUnavailable = errors.New("generation provider unavailable")

	// ErrNoJSONBoundary is returned when the provider response contains no
	// recoverable JSON object at all.
	ErrNoJSONBoundary = errors.New("no JSON object boundary in response")

	// ErrMissingComponents is returned when the generated document has no
	// usable components array.
	ErrMissingComponents = errors.New("document has no components")

	// ErrInvalidComponentsType is returned when "components" is present but
	// is not an array.
	ErrInvalidComponentsType = errors.New("components is not an array")

	// ErrMissingHero is returned when the first component of the generated
	// document is not a hero section.
	ErrMissingHero = errors.New("first component is not a hero section")

	// ErrSubdomainExhausted is returned when no free subdomain could be found
	// within the bounded number of attempts.
	ErrSubdomainExhausted = errors.New("subdomain namespace exhausted")

	// ErrUnsafeContent is returned when generated content fails the
	// injection screen. Nothing is persisted.
	ErrUnsafeContent = errors.New("generated content failed safety screening")
)
