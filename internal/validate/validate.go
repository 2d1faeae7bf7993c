// Package validate implements the small combinator layer the record
// validators in internal/mtbvalidator are built from: plain functions
// over an accumulating []domain.Issue slice, generalizing the
// []error accumulation idiom (pkg/hgvs.Validator.ValidateVariantRequest,
// internal/service.InputParserService.ValidateVariantRequest) from a
// fixed error type to domain.Issue so severity travels with the issue.
//
// No logging, no I/O: every function here is pure.
package validate

import (
	"regexp"
	"time"

	"github.com/CCC-MF/mtb-validator/internal/domain"
)

// Ordered is the set of types MustBeInInterval accepts as bounds.
type Ordered interface {
	~int | ~int64 | ~float32 | ~float64
}

// AllOf runs every check and concatenates their issues left to right.
// Unlike AndThen, later checks always run regardless of earlier results --
// this is the accumulating product, not a short-circuiting chain.
func AllOf(checks ...func() []domain.Issue) []domain.Issue {
	var issues []domain.Issue
	for _, check := range checks {
		issues = append(issues, check()...)
	}
	return issues
}

// AndThen runs first, and only runs next (with first's value) if first
// produced no issues. Used for dependent checks where validating the
// second thing is meaningless once the first is already broken, e.g.
// "recommendation exists" before "recommendation's medication is valid".
func AndThen[T any](first func() (T, []domain.Issue), next func(T) []domain.Issue) []domain.Issue {
	value, issues := first()
	if len(issues) > 0 {
		return issues
	}
	return next(value)
}

// MustBeDefined reports issue at severity domain.Fatal-or-whatever is
// passed in if present is false. The severity is carried by the issue
// argument itself (an issueBuilder.At(...) result), not fixed by this
// primitive -- MustBeDefined/ShouldBeDefined/CouldBeDefined differ only
// in which severity the caller chose to build the issue at.
func MustBeDefined(present bool, issue domain.Issue) []domain.Issue {
	if present {
		return nil
	}
	return []domain.Issue{issue}
}

// ShouldBeDefined is MustBeDefined under a different name for callers
// that want the distinction documented at the call site (Warning-level
// absence rather than Fatal/Error-level).
func ShouldBeDefined(present bool, issue domain.Issue) []domain.Issue {
	return MustBeDefined(present, issue)
}

// CouldBeDefined is MustBeDefined under a different name for Info-level
// absence checks.
func CouldBeDefined(present bool, issue domain.Issue) []domain.Issue {
	return MustBeDefined(present, issue)
}

// MustBeUndefined is the dual of MustBeDefined: used for the Rejected-
// consent regime, where presence of a slot is itself the violation.
func MustBeUndefined(present bool, issue domain.Issue) []domain.Issue {
	if !present {
		return nil
	}
	return []domain.Issue{issue}
}

// MustBeIn reports issue if value is not a member of allowed.
func MustBeIn[T comparable](value T, allowed map[T]struct{}, issue domain.Issue) []domain.Issue {
	if _, ok := allowed[value]; ok {
		return nil
	}
	return []domain.Issue{issue}
}

// MustBeInInterval reports issue if value does not fall in [min, max].
func MustBeInInterval[T Ordered](value, min, max T, issue domain.Issue) []domain.Issue {
	if value < min || value > max {
		return []domain.Issue{issue}
	}
	return nil
}

// MustMatch reports issue if value does not match pattern.
func MustMatch(value string, pattern *regexp.Regexp, issue domain.Issue) []domain.Issue {
	if pattern.MatchString(value) {
		return nil
	}
	return []domain.Issue{issue}
}

// MustEqual reports issue if got != want.
func MustEqual[T comparable](got, want T, issue domain.Issue) []domain.Issue {
	if got == want {
		return nil
	}
	return []domain.Issue{issue}
}

// MustBeBefore reports issue unless t is strictly before bound.
func MustBeBefore(t, bound time.Time, issue domain.Issue) []domain.Issue {
	if t.Before(bound) {
		return nil
	}
	return []domain.Issue{issue}
}

// MustBeAfter reports issue unless t is strictly after bound.
func MustBeAfter(t, bound time.Time, issue domain.Issue) []domain.Issue {
	if t.After(bound) {
		return nil
	}
	return []domain.Issue{issue}
}

// IfEmpty reports issue when length is zero. Used for the "missing and
// empty both emit an issue" slots (diagnoses, specimens, etc.).
func IfEmpty(length int, issue domain.Issue) []domain.Issue {
	if length > 0 {
		return nil
	}
	return []domain.Issue{issue}
}

// ValidateEach runs validate over every element of items and
// concatenates the resulting issues, preserving element order.
func ValidateEach[T any](items []T, validateOne func(T) []domain.Issue) []domain.Issue {
	var issues []domain.Issue
	for _, item := range items {
		issues = append(issues, validateOne(item)...)
	}
	return issues
}
