package validate

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CCC-MF/mtb-validator/internal/domain"
)

func TestAllOf(t *testing.T) {
	issues := AllOf(
		func() []domain.Issue { return []domain.Issue{domain.ErrorIssue("a").At("X", "1", "f")} },
		func() []domain.Issue { return nil },
		func() []domain.Issue { return []domain.Issue{domain.WarningIssue("b").At("X", "1", "g")} },
	)
	assert.Len(t, issues, 2)
	assert.Equal(t, "a", issues[0].Message)
	assert.Equal(t, "b", issues[1].Message)
}

func TestAndThen(t *testing.T) {
	t.Run("runs next when first is clean", func(t *testing.T) {
		issues := AndThen(
			func() (int, []domain.Issue) { return 42, nil },
			func(v int) []domain.Issue {
				assert.Equal(t, 42, v)
				return []domain.Issue{domain.FatalIssue("next ran").At("X", "1", "f")}
			},
		)
		assert.Len(t, issues, 1)
	})

	t.Run("short-circuits when first has issues", func(t *testing.T) {
		called := false
		issues := AndThen(
			func() (int, []domain.Issue) {
				return 0, []domain.Issue{domain.FatalIssue("broken").At("X", "1", "f")}
			},
			func(v int) []domain.Issue {
				called = true
				return nil
			},
		)
		assert.Len(t, issues, 1)
		assert.False(t, called)
	})
}

func TestMustBeDefined(t *testing.T) {
	issue := domain.ErrorIssue("missing").At("X", "1", "f")

	assert.Empty(t, MustBeDefined(true, issue))
	assert.Equal(t, []domain.Issue{issue}, MustBeDefined(false, issue))
}

func TestMustBeUndefined(t *testing.T) {
	issue := domain.FatalIssue("must not be defined").At("X", "1", "slot")

	assert.Empty(t, MustBeUndefined(false, issue))
	assert.Equal(t, []domain.Issue{issue}, MustBeUndefined(true, issue))
}

func TestMustBeIn(t *testing.T) {
	allowed := map[string]struct{}{"ACTIVE": {}, "REJECTED": {}}
	issue := domain.ErrorIssue("bad status").At("Consent", "1", "status")

	assert.Empty(t, MustBeIn("ACTIVE", allowed, issue))
	assert.Equal(t, []domain.Issue{issue}, MustBeIn("PENDING", allowed, issue))
}

func TestMustBeInInterval(t *testing.T) {
	issue := domain.ErrorIssue("therapy line out of range").At("LastGuidelineTherapy", "1", "therapyLine")

	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lower bound", 0, false},
		{"upper bound", 9, false},
		{"just above bound", 10, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustBeInInterval(tt.value, 0, 9, issue)
			if tt.wantErr {
				assert.Equal(t, []domain.Issue{issue}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestMustBeInIntervalFloat(t *testing.T) {
	issue := domain.ErrorIssue("tumor content out of range").At("TumorCellContent", "1", "value")

	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0.0, false},
		{"one", 1.0, false},
		{"just above one", 1.0001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustBeInInterval(tt.value, 0.0, 1.0, issue)
			if tt.wantErr {
				assert.Equal(t, []domain.Issue{issue}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestMustMatch(t *testing.T) {
	nctPattern := regexp.MustCompile(`^NCT\d{8}$`)
	issue := domain.ErrorIssue("invalid NCT number").At("StudyInclusionRequest", "1", "nctNumber")

	assert.Empty(t, MustMatch("NCT01234567", nctPattern, issue))
	assert.Equal(t, []domain.Issue{issue}, MustMatch("NCT123", nctPattern, issue))
}

func TestMustEqual(t *testing.T) {
	issue := domain.FatalIssue("patient back-reference mismatch").At("Diagnosis", "1", "patient")

	assert.Empty(t, MustEqual("P1", "P1", issue))
	assert.Equal(t, []domain.Issue{issue}, MustEqual("P1", "P2", issue))
}

func TestMustBeBeforeAfter(t *testing.T) {
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)
	issue := domain.WarningIssue("date out of order").At("Diagnosis", "1", "recordedOn")

	assert.Empty(t, MustBeBefore(earlier, now, issue))
	assert.NotEmpty(t, MustBeBefore(now, earlier, issue))

	assert.Empty(t, MustBeAfter(now, earlier, issue))
	assert.NotEmpty(t, MustBeAfter(earlier, now, issue))
}

func TestIfEmpty(t *testing.T) {
	issue := domain.ErrorIssue("diagnoses missing").At("MTBFile", "P1", "diagnoses")

	assert.Empty(t, IfEmpty(1, issue))
	assert.Equal(t, []domain.Issue{issue}, IfEmpty(0, issue))
}

func TestValidateEach(t *testing.T) {
	items := []string{"a", "bad", "c"}
	issues := ValidateEach(items, func(s string) []domain.Issue {
		if s == "bad" {
			return []domain.Issue{domain.ErrorIssue("bad element").At("X", s, "f")}
		}
		return nil
	})
	assert.Len(t, issues, 1)
	assert.Equal(t, "bad element", issues[0].Message)
}
