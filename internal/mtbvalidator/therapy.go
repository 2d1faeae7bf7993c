package mtbvalidator

import (
	"fmt"

	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/validate"
)

// ValidateMolecularTherapyHistoryEntry checks a single history entry:
// patient back-reference, existence of the recommendation it is based
// on, and element-wise medication validation for the variants that
// carry medication (Stopped/Completed/Ongoing) -- NotDone carries none.
func ValidateMolecularTherapyHistoryEntry(e domain.MolecularTherapyHistoryEntry, ctx ValidationContext) (domain.MolecularTherapyHistoryEntry, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(e.PatientRef, "MolecularTherapy", e.ID, ctx) },
		func() []domain.Issue {
			if ctx.RecommendationIDs.has(string(e.RecommendationRef)) {
				return nil
			}
			return []domain.Issue{domain.FatalIssue(fmt.Sprintf("referenced recommendation %q does not exist", e.RecommendationRef)).At("MolecularTherapy", e.ID, "recommendation")}
		},
		func() []domain.Issue {
			switch e.Status {
			case domain.TherapyStopped, domain.TherapyCompleted, domain.TherapyOngoing:
				return validateMedications(e.Medication, "MolecularTherapy", e.ID, "medication", ctx)
			default:
				return nil
			}
		},
	)
	return e, issues
}

// ValidateMolecularTherapy validates every history entry of a single
// MolecularTherapy aggregate.
func ValidateMolecularTherapy(t domain.MolecularTherapy, ctx ValidationContext) (domain.MolecularTherapy, []domain.Issue) {
	issues := validate.ValidateEach(t.History, func(e domain.MolecularTherapyHistoryEntry) []domain.Issue {
		_, issues := ValidateMolecularTherapyHistoryEntry(e, ctx)
		return issues
	})
	return t, issues
}

// ValidateResponse checks a Response record's patient back-reference
// and the existence of the therapy it responds to (a guideline therapy
// or a molecular therapy history entry).
func ValidateResponse(r domain.Response, ctx ValidationContext) (domain.Response, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(r.PatientRef, "Response", r.ID, ctx) },
		func() []domain.Issue {
			if ctx.TherapyRefs.has(string(r.TherapyRef)) {
				return nil
			}
			return []domain.Issue{domain.FatalIssue(fmt.Sprintf("referenced therapy %q does not exist", r.TherapyRef)).At("Response", r.ID, "therapy")}
		},
	)
	return r, issues
}
