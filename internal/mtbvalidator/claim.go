package mtbvalidator

import (
	"fmt"

	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/validate"
)

// ValidateClaim checks a Claim record's patient back-reference and
// the existence of the recommendation it claims reimbursement for.
func ValidateClaim(c domain.Claim, ctx ValidationContext) (domain.Claim, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(c.PatientRef, "Claim", c.ID, ctx) },
		func() []domain.Issue {
			if ctx.RecommendationIDs.has(string(c.RecommendationRef)) {
				return nil
			}
			return []domain.Issue{domain.FatalIssue(fmt.Sprintf("referenced recommendation %q does not exist", c.RecommendationRef)).At("Claim", c.ID, "recommendation")}
		},
	)
	return c, issues
}

// ValidateClaimResponse checks a ClaimResponse record's patient
// back-reference, the existence of the Claim it responds to, and that
// a reason is given (Warning if absent).
func ValidateClaimResponse(r domain.ClaimResponse, ctx ValidationContext) (domain.ClaimResponse, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(r.PatientRef, "ClaimResponse", r.ID, ctx) },
		func() []domain.Issue {
			if ctx.ClaimIDs.has(string(r.ClaimRef)) {
				return nil
			}
			return []domain.Issue{domain.FatalIssue(fmt.Sprintf("referenced claim %q does not exist", r.ClaimRef)).At("ClaimResponse", r.ID, "claim")}
		},
		func() []domain.Issue {
			return validate.ShouldBeDefined(r.Reason != nil, domain.WarningIssue("Missing Reason").At("ClaimResponse", r.ID, "reason"))
		},
	)
	return r, issues
}
