package mtbvalidator

import (
	"fmt"
	"regexp"

	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/validate"
)

var nctPattern = regexp.MustCompile(`^NCT\d{8}$`)

// ValidateCarePlan checks a CarePlan record: diagnosis reference
// existence, recommendations required and each id catalog-checked
// against the recommendations index, and counselling/rebiopsy
// references checked when present.
func ValidateCarePlan(c domain.CarePlan, ctx ValidationContext) (domain.CarePlan, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(c.PatientRef, "CarePlan", c.ID, ctx) },
		func() []domain.Issue { return validateDiagnosisRef(c.DiagnosisRef, "CarePlan", c.ID, ctx) },
		func() []domain.Issue {
			if len(c.RecommendationRefs) == 0 {
				return []domain.Issue{domain.ErrorIssue("Missing TherapyRecommendations").At("CarePlan", c.ID, "recommendations")}
			}
			var issues []domain.Issue
			for _, ref := range c.RecommendationRefs {
				if !ctx.RecommendationIDs.has(string(ref)) {
					issues = append(issues, domain.FatalIssue(fmt.Sprintf("referenced recommendation %q does not exist", ref)).At("CarePlan", c.ID, "recommendations"))
				}
			}
			return issues
		},
		func() []domain.Issue {
			if c.CounsellingReqRef == nil {
				return nil
			}
			if ctx.CounsellingReqIDs.has(string(*c.CounsellingReqRef)) {
				return nil
			}
			return []domain.Issue{domain.FatalIssue(fmt.Sprintf("referenced counselling request %q does not exist", *c.CounsellingReqRef)).At("CarePlan", c.ID, "counsellingRequest")}
		},
		func() []domain.Issue {
			var issues []domain.Issue
			for _, ref := range c.RebiopsyRequestRefs {
				if !ctx.RebiopsyReqIDs.has(string(ref)) {
					issues = append(issues, domain.FatalIssue(fmt.Sprintf("referenced rebiopsy request %q does not exist", ref)).At("CarePlan", c.ID, "rebiopsyRequests"))
				}
			}
			return issues
		},
	)
	return c, issues
}

// ValidateTherapyRecommendation checks a TherapyRecommendation
// record's patient/diagnosis back-references, therapy line domain
// when a therapy line is present, and element-wise medication
// validation.
func ValidateTherapyRecommendation(r domain.TherapyRecommendation, ctx ValidationContext) (domain.TherapyRecommendation, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(r.PatientRef, "TherapyRecommendation", r.ID, ctx) },
		func() []domain.Issue { return validateDiagnosisRef(r.DiagnosisRef, "TherapyRecommendation", r.ID, ctx) },
		func() []domain.Issue {
			if r.TherapyLine == nil {
				return nil
			}
			return validateTherapyLine(r.TherapyLine, "TherapyRecommendation", r.ID)
		},
		func() []domain.Issue {
			return validateMedications(r.Medication, "TherapyRecommendation", r.ID, "medication", ctx)
		},
	)
	return r, issues
}

// ValidateGeneticCounsellingRequest checks a
// GeneticCounsellingRequest's patient back-reference.
func ValidateGeneticCounsellingRequest(g domain.GeneticCounsellingRequest, ctx ValidationContext) (domain.GeneticCounsellingRequest, []domain.Issue) {
	issues := checkPatientRef(g.PatientRef, "GeneticCounsellingRequest", g.ID, ctx)
	return g, issues
}

// ValidateRebiopsyRequest checks a RebiopsyRequest's patient and
// specimen back-references.
func ValidateRebiopsyRequest(r domain.RebiopsyRequest, ctx ValidationContext) (domain.RebiopsyRequest, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(r.PatientRef, "RebiopsyRequest", r.ID, ctx) },
		func() []domain.Issue { return validateSpecimenRef(r.SpecimenRef, "RebiopsyRequest", r.ID, ctx) },
	)
	return r, issues
}

// ValidateHistologyReevaluationRequest checks a
// HistologyReevaluationRequest's patient and specimen back-references.
func ValidateHistologyReevaluationRequest(r domain.HistologyReevaluationRequest, ctx ValidationContext) (domain.HistologyReevaluationRequest, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(r.PatientRef, "HistologyReevaluationRequest", r.ID, ctx) },
		func() []domain.Issue { return validateSpecimenRef(r.SpecimenRef, "HistologyReevaluationRequest", r.ID, ctx) },
	)
	return r, issues
}

// ValidateStudyInclusionRequest checks a StudyInclusionRequest's
// patient/diagnosis back-references and that its NCT number matches
// the ClinicalTrials.gov identifier pattern.
func ValidateStudyInclusionRequest(r domain.StudyInclusionRequest, ctx ValidationContext) (domain.StudyInclusionRequest, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(r.PatientRef, "StudyInclusionRequest", r.ID, ctx) },
		func() []domain.Issue { return validateDiagnosisRef(r.DiagnosisRef, "StudyInclusionRequest", r.ID, ctx) },
		func() []domain.Issue {
			return validate.MustMatch(r.NCTNumber, nctPattern, domain.ErrorIssue(fmt.Sprintf("NCT number %q does not match NCT\\d{8}", r.NCTNumber)).At("StudyInclusionRequest", r.ID, "nctNumber"))
		},
	)
	return r, issues
}
