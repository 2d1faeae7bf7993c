package mtbvalidator

import (
	"fmt"

	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/validate"
)

// ValidateDiagnosis checks a single Diagnosis record: icd10 is
// required and catalog-checked; icdO3T is optional but catalog-checked
// when present; every referenced HistologyReport id must exist in the
// file's histology index.
func ValidateDiagnosis(d domain.Diagnosis, ctx ValidationContext) (domain.Diagnosis, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(d.PatientRef, "Diagnosis", d.ID, ctx) },
		func() []domain.Issue {
			if d.ICD10 == nil {
				return []domain.Issue{domain.ErrorIssue("Missing ICD-10-GM coding").At("Diagnosis", d.ID, "icd10")}
			}
			return validateICD10(*d.ICD10, "Diagnosis", d.ID, "icd10", ctx)
		},
		func() []domain.Issue {
			if d.ICDO3T == nil {
				return []domain.Issue{domain.InfoIssue("Missing ICD-O-3-T coding").At("Diagnosis", d.ID, "icdO3T")}
			}
			return validateICDO3Topography(*d.ICDO3T, "Diagnosis", d.ID, "icdO3T", ctx)
		},
		func() []domain.Issue {
			var issues []domain.Issue
			for _, ref := range d.HistologyReportRefs {
				if !ctx.HistologyIDs.has(string(ref)) {
					issues = append(issues, domain.FatalIssue(fmt.Sprintf("referenced histology report %q does not exist", ref)).At("Diagnosis", d.ID, "histologyReports"))
				}
			}
			return issues
		},
	)
	return d, issues
}

// ValidatePreviousGuidelineTherapy checks a PreviousGuidelineTherapy
// record: diagnosis reference existence, therapy line domain, and
// element-wise medication validation.
func ValidatePreviousGuidelineTherapy(t domain.PreviousGuidelineTherapy, ctx ValidationContext) (domain.PreviousGuidelineTherapy, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(t.PatientRef, "PreviousGuidelineTherapy", t.ID, ctx) },
		func() []domain.Issue { return validateDiagnosisRef(t.DiagnosisRef, "PreviousGuidelineTherapy", t.ID, ctx) },
		func() []domain.Issue { return validateTherapyLine(t.TherapyLine, "PreviousGuidelineTherapy", t.ID) },
		func() []domain.Issue { return validateMedications(t.Medication, "PreviousGuidelineTherapy", t.ID, "medication", ctx) },
	)
	return t, issues
}

// ValidateLastGuidelineTherapy checks a LastGuidelineTherapy record:
// everything PreviousGuidelineTherapy checks, plus reasonStopped
// presence and a missing-Response check indexed over Response.TherapyRef
// rather than the therapy-refs union (which always contains the
// therapy's own id and so could never detect an absence).
func ValidateLastGuidelineTherapy(t domain.LastGuidelineTherapy, ctx ValidationContext) (domain.LastGuidelineTherapy, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(t.PatientRef, "LastGuidelineTherapy", t.ID, ctx) },
		func() []domain.Issue { return validateDiagnosisRef(t.DiagnosisRef, "LastGuidelineTherapy", t.ID, ctx) },
		func() []domain.Issue { return validateTherapyLine(t.TherapyLine, "LastGuidelineTherapy", t.ID) },
		func() []domain.Issue { return validateMedications(t.Medication, "LastGuidelineTherapy", t.ID, "medication", ctx) },
		func() []domain.Issue {
			return validate.ShouldBeDefined(t.ReasonStopped != nil, domain.WarningIssue("Missing ReasonStopped").At("LastGuidelineTherapy", t.ID, "reasonStopped"))
		},
		func() []domain.Issue {
			return validate.ShouldBeDefined(ctx.RespondedTherapyRefs.has(t.ID), domain.WarningIssue("Missing Response").At("LastGuidelineTherapy", t.ID, "id"))
		},
	)
	return t, issues
}

func validateDiagnosisRef(ref domain.Reference, entityType, entityID string, ctx ValidationContext) []domain.Issue {
	if ctx.DiagnosisIDs.has(string(ref)) {
		return nil
	}
	return []domain.Issue{domain.FatalIssue(fmt.Sprintf("referenced diagnosis %q does not exist", ref)).At(entityType, entityID, "diagnosis")}
}

func validateTherapyLine(line *domain.TherapyLine, entityType, entityID string) []domain.Issue {
	if line == nil {
		return []domain.Issue{domain.WarningIssue("Missing TherapyLine").At(entityType, entityID, "therapyLine")}
	}
	return validate.MustBeInInterval(int(*line), 0, 9, domain.ErrorIssue(fmt.Sprintf("TherapyLine %d outside [0,9]", *line)).At(entityType, entityID, "therapyLine"))
}
