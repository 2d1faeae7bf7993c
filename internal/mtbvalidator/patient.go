package mtbvalidator

import (
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/validate"
)

// ValidatePatient checks the single Patient record. birthDate is
// required; insurance is merely recommended; dateOfDeath, if present,
// must be strictly before now and strictly after birthDate.
func ValidatePatient(p domain.Patient) (domain.Patient, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue {
			return validate.MustBeDefined(p.BirthDate != nil, domain.ErrorIssue("Missing BirthDate").At("Patient", p.ID, "birthdate"))
		},
		func() []domain.Issue {
			return validate.ShouldBeDefined(p.Insurance != nil, domain.WarningIssue("Missing Insurance").At("Patient", p.ID, "insurance"))
		},
		func() []domain.Issue {
			if p.DateOfDeath == nil {
				return validate.CouldBeDefined(false, domain.InfoIssue("Missing DateOfDeath").At("Patient", p.ID, "dateOfDeath"))
			}
			var issues []domain.Issue
			issues = append(issues, validate.MustBeBefore(p.DateOfDeath.Time, domain.Today().Time.AddDate(0, 0, 1), domain.ErrorIssue("DateOfDeath must not be in the future").At("Patient", p.ID, "dateOfDeath"))...)
			if p.BirthDate != nil {
				issues = append(issues, validate.MustBeAfter(p.DateOfDeath.Time, p.BirthDate.Time, domain.ErrorIssue("DateOfDeath must be after BirthDate").At("Patient", p.ID, "dateOfDeath"))...)
			}
			return issues
		},
	)
	return p, issues
}

// ValidateConsent checks the single Consent record's patient
// back-reference and that its status is one of the known values.
func ValidateConsent(c domain.Consent, ctx ValidationContext) (domain.Consent, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(c.PatientRef, "Consent", c.ID, ctx) },
		func() []domain.Issue {
			allowed := map[domain.ConsentStatus]struct{}{
				domain.ConsentActive:   {},
				domain.ConsentRejected: {},
			}
			return validate.MustBeIn(c.Status, allowed, domain.ErrorIssue("unknown consent status").At("Consent", c.ID, "status"))
		},
	)
	return c, issues
}

// ValidateEpisode checks the single MTBEpisode record's patient
// back-reference.
func ValidateEpisode(e domain.MTBEpisode, ctx ValidationContext) (domain.MTBEpisode, []domain.Issue) {
	issues := checkPatientRef(e.PatientRef, "MTBEpisode", e.ID, ctx)
	return e, issues
}

// ValidateECOGStatus checks a single ECOGStatus record's patient
// back-reference.
func ValidateECOGStatus(e domain.ECOGStatus, ctx ValidationContext) (domain.ECOGStatus, []domain.Issue) {
	issues := checkPatientRef(e.PatientRef, "ECOGStatus", e.ID, ctx)
	return e, issues
}
