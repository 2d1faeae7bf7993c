package mtbvalidator

import (
	"fmt"

	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/validate"
)

// ValidateSpecimen checks a single Specimen record: its icd10 coding
// must parse, and the code must appear in the diagnosis-ICD-10-codes
// index for the same patient -- otherwise no diagnosis justifies this
// specimen. type/collection missing each produce a Warning.
func ValidateSpecimen(s domain.Specimen, ctx ValidationContext) (domain.Specimen, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(s.PatientRef, "Specimen", s.ID, ctx) },
		func() []domain.Issue { return validateICD10(s.ICD10, "Specimen", s.ID, "icd10", ctx) },
		func() []domain.Issue {
			if !ctx.ICD10Codes.has(s.ICD10.Code) {
				return []domain.Issue{domain.FatalIssue(fmt.Sprintf("no diagnosis justifies ICD-10-GM code %q", s.ICD10.Code)).At("Specimen", s.ID, "icd10")}
			}
			return nil
		},
		func() []domain.Issue {
			return validate.ShouldBeDefined(s.Type != nil, domain.WarningIssue("Missing Type").At("Specimen", s.ID, "type"))
		},
		func() []domain.Issue {
			return validate.ShouldBeDefined(s.Collection != nil, domain.WarningIssue("Missing Collection").At("Specimen", s.ID, "collection"))
		},
	)
	return s, issues
}

// ValidateHistologyReport checks a HistologyReport record: specimen
// reference existence, issuedOn presence, required+catalog-checked
// morphology coding, and a tumor content that must use the Histologic
// method and fall in [0,1].
func ValidateHistologyReport(h domain.HistologyReport, ctx ValidationContext) (domain.HistologyReport, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(h.PatientRef, "HistologyReport", h.ID, ctx) },
		func() []domain.Issue { return validateSpecimenRef(h.SpecimenRef, "HistologyReport", h.ID, ctx) },
		func() []domain.Issue {
			return validate.MustBeDefined(h.IssuedOn != nil, domain.ErrorIssue("Missing IssuedOn").At("HistologyReport", h.ID, "issuedOn"))
		},
		func() []domain.Issue {
			if h.Morphology == nil {
				return []domain.Issue{domain.ErrorIssue("Missing Morphology").At("HistologyReport", h.ID, "morphology")}
			}
			return validateICDO3Morphology(*h.Morphology, "HistologyReport", h.ID, "morphology", ctx)
		},
		func() []domain.Issue {
			if h.TumorContent == nil {
				return []domain.Issue{domain.ErrorIssue("Missing TumorContent").At("HistologyReport", h.ID, "tumorContent")}
			}
			return validateTumorContent(*h.TumorContent, domain.Histologic, "HistologyReport", h.ID)
		},
	)
	return h, issues
}

// ValidateMolecularPathologyFinding checks a
// MolecularPathologyFinding's patient and specimen back-references.
func ValidateMolecularPathologyFinding(f domain.MolecularPathologyFinding, ctx ValidationContext) (domain.MolecularPathologyFinding, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(f.PatientRef, "MolecularPathologyFinding", f.ID, ctx) },
		func() []domain.Issue { return validateSpecimenRef(f.SpecimenRef, "MolecularPathologyFinding", f.ID, ctx) },
	)
	return f, issues
}

// ValidateSomaticNGSReport checks a SomaticNGSReport record: specimen
// reference existence; tumor content must use the Bioinformatic method
// and fall in [0,1]; brcaness/msi are Info-recommended and range
// checked when present; tmb.value must fall in [0, 1e6].
func ValidateSomaticNGSReport(n domain.SomaticNGSReport, ctx ValidationContext) (domain.SomaticNGSReport, []domain.Issue) {
	issues := validate.AllOf(
		func() []domain.Issue { return checkPatientRef(n.PatientRef, "SomaticNGSReport", n.ID, ctx) },
		func() []domain.Issue { return validateSpecimenRef(n.SpecimenRef, "SomaticNGSReport", n.ID, ctx) },
		func() []domain.Issue {
			return validateTumorContent(n.TumorContent, domain.Bioinformatic, "SomaticNGSReport", n.ID)
		},
		func() []domain.Issue {
			if n.BRCAness == nil {
				return []domain.Issue{domain.InfoIssue("Missing BRCAness").At("SomaticNGSReport", n.ID, "brcaness")}
			}
			return validate.MustBeInInterval(*n.BRCAness, 0.0, 1.0, domain.ErrorIssue("BRCAness outside [0.0,1.0]").At("SomaticNGSReport", n.ID, "brcaness"))
		},
		func() []domain.Issue {
			if n.MSI == nil {
				return []domain.Issue{domain.InfoIssue("Missing MSI").At("SomaticNGSReport", n.ID, "msi")}
			}
			return validate.MustBeInInterval(*n.MSI, 0.0, 2.0, domain.ErrorIssue("MSI outside [0.0,2.0]").At("SomaticNGSReport", n.ID, "msi"))
		},
		func() []domain.Issue {
			return validate.MustBeInInterval(n.TMB.Value, 0.0, 1000000.0, domain.ErrorIssue(fmt.Sprintf("TMB value %v outside [0.0,1000000.0]", n.TMB.Value)).At("SomaticNGSReport", n.ID, "tmb"))
		},
	)
	return n, issues
}

func validateSpecimenRef(ref domain.Reference, entityType, entityID string, ctx ValidationContext) []domain.Issue {
	if ctx.SpecimenIDs.has(string(ref)) {
		return nil
	}
	return []domain.Issue{domain.FatalIssue(fmt.Sprintf("referenced specimen %q does not exist", ref)).At(entityType, entityID, "specimen")}
}

func validateTumorContent(tc domain.TumorCellContent, wantMethod domain.TumorContentMethod, entityType, entityID string) []domain.Issue {
	return validate.AllOf(
		func() []domain.Issue {
			return validate.MustEqual(tc.Method, wantMethod, domain.ErrorIssue(fmt.Sprintf("tumor content method must be %s", wantMethod)).At(entityType, entityID, "tumorContent"))
		},
		func() []domain.Issue {
			return validate.MustBeInInterval(tc.Value, 0.0, 1.0, domain.ErrorIssue("tumor content value outside [0.0,1.0]").At(entityType, entityID, "tumorContent"))
		},
	)
}
