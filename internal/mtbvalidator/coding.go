package mtbvalidator

import (
	"fmt"

	"github.com/CCC-MF/mtb-validator/internal/domain"
)

// defaultICD10GMVersion is substituted when a Coding carries no
// version at all.
const defaultICD10GMVersion = "2019"

// validateICD10 checks an ICD-10-GM coding's version and code against
// the catalog, substituting defaultICD10GMVersion when version is
// absent.
func validateICD10(coding domain.Coding, entityType, entityID, attribute string, ctx ValidationContext) []domain.Issue {
	version := coding.Version
	if version == "" {
		version = defaultICD10GMVersion
	}

	set, ok := ctx.Catalogs.ICD10GM(version)
	if !ok {
		return []domain.Issue{domain.ErrorIssue(fmt.Sprintf("unknown ICD-10-GM version %q", version)).At(entityType, entityID, attribute)}
	}
	if !set.Contains(coding.Code) {
		return []domain.Issue{domain.ErrorIssue(fmt.Sprintf("ICD-10-GM code %q not found in catalog version %q", coding.Code, version)).At(entityType, entityID, attribute)}
	}
	return nil
}

// validateICDO3Topography checks an ICD-O-3 topography coding, with
// no default version: an absent version is itself an Error.
func validateICDO3Topography(coding domain.Coding, entityType, entityID, attribute string, ctx ValidationContext) []domain.Issue {
	if coding.Version == "" {
		return []domain.Issue{domain.ErrorIssue("ICD-O-3 topography coding is missing a version").At(entityType, entityID, attribute)}
	}
	set, ok := ctx.Catalogs.ICDO3Topography(coding.Version)
	if !ok {
		return []domain.Issue{domain.ErrorIssue(fmt.Sprintf("unknown ICD-O-3 version %q", coding.Version)).At(entityType, entityID, attribute)}
	}
	if !set.Contains(coding.Code) {
		return []domain.Issue{domain.ErrorIssue(fmt.Sprintf("ICD-O-3-T code %q not found in catalog version %q", coding.Code, coding.Version)).At(entityType, entityID, attribute)}
	}
	return nil
}

// validateICDO3Morphology checks an ICD-O-3 morphology coding.
func validateICDO3Morphology(coding domain.Coding, entityType, entityID, attribute string, ctx ValidationContext) []domain.Issue {
	if coding.Version == "" {
		return []domain.Issue{domain.ErrorIssue("ICD-O-3 morphology coding is missing a version").At(entityType, entityID, attribute)}
	}
	set, ok := ctx.Catalogs.ICDO3Morphology(coding.Version)
	if !ok {
		return []domain.Issue{domain.ErrorIssue(fmt.Sprintf("unknown ICD-O-3 version %q", coding.Version)).At(entityType, entityID, attribute)}
	}
	if !set.Contains(coding.Code) {
		return []domain.Issue{domain.ErrorIssue(fmt.Sprintf("ICD-O-3-M code %q not found in catalog version %q", coding.Code, coding.Version)).At(entityType, entityID, attribute)}
	}
	return nil
}

// validateMedication checks a single medication Coding against the
// ATC catalog.
func validateMedication(coding domain.Coding, entityType, entityID, attribute string, ctx ValidationContext) []domain.Issue {
	if !ctx.Catalogs.ATC().Contains(coding.Code) {
		return []domain.Issue{domain.ErrorIssue(fmt.Sprintf("ATC code %q not found in catalog", coding.Code)).At(entityType, entityID, attribute)}
	}
	return nil
}

// validateMedications validates every element of a medication list.
func validateMedications(medication []domain.Coding, entityType, entityID, attribute string, ctx ValidationContext) []domain.Issue {
	var issues []domain.Issue
	for _, coding := range medication {
		issues = append(issues, validateMedication(coding, entityType, entityID, attribute, ctx)...)
	}
	return issues
}

// checkPatientRef reports a Fatal issue if ref does not equal the
// patient id the whole MTBFile belongs to.
func checkPatientRef(ref domain.Reference, entityType, entityID string, ctx ValidationContext) []domain.Issue {
	if string(ref) == ctx.PatientID {
		return nil
	}
	return []domain.Issue{domain.FatalIssue(fmt.Sprintf("patient reference %q does not match patient %q", ref, ctx.PatientID)).At(entityType, entityID, "patient")}
}
