package mtbvalidator

import (
	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/validate"
)

// Check is the core validator entry point: given one MTB file and the
// catalogs to validate codings against, it returns either the
// unmodified file or a non-empty DataQualityReport. Pure and
// synchronous: no I/O, no logging, safe to call concurrently from
// multiple goroutines provided catalogs is itself safe for concurrent
// reads (see internal/catalog).
func Check(file domain.MTBFile, catalogs catalog.Catalogs) (domain.MTBFile, *domain.DataQualityReport) {
	patientID := file.Patient.ID

	var issues []domain.Issue
	if file.Consent != nil && file.Consent.Status == domain.ConsentRejected {
		issues = checkRejected(file, patientID)
	} else {
		issues = checkActive(file, patientID, catalogs)
	}

	if len(issues) == 0 {
		return file, nil
	}
	return file, domain.NewDataQualityReport(patientID, issues)
}

func checkRejected(file domain.MTBFile, patientID string) []domain.Issue {
	ctx := ValidationContext{PatientID: patientID}

	return validate.AllOf(
		func() []domain.Issue { _, issues := ValidatePatient(file.Patient); return issues },
		func() []domain.Issue { _, issues := ValidateConsent(*file.Consent, ctx); return issues },
		func() []domain.Issue { _, issues := ValidateEpisode(file.Episode, ctx); return issues },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.Diagnoses) > 0, patientID, "diagnoses") },
		func() []domain.Issue {
			return mustBeUndefinedSlot(len(file.PreviousGuidelineTherapies) > 0, patientID, "previousGuidelineTherapies")
		},
		func() []domain.Issue { return mustBeUndefinedSlot(file.LastGuidelineTherapy != nil, patientID, "lastGuidelineTherapy") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.ECOGStatus) > 0, patientID, "ecogStatus") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.Specimens) > 0, patientID, "specimens") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.HistologyReports) > 0, patientID, "histologyReports") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.SomaticNGSReports) > 0, patientID, "ngsReports") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.CarePlans) > 0, patientID, "carePlans") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.TherapyRecommendations) > 0, patientID, "recommendations") },
		func() []domain.Issue {
			return mustBeUndefinedSlot(len(file.GeneticCounsellingRequests) > 0, patientID, "counsellingRequests")
		},
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.RebiopsyRequests) > 0, patientID, "rebiopsyRequests") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.Claims) > 0, patientID, "claims") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.ClaimResponses) > 0, patientID, "claimResponses") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.MolecularTherapies) > 0, patientID, "molecularTherapies") },
		func() []domain.Issue { return mustBeUndefinedSlot(len(file.Responses) > 0, patientID, "responses") },
	)
}

func mustBeUndefinedSlot(present bool, patientID, slot string) []domain.Issue {
	return validate.MustBeUndefined(present,
		domain.FatalIssue("Data must not be defined for Consent 'Rejected'").At("MTBFile", patientID, slot))
}

func checkActive(file domain.MTBFile, patientID string, catalogs catalog.Catalogs) []domain.Issue {
	ctx := buildValidationContext(file, patientID, catalogs)

	return validate.AllOf(
		func() []domain.Issue { _, issues := ValidatePatient(file.Patient); return issues },
		func() []domain.Issue {
			if file.Consent == nil {
				return nil
			}
			_, issues := ValidateConsent(*file.Consent, ctx)
			return issues
		},
		func() []domain.Issue { _, issues := ValidateEpisode(file.Episode, ctx); return issues },

		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue { return validate.IfEmpty(len(file.Diagnoses), domain.ErrorIssue("Missing Diagnoses").At("MTBFile", patientID, "diagnoses")) },
				func() []domain.Issue {
					return validate.ValidateEach(file.Diagnoses, func(d domain.Diagnosis) []domain.Issue {
						_, issues := ValidateDiagnosis(d, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue {
					return validate.IfEmpty(len(file.PreviousGuidelineTherapies), domain.WarningIssue("Missing PreviousGuidelineTherapies").At("MTBFile", patientID, "previousGuidelineTherapies"))
				},
				func() []domain.Issue {
					return validate.ValidateEach(file.PreviousGuidelineTherapies, func(t domain.PreviousGuidelineTherapy) []domain.Issue {
						_, issues := ValidatePreviousGuidelineTherapy(t, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			if file.LastGuidelineTherapy == nil {
				return []domain.Issue{domain.ErrorIssue("Missing LastGuidelineTherapy").At("MTBFile", patientID, "lastGuidelineTherapy")}
			}
			_, issues := ValidateLastGuidelineTherapy(*file.LastGuidelineTherapy, ctx)
			return issues
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue { return validate.IfEmpty(len(file.ECOGStatus), domain.WarningIssue("Missing ECOGStatus").At("MTBFile", patientID, "ecogStatus")) },
				func() []domain.Issue {
					return validate.ValidateEach(file.ECOGStatus, func(e domain.ECOGStatus) []domain.Issue {
						_, issues := ValidateECOGStatus(e, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue { return validate.IfEmpty(len(file.Specimens), domain.WarningIssue("Missing Specimens").At("MTBFile", patientID, "specimens")) },
				func() []domain.Issue {
					return validate.ValidateEach(file.Specimens, func(s domain.Specimen) []domain.Issue {
						_, issues := ValidateSpecimen(s, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue { return validate.IfEmpty(len(file.HistologyReports), domain.WarningIssue("Missing HistologyReports").At("MTBFile", patientID, "histologyReports")) },
				func() []domain.Issue {
					return validate.ValidateEach(file.HistologyReports, func(h domain.HistologyReport) []domain.Issue {
						_, issues := ValidateHistologyReport(h, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue {
					return validate.IfEmpty(len(file.MolecularPathologyFindings), domain.WarningIssue("Missing MolecularPathologyFindings").At("MTBFile", patientID, "molPathoFindings"))
				},
				func() []domain.Issue {
					return validate.ValidateEach(file.MolecularPathologyFindings, func(f domain.MolecularPathologyFinding) []domain.Issue {
						_, issues := ValidateMolecularPathologyFinding(f, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue { return validate.IfEmpty(len(file.SomaticNGSReports), domain.WarningIssue("Missing SomaticNGSReports").At("MTBFile", patientID, "ngsReports")) },
				func() []domain.Issue {
					return validate.ValidateEach(file.SomaticNGSReports, func(n domain.SomaticNGSReport) []domain.Issue {
						_, issues := ValidateSomaticNGSReport(n, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue { return validate.IfEmpty(len(file.CarePlans), domain.WarningIssue("Missing CarePlans").At("MTBFile", patientID, "carePlans")) },
				func() []domain.Issue {
					return validate.ValidateEach(file.CarePlans, func(c domain.CarePlan) []domain.Issue {
						_, issues := ValidateCarePlan(c, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue {
					return validate.IfEmpty(len(file.TherapyRecommendations), domain.WarningIssue("Missing TherapyRecommendations").At("MTBFile", patientID, "recommendations"))
				},
				func() []domain.Issue {
					return validate.ValidateEach(file.TherapyRecommendations, func(r domain.TherapyRecommendation) []domain.Issue {
						_, issues := ValidateTherapyRecommendation(r, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue { return validate.IfEmpty(len(file.Claims), domain.WarningIssue("Missing Claims").At("MTBFile", patientID, "claims")) },
				func() []domain.Issue {
					return validate.ValidateEach(file.Claims, func(c domain.Claim) []domain.Issue {
						_, issues := ValidateClaim(c, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue {
					return validate.IfEmpty(len(file.ClaimResponses), domain.WarningIssue("Missing ClaimResponses").At("MTBFile", patientID, "claimResponses"))
				},
				func() []domain.Issue {
					return validate.ValidateEach(file.ClaimResponses, func(c domain.ClaimResponse) []domain.Issue {
						_, issues := ValidateClaimResponse(c, ctx)
						return issues
					})
				},
			)
		},

		func() []domain.Issue {
			return validate.ValidateEach(file.GeneticCounsellingRequests, func(g domain.GeneticCounsellingRequest) []domain.Issue {
				_, issues := ValidateGeneticCounsellingRequest(g, ctx)
				return issues
			})
		},
		func() []domain.Issue {
			return validate.ValidateEach(file.RebiopsyRequests, func(r domain.RebiopsyRequest) []domain.Issue {
				_, issues := ValidateRebiopsyRequest(r, ctx)
				return issues
			})
		},
		func() []domain.Issue {
			return validate.ValidateEach(file.HistologyReevaluationRequests, func(r domain.HistologyReevaluationRequest) []domain.Issue {
				_, issues := ValidateHistologyReevaluationRequest(r, ctx)
				return issues
			})
		},
		func() []domain.Issue {
			return validate.ValidateEach(file.StudyInclusionRequests, func(r domain.StudyInclusionRequest) []domain.Issue {
				_, issues := ValidateStudyInclusionRequest(r, ctx)
				return issues
			})
		},

		func() []domain.Issue {
			return validate.AllOf(
				func() []domain.Issue {
					empty := file.MolecularTherapies != nil && len(file.MolecularTherapies) == 0
					return validate.MustBeUndefined(empty, domain.WarningIssue("MolecularTherapies present but empty").At("MTBFile", patientID, "molecularTherapies"))
				},
				func() []domain.Issue {
					return validate.ValidateEach(file.MolecularTherapies, func(t domain.MolecularTherapy) []domain.Issue {
						_, issues := ValidateMolecularTherapy(t, ctx)
						return issues
					})
				},
			)
		},
		func() []domain.Issue {
			return validate.ValidateEach(file.Responses, func(r domain.Response) []domain.Issue {
				_, issues := ValidateResponse(r, ctx)
				return issues
			})
		},
	)
}

// buildValidationContext constructs every cross-reference index from
// file before any record validator runs.
func buildValidationContext(file domain.MTBFile, patientID string, catalogs catalog.Catalogs) ValidationContext {
	ctx := ValidationContext{
		PatientID: patientID,
		Catalogs:  catalogs,
	}

	diagnosisIDs := make([]string, 0, len(file.Diagnoses))
	icd10Codes := make([]string, 0, len(file.Diagnoses))
	for _, d := range file.Diagnoses {
		diagnosisIDs = append(diagnosisIDs, d.ID)
		if d.ICD10 != nil {
			icd10Codes = append(icd10Codes, d.ICD10.Code)
		}
	}
	ctx.DiagnosisIDs = newIDSet(diagnosisIDs...)
	ctx.ICD10Codes = newIDSet(icd10Codes...)

	histologyIDs := make([]string, 0, len(file.HistologyReports))
	for _, h := range file.HistologyReports {
		histologyIDs = append(histologyIDs, h.ID)
	}
	ctx.HistologyIDs = newIDSet(histologyIDs...)

	specimenIDs := make([]string, 0, len(file.Specimens))
	for _, s := range file.Specimens {
		specimenIDs = append(specimenIDs, s.ID)
	}
	ctx.SpecimenIDs = newIDSet(specimenIDs...)

	recommendationIDs := make([]string, 0, len(file.TherapyRecommendations))
	for _, r := range file.TherapyRecommendations {
		recommendationIDs = append(recommendationIDs, r.ID)
	}
	ctx.RecommendationIDs = newIDSet(recommendationIDs...)

	counsellingReqIDs := make([]string, 0, len(file.GeneticCounsellingRequests))
	for _, g := range file.GeneticCounsellingRequests {
		counsellingReqIDs = append(counsellingReqIDs, g.ID)
	}
	ctx.CounsellingReqIDs = newIDSet(counsellingReqIDs...)

	rebiopsyReqIDs := make([]string, 0, len(file.RebiopsyRequests))
	for _, r := range file.RebiopsyRequests {
		rebiopsyReqIDs = append(rebiopsyReqIDs, r.ID)
	}
	ctx.RebiopsyReqIDs = newIDSet(rebiopsyReqIDs...)

	claimIDs := make([]string, 0, len(file.Claims))
	for _, c := range file.Claims {
		claimIDs = append(claimIDs, c.ID)
	}
	ctx.ClaimIDs = newIDSet(claimIDs...)

	therapyRefs := make([]string, 0, len(file.PreviousGuidelineTherapies)+1)
	for _, t := range file.PreviousGuidelineTherapies {
		therapyRefs = append(therapyRefs, t.ID)
	}
	if file.LastGuidelineTherapy != nil {
		therapyRefs = append(therapyRefs, file.LastGuidelineTherapy.ID)
	}
	for _, mt := range file.MolecularTherapies {
		for _, entry := range mt.History {
			therapyRefs = append(therapyRefs, entry.ID)
		}
	}
	ctx.TherapyRefs = newIDSet(therapyRefs...)

	respondedTherapyRefs := make([]string, 0, len(file.Responses))
	for _, r := range file.Responses {
		respondedTherapyRefs = append(respondedTherapyRefs, string(r.TherapyRef))
	}
	ctx.RespondedTherapyRefs = newIDSet(respondedTherapyRefs...)

	return ctx
}
