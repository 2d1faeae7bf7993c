// Package mtbvalidator implements the structural/referential validator
// for MTB case files: one validator function per record kind plus the
// Check orchestrator that wires them together.
package mtbvalidator

import (
	"github.com/CCC-MF/mtb-validator/internal/catalog"
)

type idSet map[string]struct{}

func (s idSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

func newIDSet(ids ...string) idSet {
	set := make(idSet, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// ValidationContext carries every cross-reference index the orchestrator
// builds once per Check call, threaded explicitly into every per-record
// validator -- the Go rewrite of implicit-parameter/typeclass-style
// context injection.
type ValidationContext struct {
	PatientID string
	Catalogs  catalog.Catalogs

	DiagnosisIDs      idSet
	HistologyIDs      idSet
	SpecimenIDs       idSet
	RecommendationIDs idSet
	CounsellingReqIDs idSet
	RebiopsyReqIDs    idSet
	ClaimIDs          idSet

	// ICD10Codes is the set of icd10.code values taken from diagnoses
	// where present, used to validate that a Specimen's own icd10 is
	// justified by some diagnosis on the same patient.
	ICD10Codes idSet

	// TherapyRefs = previous-guideline ids ∪ {last-guideline id} ∪
	// molecular-therapy history entry ids.
	TherapyRefs idSet

	// RespondedTherapyRefs is the set of Response.TherapyRef values.
	// LastGuidelineTherapy's "missing Response" check is built around
	// this index rather than TherapyRefs, because TherapyRefs always
	// contains the therapy's own id and so a membership check against
	// it can never detect an absence.
	RespondedTherapyRefs idSet
}
