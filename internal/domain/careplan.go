package domain

// CarePlan is the MTB's recommendation bundle issued for an episode.
type CarePlan struct {
	ID                   string      `json:"id"`
	PatientRef           Reference   `json:"patient"`
	DiagnosisRef         Reference   `json:"diagnosis"`
	IssuedOn             *Date       `json:"issuedOn,omitempty"`
	RecommendationRefs   []Reference `json:"recommendations,omitempty"`
	CounsellingReqRef    *Reference  `json:"counsellingRequest,omitempty"`
	RebiopsyRequestRefs  []Reference `json:"rebiopsyRequests,omitempty"`
}

// TherapyRecommendation is a medication recommendation issued as part of
// a CarePlan.
type TherapyRecommendation struct {
	ID           string       `json:"id"`
	PatientRef   Reference    `json:"patient"`
	DiagnosisRef Reference    `json:"diagnosis"`
	IssuedOn     *Date        `json:"issuedOn,omitempty"`
	TherapyLine  *TherapyLine `json:"therapyLine,omitempty"`
	Medication   []Coding     `json:"medication,omitempty"`
	Priority     *string      `json:"priority,omitempty"`
}

// GeneticCounsellingRequest records a referral for genetic counselling
// arising from a CarePlan.
type GeneticCounsellingRequest struct {
	ID         string    `json:"id"`
	PatientRef Reference `json:"patient"`
	IssuedOn   *Date     `json:"issuedOn,omitempty"`
	Reason     *string   `json:"reason,omitempty"`
}

// RebiopsyRequest records a request for a follow-up biopsy of a Specimen.
type RebiopsyRequest struct {
	ID          string    `json:"id"`
	PatientRef  Reference `json:"patient"`
	SpecimenRef Reference `json:"specimen"`
	IssuedOn    *Date     `json:"issuedOn,omitempty"`
}

// HistologyReevaluationRequest records a request that pathology
// re-review an existing HistologyReport.
type HistologyReevaluationRequest struct {
	ID          string    `json:"id"`
	PatientRef  Reference `json:"patient"`
	SpecimenRef Reference `json:"specimen"`
	IssuedOn    *Date     `json:"issuedOn,omitempty"`
}

// StudyInclusionRequest records a candidate clinical trial enrollment,
// identified by its NCT number.
type StudyInclusionRequest struct {
	ID           string    `json:"id"`
	PatientRef   Reference `json:"patient"`
	DiagnosisRef Reference `json:"diagnosis"`
	IssuedOn     *Date     `json:"issuedOn,omitempty"`
	NCTNumber    string    `json:"nctNumber"`
}
