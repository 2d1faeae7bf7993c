package domain

// MolecularTherapyStatus is the status a single history entry of a
// molecular therapy was recorded in. Go has no native sum type, so the
// {NotDone, Stopped, Completed, Ongoing} variant from the case file is
// modeled as this enum plus the fields on MolecularTherapyHistoryEntry
// that apply to some statuses and not others (e.g. Period and
// ReasonStopped are meaningless for NotDone).
type MolecularTherapyStatus string

const (
	TherapyNotDone   MolecularTherapyStatus = "NOT_DONE"
	TherapyStopped   MolecularTherapyStatus = "STOPPED"
	TherapyCompleted MolecularTherapyStatus = "COMPLETED"
	TherapyOngoing   MolecularTherapyStatus = "ONGOING"
)

// MolecularTherapyHistoryEntry is one recorded status change of a
// molecular therapy. Each entry carries its own ID: therapy_refs is
// built from every history entry of every molecular therapy, not from
// the top-level MolecularTherapy aggregate, so the id has to live here.
type MolecularTherapyHistoryEntry struct {
	ID               string                 `json:"id"`
	PatientRef       Reference              `json:"patient"`
	RecommendationRef Reference             `json:"recommendation"`
	Status           MolecularTherapyStatus `json:"status"`
	RecordedOn       *Date                  `json:"recordedOn,omitempty"`
	Period           *Period                `json:"period,omitempty"`
	Medication       []Coding               `json:"medication,omitempty"`
	ReasonStopped    *string                `json:"reasonStopped,omitempty"`
}

// MolecularTherapy is the full status history of one recommended therapy
// as it was actually administered.
type MolecularTherapy struct {
	PatientRef Reference                      `json:"patient"`
	History    []MolecularTherapyHistoryEntry `json:"history"`
}

// LastHistoryEntry returns the most recently recorded entry. The
// orchestrator does not use it: it validates every history entry.
// Callers must not invoke this on an empty History.
func (t MolecularTherapy) LastHistoryEntry() MolecularTherapyHistoryEntry {
	return t.History[len(t.History)-1]
}

// Response is the clinical response recorded against an administered
// therapy. TherapyRef points at the therapy it responds to: a previous
// or last guideline therapy, or a MolecularTherapyHistoryEntry --
// indexing on this field (rather than reusing the
// therapy_refs union the history entries themselves populate) is what
// lets the orchestrator actually detect a LastGuidelineTherapy with no
// recorded Response.
type Response struct {
	ID         string    `json:"id"`
	PatientRef Reference `json:"patient"`
	TherapyRef Reference `json:"therapy"`
	EffectiveOn *Date    `json:"effectiveOn,omitempty"`
	Value       Coding   `json:"value"`
}
