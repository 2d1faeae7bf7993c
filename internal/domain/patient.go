package domain

// Gender is the patient's administrative gender.
type Gender string

const (
	Male    Gender = "MALE"
	Female  Gender = "FEMALE"
	Other   Gender = "OTHER"
	Unknown Gender = "UNKNOWN"
)

// Patient is the root entity an MTBFile aggregates around. Every other
// entity's PatientRef must equal Patient.ID.
type Patient struct {
	ID          string  `json:"id"`
	Gender      Gender  `json:"gender"`
	BirthDate   *Date   `json:"birthDate,omitempty"`
	Insurance   *string `json:"insurance,omitempty"`
	DateOfDeath *Date   `json:"dateOfDeath,omitempty"`
}

// ConsentStatus governs which validation regime the orchestrator applies
// to the rest of the MTB file.
type ConsentStatus string

const (
	ConsentActive   ConsentStatus = "ACTIVE"
	ConsentRejected ConsentStatus = "REJECTED"
)

// Consent records the patient's consent for the MTB to process their data.
type Consent struct {
	ID         string        `json:"id"`
	PatientRef Reference     `json:"patient"`
	Status     ConsentStatus `json:"status"`
}

// MTBEpisode is the case-review episode the file belongs to.
type MTBEpisode struct {
	ID         string    `json:"id"`
	PatientRef Reference `json:"patient"`
	Period     Period    `json:"period"`
}

// ECOGStatus is a single ECOG performance-status observation.
type ECOGStatus struct {
	ID         string    `json:"id"`
	PatientRef Reference `json:"patient"`
	Value      string    `json:"value"`
	EffectiveOn *Date    `json:"effectiveOn,omitempty"`
}
