package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeReportRepository struct {
	mu      sync.Mutex
	reports map[string]*domain.DataQualityReport
}

func newFakeReportRepository() *fakeReportRepository {
	return &fakeReportRepository{reports: make(map[string]*domain.DataQualityReport)}
}

func (f *fakeReportRepository) SaveReport(_ context.Context, report *domain.DataQualityReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[report.PatientID] = report
	return nil
}

func (f *fakeReportRepository) GetReport(_ context.Context, patientID string) (*domain.DataQualityReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[patientID]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepository) DeleteReport(_ context.Context, patientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[patientID]; !ok {
		return domain.ErrReportNotFound
	}
	delete(f.reports, patientID)
	return nil
}

type fakeForwarder struct {
	mu      sync.Mutex
	forwarded []string
}

func (f *fakeForwarder) Forward(_ context.Context, file *domain.MTBFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forwarded = append(f.forwarded, file.Patient.ID)
	return nil
}

func testCatalogs() catalog.Catalogs {
	return catalog.NewStaticCatalog(catalog.StaticCatalogData{
		ICD10GM: map[string][]string{
			"2019": {"C25.0"},
		},
		ICDO3Topography: map[string][]string{
			"2014": {"C25.0"},
		},
		ICDO3Morphology: map[string][]string{
			"2014": {"8140/3"},
		},
		ATC: []string{"L01BC02"},
	})
}

func ref(s string) domain.Reference { return domain.Reference(s) }

func ptr[T any](v T) *T { return &v }

// minimalCleanFile mirrors mtbvalidator's own scenario-1 fixture: a
// complete, internally consistent file that validates with at most
// Info-level issues.
func minimalCleanFile() domain.MTBFile {
	today := domain.Today()
	birth := domain.NewDate(1970, 1, 1)
	insurance := "AOK"
	reasonStopped := "Progression"
	therapyLine := domain.TherapyLine(3)

	return domain.MTBFile{
		Patient: domain.Patient{ID: "P1", BirthDate: &birth, Insurance: &insurance},
		Consent: &domain.Consent{ID: "C1", PatientRef: ref("P1"), Status: domain.ConsentActive},
		Episode: domain.MTBEpisode{ID: "E1", PatientRef: ref("P1"), Period: domain.Period{Start: today}},
		Diagnoses: []domain.Diagnosis{
			{
				ID:         "D1",
				PatientRef: ref("P1"),
				RecordedOn: &today,
				ICD10:      &domain.Coding{Code: "C25.0", Version: "2019"},
				ICDO3T:     &domain.Coding{Code: "C25.0", Version: "2014"},
			},
		},
		LastGuidelineTherapy: &domain.LastGuidelineTherapy{
			ID:            "LGT1",
			PatientRef:    ref("P1"),
			DiagnosisRef:  ref("D1"),
			TherapyLine:   &therapyLine,
			Medication:    []domain.Coding{{Code: "L01BC02"}},
			Period:        domain.Period{Start: today},
			ReasonStopped: &reasonStopped,
		},
		ECOGStatus: []domain.ECOGStatus{
			{ID: "ECOG1", PatientRef: ref("P1"), Value: "1", EffectiveOn: &today},
		},
		PreviousGuidelineTherapies: []domain.PreviousGuidelineTherapy{
			{ID: "PGT1", PatientRef: ref("P1"), DiagnosisRef: ref("D1"), TherapyLine: ptr(domain.TherapyLine(1))},
		},
		Specimens: []domain.Specimen{
			{
				ID:         "S1",
				PatientRef: ref("P1"),
				ICD10:      domain.Coding{Code: "C25.0", Version: "2019"},
				Type:       ptr("tumor"),
				Collection: &today,
			},
		},
		MolecularPathologyFindings: []domain.MolecularPathologyFinding{
			{ID: "MPF1", PatientRef: ref("P1"), SpecimenRef: ref("S1"), IssuedOn: &today},
		},
		HistologyReports: []domain.HistologyReport{
			{
				ID:          "H1",
				PatientRef:  ref("P1"),
				SpecimenRef: ref("S1"),
				IssuedOn:    &today,
				Morphology:  &domain.Coding{Code: "8140/3", Version: "2014"},
				TumorContent: &domain.TumorCellContent{
					SpecimenRef: ref("S1"),
					Method:      domain.Histologic,
					Value:       0.6,
				},
			},
		},
		SomaticNGSReports: []domain.SomaticNGSReport{
			{
				ID:          "N1",
				PatientRef:  ref("P1"),
				SpecimenRef: ref("S1"),
				IssuedOn:    &today,
				TumorContent: domain.TumorCellContent{
					SpecimenRef: ref("S1"),
					Method:      domain.Bioinformatic,
					Value:       0.7,
				},
				TMB: domain.TMBValue{Value: 12.5},
			},
		},
		TherapyRecommendations: []domain.TherapyRecommendation{
			{ID: "REC1", PatientRef: ref("P1"), DiagnosisRef: ref("D1"), Medication: []domain.Coding{{Code: "L01BC02"}}},
		},
		CarePlans: []domain.CarePlan{
			{ID: "CP1", PatientRef: ref("P1"), DiagnosisRef: ref("D1"), RecommendationRefs: []domain.Reference{ref("REC1")}},
		},
		Claims: []domain.Claim{
			{ID: "CL1", PatientRef: ref("P1"), RecommendationRef: ref("REC1")},
		},
		ClaimResponses: []domain.ClaimResponse{
			{ID: "CLR1", PatientRef: ref("P1"), ClaimRef: ref("CL1"), Reason: ptr("covered")},
		},
		Responses: []domain.Response{
			{ID: "RESP1", PatientRef: ref("P1"), TherapyRef: ref("LGT1"), Value: domain.Coding{Code: "PR"}},
		},
	}
}

func TestIntakeService_UploadMTBFile_CleanFileForwardsWithoutStore(t *testing.T) {
	logger := testLogger()
	reports := newFakeReportRepository()
	forwarder := &fakeForwarder{}
	svc := NewIntakeService(logger, testCatalogs(), reports, forwarder)

	result, err := svc.UploadMTBFile(context.Background(), minimalCleanFile())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Contains(t, forwarder.forwarded, "P1")
	_, err = reports.GetReport(context.Background(), "P1")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestIntakeService_UploadMTBFile_FatalIssueRejectsWithoutStore(t *testing.T) {
	logger := testLogger()
	reports := newFakeReportRepository()
	forwarder := &fakeForwarder{}
	svc := NewIntakeService(logger, testCatalogs(), reports, forwarder)

	file := minimalCleanFile()
	file.Specimens[0].ICD10 = domain.Coding{Code: "Z99.9", Version: "2019"} // unjustified specimen ICD10 -> Fatal

	result, err := svc.UploadMTBFile(context.Background(), file)

	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Empty(t, forwarder.forwarded)
	_, getErr := reports.GetReport(context.Background(), "P1")
	assert.ErrorIs(t, getErr, domain.ErrReportNotFound)
}

func TestIntakeService_UploadMTBFile_WarningOnlyStoresAndForwards(t *testing.T) {
	logger := testLogger()
	reports := newFakeReportRepository()
	forwarder := &fakeForwarder{}
	svc := NewIntakeService(logger, testCatalogs(), reports, forwarder)

	file := minimalCleanFile()
	file.Specimens[0].Type = nil // missing specimen type -> Warning only

	result, err := svc.UploadMTBFile(context.Background(), file)

	require.NoError(t, err)
	assert.Equal(t, OutcomeAcceptedWithReport, result.Outcome)
	require.NotNil(t, result.Report)
	assert.False(t, result.Report.HasErrors())
	assert.Contains(t, forwarder.forwarded, "P1")

	stored, err := reports.GetReport(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", stored.PatientID)
}

func TestIntakeService_DeleteMTBFile(t *testing.T) {
	logger := testLogger()
	reports := newFakeReportRepository()
	reports.reports["P1"] = domain.NewDataQualityReport("P1", []domain.Issue{
		domain.WarningIssue("test").At("Patient", "P1", "insurance"),
	})
	svc := NewIntakeService(logger, testCatalogs(), reports, &fakeForwarder{})

	err := svc.DeleteMTBFile(context.Background(), "P1")
	require.NoError(t, err)

	err = svc.DeleteMTBFile(context.Background(), "P1")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
