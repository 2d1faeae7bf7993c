// Package service implements the intake service: the collaborator
// surrounding the core validator that accepts uploads, interprets the
// resulting report, persists it, and forwards clean files downstream.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/mtbvalidator"
)

// UploadOutcome classifies how IntakeService handled an uploaded file,
// mirroring the three interpretations of a DataQualityReport.
type UploadOutcome int

const (
	// OutcomeAccepted means the file had no issues, or only Info-level
	// issues, and was forwarded downstream without a stored report.
	OutcomeAccepted UploadOutcome = iota
	// OutcomeAcceptedWithReport means the file had Warning and/or Error
	// issues (but no Fatal): stored with its report, forwarded downstream
	// only if it has no Errors.
	OutcomeAcceptedWithReport
	// OutcomeRejected means the file had at least one Fatal issue and
	// was not persisted.
	OutcomeRejected
)

// UploadResult is what IntakeService.UploadMTBFile returns to its caller.
type UploadResult struct {
	Outcome UploadOutcome
	Report  *domain.DataQualityReport
}

// IntakeService implements the upload/delete surface surrounding
// mtbvalidator.Check: it interprets a DataQualityReport's severities
// into an accept/store/reject decision, persists reports, and forwards
// clean files to a downstream query service.
type IntakeService struct {
	logger     *logrus.Logger
	catalogs   catalog.Catalogs
	reports    domain.ReportRepository
	forwarder  domain.DownstreamForwarder
}

// NewIntakeService creates a new intake service.
func NewIntakeService(
	logger *logrus.Logger,
	catalogs catalog.Catalogs,
	reports domain.ReportRepository,
	forwarder domain.DownstreamForwarder,
) *IntakeService {
	return &IntakeService{
		logger:    logger,
		catalogs:  catalogs,
		reports:   reports,
		forwarder: forwarder,
	}
}

// UploadMTBFile validates file, decides its fate from the resulting
// report's severities, persists a report when one was produced, and
// forwards the file downstream when it carries no Errors.
func (s *IntakeService) UploadMTBFile(ctx context.Context, file domain.MTBFile) (*UploadResult, error) {
	patientID := file.Patient.ID

	validated, report := mtbvalidator.Check(file, s.catalogs)

	if report == nil {
		s.logger.WithFields(logrus.Fields{
			"patient_id": patientID,
			"has_fatal":  false,
			"has_errors": false,
			"issue_count": 0,
		}).Info("MTB file accepted with no issues")

		if err := s.forwarder.Forward(ctx, &validated); err != nil {
			return nil, fmt.Errorf("forwarding accepted MTB file: %w", err)
		}
		return &UploadResult{Outcome: OutcomeAccepted}, nil
	}

	fields := logrus.Fields{
		"patient_id":  patientID,
		"has_fatal":   report.HasFatal(),
		"has_errors":  report.HasErrors(),
		"issue_count": len(report.Issues),
	}

	if report.HasFatal() {
		s.logger.WithFields(fields).Warn("MTB file rejected: fatal data-quality issues")
		return &UploadResult{Outcome: OutcomeRejected, Report: report}, nil
	}

	if report.HasOnlyInfos() {
		s.logger.WithFields(fields).Info("MTB file accepted with informational issues only")
		if err := s.forwarder.Forward(ctx, &validated); err != nil {
			return nil, fmt.Errorf("forwarding accepted MTB file: %w", err)
		}
		return &UploadResult{Outcome: OutcomeAccepted, Report: report}, nil
	}

	if err := s.reports.SaveReport(ctx, report); err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Failed to persist data quality report")
		return nil, fmt.Errorf("persisting data quality report: %w", err)
	}

	s.logger.WithFields(fields).Info("MTB file accepted and stored with a data quality report")

	if !report.HasErrors() {
		if err := s.forwarder.Forward(ctx, &validated); err != nil {
			return nil, fmt.Errorf("forwarding accepted MTB file: %w", err)
		}
	}

	return &UploadResult{Outcome: OutcomeAcceptedWithReport, Report: report}, nil
}

// DeleteMTBFile removes a patient's stored data quality report. Returns
// domain.ErrReportNotFound if nothing was stored for that patient.
func (s *IntakeService) DeleteMTBFile(ctx context.Context, patientID string) error {
	if err := s.reports.DeleteReport(ctx, patientID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"patient_id": patientID,
		}).WithError(err).Warn("Failed to delete data quality report")
		return err
	}

	s.logger.WithField("patient_id", patientID).Info("Data quality report deleted")
	return nil
}
