// Package repository persists DataQualityReports produced by the intake
// service for patients whose MTB file was accepted-with-warnings.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/CCC-MF/mtb-validator/internal/domain"
)

// ReportRepository handles DataQualityReport persistence backed by
// Postgres. Satisfies domain.ReportRepository.
type ReportRepository struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *pgxpool.Pool, logger *logrus.Logger) *ReportRepository {
	return &ReportRepository{
		db:  db,
		log: logger,
	}
}

// SaveReport upserts the report keyed by patient ID.
func (r *ReportRepository) SaveReport(ctx context.Context, report *domain.DataQualityReport) error {
	issuesJSON, err := json.Marshal(report.Issues)
	if err != nil {
		return fmt.Errorf("marshaling report issues: %w", err)
	}

	query := `
		INSERT INTO data_quality_reports (patient_id, issues)
		VALUES ($1, $2)
		ON CONFLICT (patient_id) DO UPDATE SET issues = EXCLUDED.issues, updated_at = NOW()`

	if _, err := r.db.Exec(ctx, query, report.PatientID, issuesJSON); err != nil {
		r.log.WithFields(logrus.Fields{
			"patient_id": report.PatientID,
			"error":      err,
		}).Error("Failed to save data quality report")
		return fmt.Errorf("saving report: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"patient_id":  report.PatientID,
		"issue_count": len(report.Issues),
	}).Info("Data quality report saved")

	return nil
}

// GetReport retrieves the stored report for a patient.
func (r *ReportRepository) GetReport(ctx context.Context, patientID string) (*domain.DataQualityReport, error) {
	query := `SELECT patient_id, issues FROM data_quality_reports WHERE patient_id = $1`

	var report domain.DataQualityReport
	var issuesJSON []byte

	err := r.db.QueryRow(ctx, query, patientID).Scan(&report.PatientID, &issuesJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		r.log.WithFields(logrus.Fields{
			"patient_id": patientID,
			"error":      err,
		}).Error("Failed to get data quality report")
		return nil, fmt.Errorf("getting report: %w", err)
	}

	if err := json.Unmarshal(issuesJSON, &report.Issues); err != nil {
		return nil, fmt.Errorf("unmarshaling report issues: %w", err)
	}

	return &report, nil
}

// DeleteReport removes the stored report for a patient, if any.
func (r *ReportRepository) DeleteReport(ctx context.Context, patientID string) error {
	query := `DELETE FROM data_quality_reports WHERE patient_id = $1`

	result, err := r.db.Exec(ctx, query, patientID)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"patient_id": patientID,
			"error":      err,
		}).Error("Failed to delete data quality report")
		return fmt.Errorf("deleting report: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}

	r.log.WithFields(logrus.Fields{
		"patient_id": patientID,
	}).Info("Data quality report deleted")

	return nil
}
