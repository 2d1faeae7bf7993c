package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/CCC-MF/mtb-validator/internal/domain"
)

// LogForwarder is the default domain.DownstreamForwarder: it logs that
// a clean file would be forwarded rather than calling out to a real
// query service, which is out of scope here.
type LogForwarder struct {
	logger *logrus.Logger
}

// NewLogForwarder creates a forwarder that only logs.
func NewLogForwarder(logger *logrus.Logger) *LogForwarder {
	return &LogForwarder{logger: logger}
}

// Forward logs the patient id of the file that would be forwarded.
func (f *LogForwarder) Forward(_ context.Context, file *domain.MTBFile) error {
	f.logger.WithField("patient_id", file.Patient.ID).Info("MTB file forwarded downstream")
	return nil
}
