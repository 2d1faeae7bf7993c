package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/mtbvalidator"
)

// validateMTBFileResult is what validate_mtb_file returns: either the
// accepted file (Issues empty) or the structured issue list.
type validateMTBFileResult struct {
	Accepted bool           `json:"accepted"`
	File     *domain.MTBFile `json:"file,omitempty"`
	Report   *domain.DataQualityReport `json:"report,omitempty"`
}

func validateMTBFileTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "validate_mtb_file",
		Description: "Validates a Molecular Tumor Board case file for structural and " +
			"referential completeness, returning the accepted file or a structured " +
			"list of data quality issues.",
	}
}

func validateMTBFileHandler(catalogs catalog.Catalogs, logger *logrus.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var file domain.MTBFile
		if err := json.Unmarshal(req.Params.Arguments, &file); err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("invalid MTB file payload: %v", err)}},
				IsError: true,
			}, nil
		}

		validated, report := mtbvalidator.Check(file, catalogs)

		result := validateMTBFileResult{}
		if report == nil {
			result.Accepted = true
			result.File = &validated
		} else {
			result.Accepted = !report.HasFatal()
			result.Report = report
		}

		logger.WithField("patient_id", file.Patient.ID).
			WithField("accepted", result.Accepted).
			Debug("Handled validate_mtb_file tool call")

		payload, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding validate_mtb_file result: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
		}, nil
	}
}
