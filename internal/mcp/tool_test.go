package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
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

func testCatalogs() catalog.Catalogs {
	return catalog.NewStaticCatalog(catalog.StaticCatalogData{})
}

func callToolRequest(t *testing.T, payload interface{}) *mcp.CallToolRequest {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParams{Arguments: raw},
	}
}

func TestValidateMTBFileHandler_MalformedPayload(t *testing.T) {
	handler := validateMTBFileHandler(testCatalogs(), testLogger())

	req := &mcp.CallToolRequest{Params: &mcp.CallToolParams{Arguments: json.RawMessage("not json")}}
	result, err := handler(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// An empty file breaks presence rules but no reference rule: its report
// carries Errors and no Fatal issue, so it is accepted with that report.
func TestValidateMTBFileHandler_EmptyFileReportsErrors(t *testing.T) {
	handler := validateMTBFileHandler(testCatalogs(), testLogger())

	req := callToolRequest(t, domain.MTBFile{})
	result, err := handler(context.Background(), req)

	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var decoded validateMTBFileResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	assert.True(t, decoded.Accepted)
	require.NotNil(t, decoded.Report)
	assert.True(t, decoded.Report.HasErrors())
	assert.False(t, decoded.Report.HasFatal())
}

func TestValidateMTBFileTool_Definition(t *testing.T) {
	tool := validateMTBFileTool()
	assert.Equal(t, "validate_mtb_file", tool.Name)
	assert.NotEmpty(t, tool.Description)
}
