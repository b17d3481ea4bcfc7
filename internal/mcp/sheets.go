package mcp

import (
	"context"
	"errors"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/mcp/tools"
	sheetsclient "github.com/venkatajanapareddy/sarkarijobs.cc/pkg/sheets"
)

var errSheetsNotConfigured = errors.New("sheets: client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)")

var _ tools.SheetsWriter = (*sheetsClientAdapter)(nil)

// sheetsClientAdapter lets sheets_export register even without credentials
type sheetsClientAdapter struct {
	client *sheetsclient.Client
}

func (a *sheetsClientAdapter) AppendRows(ctx context.Context, spreadsheetID, tab string, rows [][]any) (int64, error) {
	if a.client == nil {
		return 0, errSheetsNotConfigured
	}
	return a.client.AppendRows(ctx, spreadsheetID, tab, rows)
}

func (a *sheetsClientAdapter) ReplaceRows(ctx context.Context, spreadsheetID, tab string, rows [][]any) (int64, error) {
	if a.client == nil {
		return 0, errSheetsNotConfigured
	}
	return a.client.ReplaceRows(ctx, spreadsheetID, tab, rows)
}
