package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sangkips/autoquote-api/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReport_Generate(t *testing.T) {
	r := NewRegisterReport(document.Fonts{}, nil)
	rows := []RegisterRow{
		{Reference: "QT-000001", Type: "quotation", IssueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			Customer: "Acme Trading", Vehicle: "Toyota Camry 2026", SalesRep: "Ahmed", Total: 115500, Status: "sent"},
		{Reference: "QT-000002", Type: "invoice", IssueDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
			Customer: "Gulf Motors", Vehicle: "Nissan Patrol 2025", SalesRep: "Sara", Total: 287500, Status: "accepted"},
	}

	out, err := r.Generate(context.Background(), "Quotation register", rows)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRegisterReport_EmptyRegister(t *testing.T) {
	r := NewRegisterReport(document.Fonts{}, document.NewFormatter(false))
	out, err := r.Generate(context.Background(), "Quotation register", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRegisterReport_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRegisterReport(document.Fonts{}, nil).Generate(ctx, "x", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegisterReport_MissingFont(t *testing.T) {
	r := NewRegisterReport(document.Fonts{RegularPath: "/nonexistent/font.ttf"}, nil)
	_, err := r.Generate(context.Background(), "x", nil)
	assert.Error(t, err)
}
