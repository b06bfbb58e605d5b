package infra

// pdf.go — account statement generation using go-pdf/fpdf.
// Renders an A5 statement for one debtor: outstanding balance, recent
// credit purchases and repayments. The output file is saved to
// storagePath/statement_{name}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fineboy94449/smoke/internal/model"

	"github.com/go-pdf/fpdf"
)

// StatementData carries everything the statement renderer needs.
type StatementData struct {
	Debtor   *model.Debtor
	Sales    []model.Sale
	Payments []model.Payment
}

// GenerateStatementPDF renders an account statement and returns the path
// of the generated file.
func GenerateStatementPDF(data StatementData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	safeName := strings.ReplaceAll(strings.ToLower(data.Debtor.Name), " ", "_")
	filePath := filepath.Join(storagePath, fmt.Sprintf("statement_%s.pdf", safeName))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Account Statement", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, data.Debtor.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Balance due: R"+data.Debtor.Balance.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(3)

	col1 := contentW * 0.35
	col2 := contentW * 0.40
	col3 := contentW * 0.25

	// ── Purchases ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Credit purchases", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, sale := range data.Sales {
		item := fmt.Sprintf("%s x%d sticks", sale.ItemType, sale.Qty)
		pdf.CellFormat(col1, 5, sale.CreatedAt.Format("02 Jan 2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, item, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "R"+sale.Price.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// ── Payments ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Payments", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Balance after", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "Paid", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range data.Payments {
		pdf.CellFormat(col1, 5, p.CreatedAt.Format("02 Jan 2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "R"+p.NewBalance.StringFixed(2), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "R"+p.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Please settle your balance at the shop. Thank you!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
