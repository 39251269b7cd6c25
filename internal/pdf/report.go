package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

// Generator renders analytics snapshots to PDF.
type Generator interface {
	GenerateAnalyticsReport(agg *models.Aggregate) (string, error)
}

// ReportGenerator writes reports under RootDir.
type ReportGenerator struct {
	RootDir string
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: rootDir}
}

// GenerateAnalyticsReport renders one aggregate as a status table per
// team plus the global totals, and returns the file path.
func (g *ReportGenerator) GenerateAnalyticsReport(agg *models.Aggregate) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Lead Analytics Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Window: %s to %s", agg.FromDate, agg.ToDate))
	pdf.Ln(10)

	writeStatusTable(pdf, "All leads", agg.Statuses, agg.Totals)
	for _, team := range agg.Teams {
		pdf.Ln(6)
		writeStatusTable(pdf, "Team: "+team.TeamName, team.Statuses, team.Totals)
	}

	name := fmt.Sprintf("analytics_%s_%s_%d.pdf", agg.FromDate, agg.ToDate, time.Now().Unix())
	path := filepath.Join(g.RootDir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

func writeStatusTable(pdf *gofpdf.Fpdf, title string, cells map[authz.Status]models.StatusMetrics, totals models.StatusMetrics) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(45, 6, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, "Count", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, "Self-gen", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Generated", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Projected", "1", 1, "R", false, 0, "")

	statuses := make([]string, 0, len(cells))
	for s := range cells {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	pdf.SetFont("Helvetica", "", 9)
	for _, s := range statuses {
		m := cells[authz.Status(s)]
		pdf.CellFormat(45, 6, s, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", m.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", m.SelfGenCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", m.GeneratedAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", m.ProjectedAmount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(45, 6, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, fmt.Sprintf("%d", totals.Count), "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, fmt.Sprintf("%d", totals.SelfGenCount), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", totals.GeneratedAmount), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", totals.ProjectedAmount), "1", 1, "R", false, 0, "")
}
