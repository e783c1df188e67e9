package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/avoronkov/stridewell/internal/storage"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders wellness records into PDF/CSV artifacts.
type Generator struct {
	records storage.RecordsStorage
}

func NewGenerator(records storage.RecordsStorage) *Generator {
	return &Generator{records: records}
}

// GenerateReport fetches the records for the request range and renders
// them in the requested format.
func (g *Generator) GenerateReport(ctx context.Context, req CreateReportRequest) ([]byte, error) {
	rows, err := g.records.ListRecords(ctx, req.Name, req.From, req.To, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	switch req.Format {
	case FormatPDF:
		return g.generatePDF(req, rows)
	case FormatCSV:
		return g.generateCSV(rows)
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
}

func (g *Generator) generateCSV(rows []storage.WellnessRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "name", "sleep_hours", "mood", "water_glasses", "screen_time_hours"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.Date(),
			row.Name,
			strconv.Itoa(row.SleepHours),
			row.Mood,
			strconv.Itoa(row.WaterGlasses),
			strconv.FormatFloat(row.ScreenTimeHours, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *Generator) generatePDF(req CreateReportRequest, rows []storage.WellnessRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Wellness Report")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", req.From, req.To))
	pdf.Ln(12)

	summary := calculateSummary(rows)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Records: %d", summary.Records))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average sleep: %s", summary.AvgSleep))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total water glasses: %d", summary.TotalWater))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average screen time: %s", summary.AvgScreenTime))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Most frequent mood: %s", summary.TopMood))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Recent days")
	pdf.Ln(8)

	drawRecordsTable(pdf, rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

type summaryStats struct {
	Records       int
	AvgSleep      string
	TotalWater    int
	AvgScreenTime string
	TopMood       string
}

func calculateSummary(rows []storage.WellnessRow) summaryStats {
	stats := summaryStats{
		Records:       len(rows),
		AvgSleep:      "no data",
		AvgScreenTime: "no data",
		TopMood:       "no data",
	}
	if len(rows) == 0 {
		return stats
	}

	var totalSleep int
	var totalScreen float64
	moodCounts := make(map[string]int)

	for _, row := range rows {
		totalSleep += row.SleepHours
		totalScreen += row.ScreenTimeHours
		stats.TotalWater += row.WaterGlasses
		moodCounts[row.Mood]++
	}

	stats.AvgSleep = fmt.Sprintf("%.1f h", float64(totalSleep)/float64(len(rows)))
	stats.AvgScreenTime = fmt.Sprintf("%.1f h", totalScreen/float64(len(rows)))

	best := 0
	for mood, count := range moodCounts {
		if count > best {
			best = count
			stats.TopMood = mood
		}
	}

	return stats
}

func drawRecordsTable(pdf *gofpdf.Fpdf, rows []storage.WellnessRow) {
	// Last 14 records only, the summary covers the rest.
	const limit = 14
	recent := rows
	if len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(30, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Sleep (h)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Mood", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Water (glasses)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Screen time (h)", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range recent {
		pdf.CellFormat(30, 6, row.Date(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, strconv.Itoa(row.SleepHours), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, row.Mood, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, strconv.Itoa(row.WaterGlasses), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", row.ScreenTimeHours), "1", 1, "C", false, 0, "")
	}
}
