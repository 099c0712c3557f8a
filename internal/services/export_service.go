package services

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"laundry-backend/internal/models"
	"laundry-backend/internal/reports"
	"laundry-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ErrNoData is returned when an export range matches no entries; callers
// surface it instead of shipping an empty archive.
var ErrNoData = errors.New("no entries in range")

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

var csvHeader = []string{
	"id", "created_at", "created_by",
	"customer_name", "style_no", "contract_no",
	"customer_order_qty", "factory_order_qty", "total_shipment_qty",
	"wash_receive_qty", "wash_delivery_qty",
	"planned_pcd_date", "actual_pcd_date",
	"wash_receive_date", "wash_closing_date",
	"shade_band_submission_date", "shade_band_approval_date",
	"agreed_ex_factory", "actual_ex_factory",
	"factory_name", "laundry_name", "department_name", "wash_category",
	"subcontract_washing",
	"issue_1", "issue_2", "issue_3", "other_issue_text",
	"remarks", "image_path", "image_rel_path",
}

// imageRelPath derives the in-archive path for an entry's image: the
// basename under images/, or empty when the entry has no image.
func imageRelPath(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	return "images/" + filepath.Base(imagePath)
}

func csvRow(e *models.Entry) []string {
	return []string{
		strconv.Itoa(e.ID),
		e.CreatedAt.Format("2006-01-02 15:04:05"),
		e.CreatedBy,
		e.CustomerName, e.StyleNo, e.ContractNo,
		strconv.Itoa(e.CustomerOrderQty), strconv.Itoa(e.FactoryOrderQty), strconv.Itoa(e.TotalShipmentQty),
		strconv.Itoa(e.WashReceiveQty), strconv.Itoa(e.WashDeliveryQty),
		e.PlannedPCDDate, e.ActualPCDDate,
		e.WashReceiveDate, e.WashClosingDate,
		e.ShadeBandSubmissionDate, e.ShadeBandApprovalDate,
		e.AgreedExFactory, e.ActualExFactory,
		e.FactoryName, e.LaundryName, e.DepartmentName, e.WashCategory,
		e.SubcontractWashing,
		e.Issue1, e.Issue2, e.Issue3, e.OtherIssueText,
		e.Remarks, e.ImagePath, imageRelPath(e.ImagePath),
	}
}

// BuildArchive produces the export ZIP: entries.csv with every record in
// input order, each referenced image bundled once under images/, and a
// README describing the layout. Images missing on disk are skipped; their
// rows still carry the derived image_rel_path.
func (s *ExportService) BuildArchive(entries []models.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoData
	}

	var csvBuf bytes.Buffer
	w := csv.NewWriter(&csvBuf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range entries {
		if err := w.Write(csvRow(&entries[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	fw, err := zw.Create("entries.csv")
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(csvBuf.Bytes()); err != nil {
		return nil, err
	}

	// Bundle each unique image once, keeping first-seen order
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.ImagePath == "" || seen[e.ImagePath] {
			continue
		}
		seen[e.ImagePath] = true

		data, err := os.ReadFile(e.ImagePath)
		if err != nil {
			// Entry stays in the CSV; only the file is absent
			continue
		}
		fw, err := zw.Create(imageRelPath(e.ImagePath))
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(data); err != nil {
			return nil, err
		}
	}

	fw, err = zw.Create("README.txt")
	if err != nil {
		return nil, err
	}
	_, err = fw.Write([]byte(
		"Unzip this file.\n" +
			"entries.csv contains image_rel_path column.\n" +
			"Images are stored inside images/ folder.\n"))
	if err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders the dashboard rollups as a one-page landscape
// report for the given date range.
func (s *ExportService) BuildSummaryPDF(dateFrom, dateTo string, summary reports.Summary,
	perf []reports.LaundryPerformance, issues []reports.IssueCount) ([]byte, error) {

	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for the wide tables
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	rangeLabel := "All dates"
	if dateFrom != "" || dateTo != "" {
		rangeLabel = fmt.Sprintf("%s to %s", orAny(dateFrom), orAny(dateTo))
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(277, 12, "Laundry KPI Summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, fmt.Sprintf("Range: %s", rangeLabel), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Headline KPIs", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(92, 7, fmt.Sprintf("Factory Order vs Shipment: %.1f%%", summary.FactoryShipPct), "1", 0, "L", false, 0, "")
	pdf.CellFormat(92, 7, fmt.Sprintf("UK Order vs Shipment: %.1f%%", summary.UKShipPct), "1", 0, "L", false, 0, "")
	pdf.CellFormat(93, 7, fmt.Sprintf("Total Shipment Qty: %d", summary.TotalShipmentQty), "1", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Laundry Performance (Order vs Shipment %)", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(77, 7, "Laundry", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Factory Order", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "UK Order", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Shipment", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "vs Factory %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "vs UK %", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, row := range perf {
		pdf.CellFormat(77, 6, row.LaundryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, strconv.Itoa(row.FactoryOrderQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, strconv.Itoa(row.CustomerOrderQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, strconv.Itoa(row.ShipmentQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", row.ShipmentVsFactoryPct), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", row.ShipmentVsUKPct), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Top Wash Issues by Laundry", "", 1, "L", false, 0, "")
	if len(issues) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(277, 6, "No issues recorded in this range.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(97, 7, "Laundry", "1", 0, "L", false, 0, "")
		pdf.CellFormat(140, 7, "Issue", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, "Count", "1", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, row := range issues {
			pdf.CellFormat(97, 6, row.LaundryName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(140, 6, row.Issue, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, strconv.Itoa(row.Count), "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orAny(bound string) string {
	if bound == "" {
		return "any"
	}
	return bound
}
