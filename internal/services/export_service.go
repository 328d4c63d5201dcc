package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"busdekho/internal/domain/models"
	"busdekho/internal/logging"
	"busdekho/internal/utils"

	"github.com/jszwec/csvutil"
	"github.com/phpdave11/gofpdf"
)

// ExportService renders a route table as a downloadable document.
type ExportService struct {
	RequestID string
	Now       func() time.Time
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// PDF renders table as a landscape A4 grid with one column per table column.
func (s ExportService) PDF(title string, table models.RouteTable) ([]byte, string, error) {
	logging.Event(s.RequestID, "export", "pdf", fmt.Sprintf("title=%s rows=%d", title, table.Len()))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+s.now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	if table.Empty() || len(table.Columns) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, "No buses found.")
	} else {
		writePDFGrid(pdf, table)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), exportFilename(title, "pdf"), nil
}

func writePDFGrid(pdf *gofpdf.Fpdf, table models.RouteTable) {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(table.Columns))
	const rowH = 7.0

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(255, 75, 75)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range table.Columns {
			pdf.CellFormat(colW, rowH, fitText(pdf, col, colW), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}

	header()
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, rec := range table.Records {
		if pdf.GetY()+rowH > pageH-bottom {
			pdf.AddPage()
			header()
		}
		for _, col := range table.Columns {
			align := "L"
			if strings.EqualFold(col, models.ColPrice) {
				align = "R"
			}
			pdf.CellFormat(colW, rowH, fitText(pdf, rec.Value(col), colW), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fitText trims s until it fits in width w at the current font.
func fitText(pdf *gofpdf.Fpdf, s string, w float64) string {
	const pad = 2.0
	if pdf.GetStringWidth(s) <= w-pad {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w-pad {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// CSV encodes every record, header first. The typed columns come first via
// csvutil; any other column of the table follows in table order.
func (s ExportService) CSV(title string, table models.RouteTable) ([]byte, string, error) {
	logging.Event(s.RequestID, "export", "csv", fmt.Sprintf("title=%s rows=%d", title, table.Len()))

	known, err := csvutil.Header(models.RouteRecord{}, "csv")
	if err != nil {
		return nil, "", fmt.Errorf("csv header: %w", err)
	}
	extra := extraColumns(table.Columns, known)

	var buf bytes.Buffer
	w := &extraColumnWriter{Writer: csv.NewWriter(&buf)}
	enc := csvutil.NewEncoder(w)

	w.extra = extra
	if err := enc.EncodeHeader(models.RouteRecord{}); err != nil {
		return nil, "", fmt.Errorf("encode csv header: %w", err)
	}
	for _, rec := range table.Records {
		w.extra = make([]string, 0, len(extra))
		for _, col := range extra {
			w.extra = append(w.extra, rec.Value(col))
		}
		if err := enc.Encode(rec); err != nil {
			return nil, "", fmt.Errorf("encode csv row route=%q: %w", rec.RouteName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), exportFilename(title, "csv"), nil
}

// extraColumnWriter appends the current extra values to each row csvutil
// writes.
type extraColumnWriter struct {
	*csv.Writer
	extra []string
}

func (w *extraColumnWriter) Write(row []string) error {
	out := make([]string, 0, len(row)+len(w.extra))
	out = append(out, row...)
	out = append(out, w.extra...)
	return w.Writer.Write(out)
}

// extraColumns returns the columns of cols not in known, ignoring case.
func extraColumns(cols, known []string) []string {
	out := []string{}
	for _, c := range cols {
		found := false
		for _, k := range known {
			if strings.EqualFold(c, k) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, c)
		}
	}
	return out
}

func exportFilename(title, ext string) string {
	return fmt.Sprintf("BUSES_%s.%s", utils.SafeFilenamePart(title), ext)
}
