package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Due for return"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateLayout = "02.01.2006"
	lastColumn = 5
)

var (
	headers      = []any{"Phone", "Author", "Title", "Price, thousands", "Issued on"}
	columnWidths = []float64{25, 30, 35, 25, 20}
)

// Filename is the attachment name for a report on the given date.
func (r Report) Filename() string {
	return fmt.Sprintf("report_%s.xlsx", r.Date.Format("2006-01-02"))
}

type styles struct {
	title, header, reader, book, total int
}

// sheetWriter appends rows to a sheet and tracks the current row.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) addRow(values []any, style int) error {
	w.row++
	start, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, start, &values); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(lastColumn, w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, start, end, style)
}

// merge joins columns from..to of the last added row.
func (w *sheetWriter) merge(from, to int) error {
	start, err := excelize.CoordinatesToCellName(from, w.row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(to, w.row)
	if err != nil {
		return err
	}
	return w.f.MergeCell(w.sheet, start, end)
}

func (w *sheetWriter) height(h float64) error {
	return w.f.SetRowHeight(w.sheet, w.row, h)
}

// Render writes the report as an xlsx workbook to out.
func (r Report) Render(out io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	w := &sheetWriter{f: f, sheet: SheetName}
	if err := r.write(w, st); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return f.Write(out)
}

func (r Report) write(w *sheetWriter, st styles) error {
	title := fmt.Sprintf("Readers with books due for return on %s (DD.MM.YYYY)", r.Date.Format(dateLayout))
	if err := w.addRow([]any{title}, st.title); err != nil {
		return err
	}
	if err := w.merge(1, lastColumn); err != nil {
		return err
	}
	if err := w.height(30); err != nil {
		return err
	}

	if err := w.addRow(headers, st.header); err != nil {
		return err
	}

	for _, group := range r.Readers {
		if err := w.addRow([]any{"Reader: " + group.FullName}, st.reader); err != nil {
			return err
		}
		if err := w.merge(1, lastColumn); err != nil {
			return err
		}
		for _, l := range group.Lines {
			row := []any{l.Phone, l.Author, l.Title, l.PriceThousands, l.IssuedAt.Format(dateLayout)}
			if err := w.addRow(row, st.book); err != nil {
				return err
			}
		}
		if err := w.addTotal("Books held by reader:", len(group.Lines), st.total); err != nil {
			return err
		}
	}
	return w.addTotal("Library total:", r.Total, st.total)
}

func (w *sheetWriter) addTotal(label string, n, style int) error {
	if err := w.addRow([]any{label, n}, style); err != nil {
		return err
	}
	if err := w.merge(2, lastColumn); err != nil {
		return err
	}
	return w.height(20)
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		},
		{
			Border:    border,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		},
		{
			Border:    border,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EDEDED"}},
			Font:      &excelize.Font{Bold: true, Italic: true},
			Alignment: &excelize.Alignment{Horizontal: "left"},
		},
		{
			Border:    border,
			Alignment: &excelize.Alignment{Horizontal: "left"},
		},
		{
			Border:    border,
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		},
	}

	var st styles
	targets := []*int{&st.title, &st.header, &st.reader, &st.book, &st.total}
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return st, err
		}
		*targets[i] = id
	}
	return st, nil
}
