package export

import (
	"fmt"
	"strconv"

	"github.com/Spok95/compliance-audit/internal/engine"
	"github.com/Spok95/compliance-audit/internal/models"
	"github.com/xuri/excelize/v2"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// BuildAuditHistory собирает книгу из двух листов: история аудитов и сводка.
// Вердикты пишем в отображаемом виде (PASSED/FAILED), как их видит клиент.
func BuildAuditHistory(records []models.AuditRecord) (*excelize.File, error) {
	history := SheetSpec{
		Title: "Audits",
		Header: []string{
			"ID", "Form", "Status", "Result", "Marks", "Percentage",
			"Comments", "Created At", "Last Edit At",
		},
	}
	var summary models.AuditSummary
	for _, r := range records {
		comments := ""
		if r.Comments != nil {
			comments = *r.Comments
		}
		lastEdit := ""
		if r.LastEditAt != nil {
			lastEdit = r.LastEditAt.Format("2006-01-02 15:04")
		}
		history.Rows = append(history.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.FormID, 10),
			string(r.Status),
			engine.FormatResult(string(r.Result)),
			strconv.FormatFloat(r.Marks, 'f', 2, 64),
			strconv.FormatFloat(r.Percentage, 'f', 2, 64),
			comments,
			r.CreatedAt.Format("2006-01-02 15:04"),
			lastEdit,
		})

		summary.Total++
		switch r.Status {
		case models.AuditPending:
			summary.Pending++
		case models.AuditCompleted:
			summary.Completed++
		}
		switch r.Result {
		case models.ResultPass:
			summary.Passed++
		case models.ResultFailed:
			summary.Failed++
		}
	}

	summarySheet := SheetSpec{
		Title:  "Summary",
		Header: []string{"Total", "Pending", "Completed", "Passed", "Failed"},
		Rows: [][]string{{
			strconv.Itoa(summary.Total),
			strconv.Itoa(summary.Pending),
			strconv.Itoa(summary.Completed),
			strconv.Itoa(summary.Passed),
			strconv.Itoa(summary.Failed),
		}},
	}

	return buildWorkbook([]SheetSpec{history, summarySheet})
}

func buildWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			// первый лист — переименованный стандартный Sheet1
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		// заголовки
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		// стиль заголовков + автофильтр
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		// строки
		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		// эвристическая ширина: по длине заголовка и первых строк
		for c := 1; c <= len(s.Header); c++ {
			maxim := len(s.Header[c-1])
			for r := 0; r < minim(50, len(s.Rows)); r++ {
				if l := len(s.Rows[r][c-1]); l > maxim {
					maxim = l
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return f, nil
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
