package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook layout used by ImportXLSX / ExportXLSX. One catalog per file.
const (
	sheetMeta      = "Meta"
	sheetPassages  = "Passages"
	sheetQuestions = "Questions"
	sheetTokens    = "Tokens"
	sheetBands     = "Bands"

	optionSeparator = "|"
)

// RowError describes one rejected spreadsheet row.
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.Sheet, e.Row, e.Message)
}

// ImportResult summarizes a spreadsheet import.
type ImportResult struct {
	Catalog      *Catalog   `json:"-"`
	TotalRows    int        `json:"total_rows"`
	AcceptedRows int        `json:"accepted_rows"`
	RejectedRows int        `json:"rejected_rows"`
	Errors       []RowError `json:"errors,omitempty"`
}

// ImportXLSX reads a catalog workbook. Malformed rows are collected as
// RowErrors; the import fails only when no usable catalog remains.
func ImportXLSX(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	res := &ImportResult{}

	id, title, kind, duration, err := readMeta(f)
	if err != nil {
		return nil, err
	}

	passages := readPassages(f, res)
	questions := readQuestions(f, res)
	tokens := readTokens(f, res)
	bands := readBands(f, res)
	if len(bands) == 0 {
		if kind == KindListening {
			bands = DefaultListeningBands()
		} else {
			bands = DefaultReadingBands()
		}
	}

	c, err := New(id, title, kind, duration, passages, questions, tokens, bands)
	if err != nil {
		return nil, fmt.Errorf("imported workbook is not a valid catalog: %w", err)
	}
	res.Catalog = c
	return res, nil
}

func readMeta(f *excelize.File) (id, title string, kind TestKind, duration int, err error) {
	rows, err := f.GetRows(sheetMeta)
	if err != nil {
		return "", "", "", 0, fmt.Errorf("missing %s sheet: %w", sheetMeta, err)
	}
	meta := map[string]string{}
	for _, row := range rows {
		if len(row) >= 2 {
			meta[strings.ToLower(strings.TrimSpace(row[0]))] = strings.TrimSpace(row[1])
		}
	}
	duration, convErr := strconv.Atoi(meta["duration_seconds"])
	if convErr != nil {
		return "", "", "", 0, fmt.Errorf("meta duration_seconds: %w", convErr)
	}
	return meta["id"], meta["title"], TestKind(meta["kind"]), duration, nil
}

func readPassages(f *excelize.File, res *ImportResult) []Passage {
	var out []Passage
	rows, err := f.GetRows(sheetPassages)
	if err != nil {
		return nil
	}
	for i, row := range rows {
		if i == 0 { // header
			continue
		}
		res.TotalRows++
		if len(row) < 3 {
			res.reject(sheetPassages, i+1, "expected columns id, title, content")
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			res.reject(sheetPassages, i+1, "id must be an integer")
			continue
		}
		out = append(out, Passage{ID: id, Title: row[1], Content: row[2]})
		res.AcceptedRows++
	}
	return out
}

func readQuestions(f *excelize.File, res *ImportResult) []Question {
	var out []Question
	rows, err := f.GetRows(sheetQuestions)
	if err != nil {
		return nil
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		res.TotalRows++
		if len(row) < 6 {
			res.reject(sheetQuestions, i+1, "expected columns id, type, prompt, options, correct_answer, group_id")
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			res.reject(sheetQuestions, i+1, "id must be an integer")
			continue
		}
		qType := QuestionType(strings.TrimSpace(row[1]))
		if !qType.Valid() {
			res.reject(sheetQuestions, i+1, fmt.Sprintf("unknown question type %q", row[1]))
			continue
		}
		groupID, err := strconv.Atoi(strings.TrimSpace(row[5]))
		if err != nil {
			res.reject(sheetQuestions, i+1, "group_id must be an integer")
			continue
		}
		var options []string
		if opts := strings.TrimSpace(row[3]); opts != "" {
			options = strings.Split(opts, optionSeparator)
		}
		out = append(out, Question{
			ID:            id,
			Type:          qType,
			Prompt:        row[2],
			Options:       options,
			CorrectAnswer: strings.TrimSpace(row[4]),
			GroupID:       groupID,
		})
		res.AcceptedRows++
	}
	return out
}

func readTokens(f *excelize.File, res *ImportResult) []TokenDef {
	var out []TokenDef
	rows, err := f.GetRows(sheetTokens)
	if err != nil {
		return nil
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		res.TotalRows++
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			res.reject(sheetTokens, i+1, "expected columns id, value")
			continue
		}
		out = append(out, TokenDef{ID: strings.TrimSpace(row[0]), Value: strings.TrimSpace(row[1])})
		res.AcceptedRows++
	}
	return out
}

func readBands(f *excelize.File, res *ImportResult) BandScale {
	var out BandScale
	rows, err := f.GetRows(sheetBands)
	if err != nil {
		return nil
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		res.TotalRows++
		if len(row) < 2 {
			res.reject(sheetBands, i+1, "expected columns min_correct, band")
			continue
		}
		min, err1 := strconv.Atoi(strings.TrimSpace(row[0]))
		band, err2 := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err1 != nil || err2 != nil {
			res.reject(sheetBands, i+1, "min_correct must be an integer and band a number")
			continue
		}
		out = append(out, BandStep{MinCorrect: min, Band: band})
		res.AcceptedRows++
	}
	return out
}

func (r *ImportResult) reject(sheet string, row int, msg string) {
	r.RejectedRows++
	r.Errors = append(r.Errors, RowError{Sheet: sheet, Row: row, Message: msg})
}

// ExportXLSX writes the catalog as a workbook in the ImportXLSX layout.
func ExportXLSX(c *Catalog, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetMeta); err != nil {
		return fmt.Errorf("failed to create meta sheet: %w", err)
	}
	metaRows := [][]interface{}{
		{"id", c.ID},
		{"title", c.Title},
		{"kind", string(c.Kind)},
		{"duration_seconds", c.DurationSeconds},
	}
	for i, row := range metaRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetMeta, cell, &row); err != nil {
			return err
		}
	}

	if err := writeSheet(f, sheetPassages, []interface{}{"id", "title", "content"}, len(c.Passages), func(i int) []interface{} {
		p := c.Passages[i]
		return []interface{}{p.ID, p.Title, p.Content}
	}); err != nil {
		return err
	}

	if err := writeSheet(f, sheetQuestions, []interface{}{"id", "type", "prompt", "options", "correct_answer", "group_id"}, len(c.Questions), func(i int) []interface{} {
		q := c.Questions[i]
		return []interface{}{q.ID, string(q.Type), q.Prompt, strings.Join(q.Options, optionSeparator), q.CorrectAnswer, q.GroupID}
	}); err != nil {
		return err
	}

	if err := writeSheet(f, sheetTokens, []interface{}{"id", "value"}, len(c.Tokens), func(i int) []interface{} {
		t := c.Tokens[i]
		return []interface{}{t.ID, t.Value}
	}); err != nil {
		return err
	}

	if err := writeSheet(f, sheetBands, []interface{}{"min_correct", "band"}, len(c.Bands), func(i int) []interface{} {
		b := c.Bands[i]
		return []interface{}{b.MinCorrect, b.Band}
	}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []interface{}, n int, row func(int) []interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", name, err)
	}
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetSheetRow(name, cell, &header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		values := row(i)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
