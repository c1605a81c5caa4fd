package export

import (
	"fmt"

	"github.com/voidshard/wallet/pkg/domain"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Entries"

var xlsxColumns = []struct {
	title string
	width float64
}{
	{"Date", 12},
	{"Title", 40},
	{"Category", 15},
	{"Epic", 15},
	{"Revenue", 12},
	{"Expense", 12},
	{"Balance", 12},
	{"Comment", 40},
	{"ID", 38},
}

// XLSX writes entries as a spreadsheet, one row per entry, with a totals row at the bottom.
type XLSX struct {
	filename string
}

func NewXLSX(filename string) *XLSX {
	return &XLSX{filename: filename}
}

func (x *XLSX) Write(entries []*domain.Entry) error {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "wallet",
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, xlsxSheet); err != nil {
		return err
	}
	sheet = xlsxSheet

	for i, c := range xlsxColumns {
		col := column(i)
		_ = xlsx.SetColWidth(sheet, col, col, c.width)
		_ = xlsx.SetCellValue(sheet, cell(i, 1), c.title)
	}
	style, _ := xlsx.NewStyle(mergeStyles(fontBold(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, cell(0, 1), cell(len(xlsxColumns)-1, 1), style)

	row := 2
	for _, e := range entries {
		values := []interface{}{
			e.Date.YMD(),
			e.Title,
			e.Category,
			e.Epic,
			e.Revenue(),
			e.Expense(),
			e.Balance(),
			e.Comment,
			e.ID,
		}
		for i, v := range values {
			if err := xlsx.SetCellValue(sheet, cell(i, row), v); err != nil {
				return err
			}
		}
		row++
	}

	_ = xlsx.SetCellValue(sheet, cell(1, row), "Total")
	for i := 4; i <= 6; i++ {
		formula := fmt.Sprintf("SUM(%s:%s)", cell(i, 2), cell(i, row-1))
		if row == 2 {
			formula = "0"
		}
		if err := xlsx.SetCellFormula(sheet, cell(i, row), formula); err != nil {
			return err
		}
	}
	style, _ = xlsx.NewStyle(mergeStyles(fontBold(), thinBorder("top")))
	_ = xlsx.SetCellStyle(sheet, cell(0, row), cell(len(xlsxColumns)-1, row), style)

	style, _ = xlsx.NewStyle(numberFormat())
	_ = xlsx.SetCellStyle(sheet, cell(4, 2), cell(6, row-1), style)
	style, _ = xlsx.NewStyle(mergeStyles(fontBold(), thinBorder("top"), numberFormat()))
	_ = xlsx.SetCellStyle(sheet, cell(4, row), cell(6, row), style)

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return xlsx.SaveAs(x.filename)
}

// column is the letter of the zero based column i.
func column(i int) string {
	name, _ := excelize.ColumnNumberToName(i + 1)
	return name
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", column(col), row)
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}

func numberFormat() *excelize.Style {
	format := "#,##0.00"
	return &excelize.Style{
		CustomNumFmt: &format,
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func thinBorder(where ...string) *excelize.Style {
	s := &excelize.Style{}
	for _, w := range where {
		s.Border = append(s.Border, excelize.Border{
			Type:  w,
			Color: "#000000",
			Style: 1,
		})
	}
	return s
}
