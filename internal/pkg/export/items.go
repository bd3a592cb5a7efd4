package export

import (
	"fmt"
	"io"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	itemsSheet      = "Payroll Items"
)

var itemHeaders = []string{"Employee ID", "Employee", "Department", "Job Title", "Base Salary", "Bonus", "Deductions", "Net Salary"}

// ItemsFileName names the workbook for a run's period, e.g. payroll_2025-06.xlsx.
func ItemsFileName(period payroll.Period) string {
	return fmt.Sprintf("payroll_%s.xlsx", period)
}

// WriteRunItems renders a run's items as a single-sheet workbook with a
// totals row. Money columns are written as numbers.
func WriteRunItems(w io.Writer, run payroll.Run, items []payroll.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(itemsSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SetCellValue(itemsSheet, "A1", fmt.Sprintf("Payroll %s (%s)", run.Period.Label(), run.Status)); err != nil {
		return err
	}
	for i, header := range itemHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(itemsSheet, cell, header); err != nil {
			return err
		}
	}

	row := 4
	for _, item := range items {
		values := []interface{}{
			item.EmployeeID,
			item.EmployeeName,
			item.DepartmentName,
			item.JobTitle,
			item.MonthlyBasePay.InexactFloat64(),
			item.Bonus.InexactFloat64(),
			item.Deductions.InexactFloat64(),
			item.NetSalary.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(itemsSheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	if len(items) > 0 {
		if err := f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), "Total"); err != nil {
			return err
		}
		for col := 5; col <= 8; col++ {
			colName, _ := excelize.ColumnNumberToName(col)
			formula := fmt.Sprintf("SUM(%s4:%s%d)", colName, colName, row-1)
			if err := f.SetCellFormula(itemsSheet, fmt.Sprintf("%s%d", colName, row), formula); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
