// Package export renders class rosters as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ContentType is the media type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const rosterSheet = "Alumnos"

var rosterHeader = []string{"ID", "Nombre", "Apellido", "DNI", "Email", "Plan", "Ingreso"}

// RosterFilename is the download name for a class roster.
func RosterFilename(c *domain.Class, now time.Time) string {
	return fmt.Sprintf("clase_%s_%s.xlsx", c.ID, now.Format("2006-01-02"))
}

// WriteRoster writes a workbook with one header row and one row per student,
// followed by a summary row with the class capacity.
func WriteRoster(w io.Writer, c *domain.Class, students []*domain.Student) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]string, 0, len(students))
	for _, s := range students {
		ingreso := ""
		if s.Ingreso != nil {
			ingreso = s.Ingreso.Format("2006-01-02")
		}
		rows = append(rows, []string{s.ID, s.Nombre, s.Apellido, s.DNI, s.Email, s.EffectivePlan(), ingreso})
	}

	if err := setRow(f, 1, rosterHeader); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	capacidad := "sin límite"
	if c.Capacidad != nil {
		capacidad = fmt.Sprintf("%d", *c.Capacidad)
	}
	summary := []string{"Clase", c.Descripcion, c.Horario, c.NombreProfesor, fmt.Sprintf("%d inscriptos", len(students)), "capacidad", capacidad}
	if err := setRow(f, len(rows)+3, summary); err != nil {
		return err
	}

	last, _ := excelize.CoordinatesToCellName(len(rosterHeader), 1)
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(rosterSheet, "A1", last, bold)
	}
	_ = f.AutoFilter(rosterSheet, "A1:"+last, nil)
	_ = f.SetColWidth(rosterSheet, "A", "A", 38)
	_ = f.SetColWidth(rosterSheet, "B", "G", 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(rosterSheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
