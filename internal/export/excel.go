package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"siviack-portal/internal/backend"
)

// ErrNoData is returned instead of producing an empty file.
var ErrNoData = errors.New("export: no hay actividades para exportar")

var columns = []string{
	"ID", "Empresa", "Área", "SHK", "Descripción",
	"Dueño Proceso", "Responsable", "Fecha Compromiso", "Status", "Avance %",
}

func row(act backend.Actividad) []any {
	return []any{
		act.ID,
		act.NombreEmpresa,
		act.NombreArea,
		act.Shk,
		act.Descripcion,
		act.DuenoProceso,
		act.NombreResponsable,
		act.FechaCompromiso,
		act.NombreStatus,
		act.Avance,
	}
}

// Excel renders the loaded activity rows as an .xlsx workbook.
func Excel(actividades []backend.Actividad) (*bytes.Buffer, error) {
	if len(actividades) == 0 {
		return nil, ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Actividades"
	f.SetSheetName("Sheet1", sheet)

	for i, title := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for r, act := range actividades {
		for col, value := range row(act) {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write xlsx: %w", err)
	}
	return buf, nil
}
