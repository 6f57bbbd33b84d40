package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"siviack-portal/internal/backend"
)

var fixture = []backend.Actividad{
	{
		ID:            1,
		Descripcion:   "Auditoría interna de procesos",
		NombreEmpresa: "ACME Logística",
		NombreArea:    "Finanzas",
		Shk:           "ACM",
		NombreStatus:  "En Proceso",
		Avance:        45,
	},
	{
		ID:            2,
		Descripcion:   "Entrega de informe mensual",
		NombreEmpresa: "Norte SAC",
		NombreStatus:  "Cerrada a Tiempo",
		Avance:        100,
	},
}

func TestExcelRefusesEmptyList(t *testing.T) {
	_, err := Excel(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPDFRefusesEmptyList(t *testing.T) {
	_, err := PDF([]backend.Actividad{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExcelContainsHeaderAndRows(t *testing.T) {
	buf, err := Excel(fixture)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Actividades", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	desc, err := f.GetCellValue("Actividades", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Auditoría interna de procesos", desc)

	empresa, err := f.GetCellValue("Actividades", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Norte SAC", empresa)
}

func TestPDFProducesDocument(t *testing.T) {
	buf, err := PDF(fixture)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFCellTranslatesAccentsToCP1252(t *testing.T) {
	tr := fpdf.New("L", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")

	// Core Helvetica is cp1252: "Á" must become the single byte 0xC1, never
	// the raw UTF-8 pair 0xC3 0x81.
	got := pdfCell(tr, "Área Logística")
	assert.Equal(t, "\xc1rea Log\xedstica", got)
	assert.NotContains(t, got, "\xc3\x81")
}

func TestPDFCellTruncatesOnRunes(t *testing.T) {
	tr := fpdf.New("L", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")

	long := strings.Repeat("á", 61)
	got := pdfCell(tr, long)
	// 57 translated runes plus the ellipsis, no split multibyte sequence
	assert.Equal(t, strings.Repeat("\xe1", 57)+"...", got)

	short := pdfCell(tr, strings.Repeat("x", 60))
	assert.Len(t, short, 60)
}

func TestPDFHandlesAccentedCells(t *testing.T) {
	long := backend.Actividad{
		ID:          3,
		NombreArea:  "Área Logística",
		Descripcion: "Descripción extremadamente larga que excede con claridad el límite de sesenta caracteres por celda",
	}
	buf, err := PDF([]backend.Actividad{long})
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
