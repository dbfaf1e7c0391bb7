package cei

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/username/ceifolio/backend/src/models"
)

const sampleCSV = `Extrato de Negociação - CEI;
Período de;01/01/2019 a 31/12/2019
;
;CORRETORA XYZ S.A.
;
Data Negócio;C/V;Mercado;Prazo;Código;Especificação do Ativo;Quantidade;Preço (R$);Valor Total (R$)
 20/02/19 ; C ;Merc. Fracionário;;BOVA11;ISHARES BOVA CI;100;9,35;935,00
 06/03/19 ; V ;Mercado a Vista;;PETR4;PETROBRAS PN;100;109,56;10.956,00
 14/05/19 ; C ;Mercado a Vista;;BOVA11;ISHARES BOVA CI;260;34,11;8.870,00
;
Resumo dos Negócios;;;;;;;;
Compras;9.805,00;;;;;;;
`

func TestParseTradeDate(t *testing.T) {
	d, err := ParseTradeDate(" 01/02/19 ")
	require.NoError(t, err)
	assert.Equal(t, 2019, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 1, d.Day())

	_, err = ParseTradeDate("Resumo dos Negócios")
	assert.Error(t, err)
}

func TestValidatePeriod(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		wantYear int
		wantErr  string
	}{
		{name: "full 2019", start: "01/01/2019", end: "31/12/2019", wantYear: 2019},
		{name: "whitespace tolerated", start: " 01/01/2020 ", end: " 31/12/2020 ", wantYear: 2020},
		{name: "spans two years", start: "01/07/2019", end: "30/06/2020", wantErr: "multiple years"},
		{name: "partial year", start: "01/01/2019", end: "30/11/2019", wantErr: "full calendar year"},
		{name: "garbage start", start: "not-a-date", end: "31/12/2019", wantErr: "invalid period start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, err := ValidatePeriod(tt.start, tt.end)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}

func TestParseCSVStatement(t *testing.T) {
	stmt, err := NewParser().Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2019, stmt.ReferenceYear)
	assert.Equal(t, "CORRETORA XYZ S.A.", stmt.Institution)
	require.Len(t, stmt.Trades, 3)

	first := stmt.Trades[0]
	assert.Equal(t, "BOVA11", first.AssetCode)
	assert.Equal(t, "ISHARES BOVA CI", first.Description)
	assert.Equal(t, models.SideBuy, first.Side)
	assert.Equal(t, int64(100), first.Quantity)
	assert.Equal(t, "935", first.GrossValue.String())
	assert.Equal(t, time.Date(2019, 2, 20, 0, 0, 0, 0, time.UTC), first.TradeDate)

	second := stmt.Trades[1]
	assert.Equal(t, models.SideSell, second.Side)
	// Thousands dot and decimal comma both normalized.
	assert.Equal(t, "10956", second.GrossValue.String())

	third := stmt.Trades[2]
	assert.Equal(t, "8870", third.GrossValue.String())
	assert.Equal(t, int64(260), third.Quantity)
}

func TestParseSkipsMalformedRows(t *testing.T) {
	csv := strings.Replace(sampleCSV,
		" 06/03/19 ; V ;Mercado a Vista;;PETR4;PETROBRAS PN;100;109,56;10.956,00",
		" 06/03/19 ; X ;Mercado a Vista;;PETR4;PETROBRAS PN;100;109,56;10.956,00", 1)

	stmt, err := NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, stmt.Trades, 2)
	assert.Equal(t, "BOVA11", stmt.Trades[0].AssetCode)
	assert.Equal(t, "BOVA11", stmt.Trades[1].AssetCode)
}

func TestParseStopsAtFooter(t *testing.T) {
	stmt, err := NewParser().Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	for _, tr := range stmt.Trades {
		assert.NotContains(t, tr.AssetCode, "Resumo")
	}
}

func TestParseRejectsEmptyFile(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseRejectsMissingPeriod(t *testing.T) {
	csv := "Extrato;\nAlgum cabeçalho;\nData Negócio;C/V\n"
	_, err := NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reporting period")
}

func TestParseXLSXStatement(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Extrato de Negociação - CEI"},
		{"Período de", "01/01/2019 a 31/12/2019"},
		{""},
		{"", "CORRETORA XYZ S.A."},
		{"Data Negócio", "C/V", "Mercado", "Prazo", "Código", "Especificação do Ativo", "Quantidade", "Preço (R$)", "Valor Total (R$)"},
		{" 20/02/19 ", " C ", "Mercado a Vista", "", "BOVA11", "ISHARES BOVA CI", "100", "9,35", "935,00"},
		{"Resumo dos Negócios"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	stmt, err := NewParser().Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2019, stmt.ReferenceYear)
	assert.Equal(t, "CORRETORA XYZ S.A.", stmt.Institution)
	require.Len(t, stmt.Trades, 1)
	assert.Equal(t, "BOVA11", stmt.Trades[0].AssetCode)
	assert.Equal(t, "935", stmt.Trades[0].GrossValue.String())
}
