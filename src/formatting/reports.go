// backend/src/formatting/reports.go
package formatting

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/username/ceifolio/backend/src/models"
	"github.com/username/ceifolio/backend/src/security/validation"
)

// WriteFeeReport renders the per-trade fee report for the console.
func WriteFeeReport(w io.Writer, report []models.FeeDetail) error {
	if len(report) == 0 {
		_, err := fmt.Fprintln(w, "Nenhuma operação no período.")
		return err
	}

	fmt.Fprintln(w, "Taxas das operações:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Data\tCódigo\tC/V\tValor Total\tLiquidação\tEmolumentos")
	for _, row := range report {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.TradeDate.Format("02/01/2006"),
			row.AssetCode,
			sideLabel(row.Side),
			Currency(row.GrossValue),
			Currency(row.SettlementFee),
			Currency(row.EmolumentFee),
		)
	}
	return tw.Flush()
}

// WritePositionsReport renders the "Bens e Direitos" holdings report for
// the console, one declaration block per asset.
func WritePositionsReport(w io.Writer, positions []models.AssetPosition, year int, institution string) error {
	fmt.Fprintf(w, "Bens e Direitos %d", year)
	if institution != "" {
		fmt.Fprintf(w, " - %s", institution)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Código: 31 (Ações) / 73 (Fundos). Declare cada ativo com sua quantidade, custo total e preço médio.")

	if len(positions) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum ativo no período.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Código\tEspecificação\tQtd Compra\tCusto Compra\tQtd Venda\tCusto Venda\tPreço Médio")
	for _, pos := range positions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\t%s\n",
			pos.AssetCode,
			pos.Description,
			pos.BuyQuantity,
			Currency(pos.BuyCost),
			pos.SellQuantity,
			Currency(pos.SellCost),
			Price(pos.AveragePrice),
		)
	}
	return tw.Flush()
}

// WritePositionsCSV writes the holdings report as a CSV download. Text
// cells pass through the formula-injection guard before they can reach a
// spreadsheet application.
func WritePositionsCSV(w io.Writer, positions []models.AssetPosition) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"asset_code", "description", "buy_quantity", "buy_cost", "sell_quantity", "sell_cost", "average_price"}); err != nil {
		return err
	}
	for _, pos := range positions {
		avg := ""
		if pos.AveragePrice.Valid {
			avg = pos.AveragePrice.Decimal.StringFixed(3)
		}
		record := []string{
			validation.SanitizeForFormulaInjection(pos.AssetCode),
			validation.SanitizeForFormulaInjection(pos.Description),
			fmt.Sprintf("%d", pos.BuyQuantity),
			pos.BuyCost.String(),
			fmt.Sprintf("%d", pos.SellQuantity),
			pos.SellCost.String(),
			avg,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFeeReportCSV writes the fee report as a CSV download.
func WriteFeeReportCSV(w io.Writer, report []models.FeeDetail) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trade_date", "asset_code", "side", "gross_value", "settlement_fee", "emolument_fee"}); err != nil {
		return err
	}
	for _, row := range report {
		record := []string{
			row.TradeDate.Format("2006-01-02"),
			validation.SanitizeForFormulaInjection(row.AssetCode),
			row.Side,
			row.GrossValue.StringFixed(2),
			row.SettlementFee.StringFixed(2),
			row.EmolumentFee.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sideLabel(side string) string {
	if side == models.SideBuy {
		return "C"
	}
	return "V"
}
