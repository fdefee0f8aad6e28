package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"StockScreener/internal/model"
)

const undefined = "-"

// WriteTable writes rows as an aligned text table, one line per symbol and day.
func WriteTable(w io.Writer, rows []model.ReportRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tDATE\tCLOSE\tSMA\tRSI\tUPPER\tMIDDLE\tLOWER\tSMA SIG\tRSI SIG\tBB SIG\tBUY\tSELL\tNEUTRAL")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			r.Symbol,
			r.Date.Format("2006-01-02"),
			price(r.Close),
			nullPrice(r.SMA),
			nullPrice(r.RSI),
			nullPrice(r.UpperBand),
			nullPrice(r.MiddleBand),
			nullPrice(r.LowerBand),
			signal(r.SMASignal),
			signal(r.RSISignal),
			signal(r.BBSignal),
			r.BuyCount, r.SellCount, r.NeutralCount,
		)
	}
	return tw.Flush()
}

// WriteFailures lists symbols that could not be screened. Nothing is written when
// failures is empty.
func WriteFailures(w io.Writer, failures []model.SymbolFailure) error {
	if len(failures) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nFailed symbols (%d):\n", len(failures)); err != nil {
		return err
	}
	for _, f := range failures {
		if _, err := fmt.Fprintf(w, "  %s: %v\n", f.Symbol, f.Err); err != nil {
			return err
		}
	}
	return nil
}

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func nullPrice(v model.NullFloat) string {
	if !v.Valid {
		return undefined
	}
	return price(v.Value)
}

func signal(s model.Signal) string {
	if s == model.SignalUndefined {
		return undefined
	}
	return s.String()
}
