package aggregator

import (
	"sort"

	"StockScreener/internal/model"
)

// Combine concatenates every report's rows tagged with the symbol. Reports without rows
// contribute nothing.
func Combine(reports []model.SymbolReport) *model.CombinedReport {
	total := 0
	for _, r := range reports {
		total += len(r.Rows)
	}
	combined := &model.CombinedReport{Rows: make([]model.ReportRow, 0, total)}
	for _, r := range reports {
		for _, sr := range r.Rows {
			combined.Rows = append(combined.Rows, model.ReportRow{Symbol: r.Symbol, SignalRow: sr})
		}
	}
	return combined
}

// SortBySymbolThenDateDesc sorts rows in place by symbol ascending, then date descending.
func SortBySymbolThenDateDesc(rows []model.ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Symbol != rows[j].Symbol {
			return rows[i].Symbol < rows[j].Symbol
		}
		return rows[i].Date.After(rows[j].Date)
	})
}

// MostRecentPerSymbol returns up to n of the most recent rows for each symbol, ordered
// by symbol then date descending. The input slice is left untouched.
func MostRecentPerSymbol(rows []model.ReportRow, n int) []model.ReportRow {
	if n <= 0 {
		return nil
	}
	sorted := make([]model.ReportRow, len(rows))
	copy(sorted, rows)
	SortBySymbolThenDateDesc(sorted)

	out := make([]model.ReportRow, 0, len(sorted))
	taken := 0
	for i, r := range sorted {
		if i == 0 || r.Symbol != sorted[i-1].Symbol {
			taken = 0
		}
		if taken < n {
			out = append(out, r)
			taken++
		}
	}
	return out
}

// Latest returns the most recent row of each symbol.
func Latest(rows []model.ReportRow) map[string]model.ReportRow {
	latest := make(map[string]model.ReportRow)
	for _, r := range rows {
		if cur, ok := latest[r.Symbol]; !ok || r.Date.After(cur.Date) {
			latest[r.Symbol] = r
		}
	}
	return latest
}
