package strategy

import "StockScreener/internal/model"

// Classify derives the SMA, RSI and Bollinger signals for one row and counts them.
func Classify(row model.IndicatorRow, th model.Thresholds) model.SignalRow {
	out := model.SignalRow{
		IndicatorRow: row,
		SMASignal:    smaSignal(row),
		RSISignal:    rsiSignal(row, th),
		BBSignal:     bollingerSignal(row, th),
	}
	for _, s := range []model.Signal{out.SMASignal, out.RSISignal, out.BBSignal} {
		switch s {
		case model.SignalBuy:
			out.BuyCount++
		case model.SignalSell:
			out.SellCount++
		case model.SignalNeutral:
			out.NeutralCount++
		}
	}
	return out
}

// Evaluate classifies every row of a symbol, keeping their order.
func Evaluate(symbol string, rows []model.IndicatorRow, th model.Thresholds) model.SymbolReport {
	report := model.SymbolReport{Symbol: symbol, Rows: make([]model.SignalRow, len(rows))}
	for i, r := range rows {
		report.Rows[i] = Classify(r, th)
	}
	return report
}

// smaSignal: price above its average is a Buy, below is a Sell.
func smaSignal(row model.IndicatorRow) model.Signal {
	if !row.SMA.Valid {
		return model.SignalUndefined
	}
	switch {
	case row.SMA.Value > row.Close:
		return model.SignalSell
	case row.SMA.Value < row.Close:
		return model.SignalBuy
	default:
		return model.SignalNeutral
	}
}

func rsiSignal(row model.IndicatorRow, th model.Thresholds) model.Signal {
	if !row.RSI.Valid {
		return model.SignalUndefined
	}
	switch {
	case row.RSI.Value > th.Overbought:
		return model.SignalSell
	case row.RSI.Value < th.Oversold:
		return model.SignalBuy
	default:
		return model.SignalNeutral
	}
}

// bollingerSignal needs both a band breach and RSI confirmation; anything else inside
// defined bands is Neutral.
func bollingerSignal(row model.IndicatorRow, th model.Thresholds) model.Signal {
	if !row.UpperBand.Valid || !row.LowerBand.Valid {
		return model.SignalUndefined
	}
	switch {
	case row.RSI.Valid && row.Close < row.LowerBand.Value && row.RSI.Value < th.Oversold:
		return model.SignalBuy
	case row.RSI.Valid && row.Close > row.UpperBand.Value && row.RSI.Value > th.Overbought:
		return model.SignalSell
	default:
		return model.SignalNeutral
	}
}
