package model

// Signal is the categorical outcome of one indicator for one day.
type Signal int

const (
	// SignalUndefined means the indicator had no value for the day.
	SignalUndefined Signal = iota
	SignalBuy
	SignalSell
	SignalNeutral
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "Buy"
	case SignalSell:
		return "Sell"
	case SignalNeutral:
		return "Neutral"
	default:
		return ""
	}
}

// MarshalText renders the signal the same way String does.
func (s Signal) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Thresholds holds the RSI levels used by the classifier.
type Thresholds struct {
	Overbought float64
	Oversold   float64
}

// DefaultThresholds returns the conventional 70/30 RSI levels.
func DefaultThresholds() Thresholds {
	return Thresholds{Overbought: 70, Oversold: 30}
}

// SignalRow is an IndicatorRow with its per-indicator signals and counts.
type SignalRow struct {
	IndicatorRow
	SMASignal    Signal
	RSISignal    Signal
	BBSignal     Signal
	BuyCount     int
	SellCount    int
	NeutralCount int
}

// SymbolReport holds one symbol's signal rows ordered by date ascending.
type SymbolReport struct {
	Symbol string
	Rows   []SignalRow
}

// ReportRow is a SignalRow tagged with its symbol.
type ReportRow struct {
	Symbol string
	SignalRow
}

// CombinedReport merges the rows of every SymbolReport.
type CombinedReport struct {
	Rows []ReportRow
}

// SymbolFailure records a symbol whose data could not be fetched.
type SymbolFailure struct {
	Symbol string
	Err    error
}
