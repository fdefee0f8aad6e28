package collector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"StockScreener/internal/model"
)

// DailyBarsSchema is the table layout SQLiteFetcher reads from.
const DailyBarsSchema = `CREATE TABLE IF NOT EXISTS daily_bars (
	symbol TEXT NOT NULL,
	date   TEXT NOT NULL,
	open   REAL,
	high   REAL,
	low    REAL,
	close  REAL NOT NULL,
	volume INTEGER,
	PRIMARY KEY (symbol, date)
)`

const dateLayout = "2006-01-02"

// SQLiteFetcher serves daily bars from a local SQLite price database.
type SQLiteFetcher struct {
	db *sql.DB
}

// NewSQLiteFetcher opens the database at dbPath. The daily_bars table must already exist.
func NewSQLiteFetcher(dbPath string) (*SQLiteFetcher, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'daily_bars'`).Scan(&name)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite %s: daily_bars table: %w", dbPath, err)
	}
	return &SQLiteFetcher{db: db}, nil
}

func (f *SQLiteFetcher) Name() string { return "sqlite" }

func (f *SQLiteFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error) {
	rows, err := f.db.QueryContext(ctx, `SELECT date, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = ? AND date >= ? AND date < ?
		ORDER BY date`,
		symbol, toDay(start).Format(dateLayout), toDay(end).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite query %s: %w", ErrDataUnavailable, symbol, err)
	}
	defer rows.Close()

	var bars []model.DailyBar
	for rows.Next() {
		var (
			date       string
			o, h, l, c sql.NullFloat64
			volume     sql.NullInt64
		)
		if err := rows.Scan(&date, &o, &h, &l, &c, &volume); err != nil {
			return nil, fmt.Errorf("%w: sqlite scan %s: %w", ErrDataUnavailable, symbol, err)
		}
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("%w: sqlite %s: bad date %q: %w", ErrDataUnavailable, symbol, date, err)
		}
		bars = append(bars, model.DailyBar{
			Date:   d,
			Open:   o.Float64,
			High:   h.Float64,
			Low:    l.Float64,
			Close:  c.Float64,
			Volume: volume.Int64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: sqlite rows %s: %w", ErrDataUnavailable, symbol, err)
	}

	if len(bars) == 0 {
		var n int
		if err := f.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM daily_bars WHERE symbol = ?`, symbol).Scan(&n); err != nil {
			return nil, fmt.Errorf("%w: sqlite count %s: %w", ErrDataUnavailable, symbol, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: sqlite %s", ErrUnknownSymbol, symbol)
		}
	}
	return bars, nil
}

// Close releases the database handle.
func (f *SQLiteFetcher) Close() error {
	return f.db.Close()
}
