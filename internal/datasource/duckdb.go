package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBFetcher queries Parquet or CSV price files through an in-memory DuckDB connection.
type DuckDBFetcher struct {
	db           *sql.DB
	logger       *logger.Logger
	sq           squirrel.StatementBuilderType
	pathTemplate string
	symbolColumn string
}

// NewDuckDBFetcher opens an in-memory DuckDB database for reading files matching path.
// "{symbol}" in path is replaced on each fetch. Rows are filtered by symbolColumn unless it is empty.
func NewDuckDBFetcher(path string, symbolColumn string, log *logger.Logger) (*DuckDBFetcher, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "duckdb source requires a path")
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}

	return &DuckDBFetcher{
		db:           db,
		logger:       log,
		sq:           squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		pathTemplate: path,
		symbolColumn: symbolColumn,
	}, nil
}

// Fetch implements Fetcher.
func (d *DuckDBFetcher) Fetch(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	path := resolvePath(d.pathTemplate, symbol)

	query, args, err := d.buildQuery(path, symbol, start, end)
	if err != nil {
		return types.PriceSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	d.logger.Debug("Querying DuckDB", zap.String("symbol", symbol), zap.String("query", query))

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query %s", path)
	}
	defer rows.Close()

	var bars []types.PriceBar

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume sql.NullFloat64
		)

		if err := rows.Scan(&timestamp, &open, &high, &low, &close, &volume); err != nil {
			return types.PriceSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		bars = append(bars, types.PriceBar{
			Time:   timestamp.UTC(),
			Open:   nullToNaN(open),
			High:   nullToNaN(high),
			Low:    nullToNaN(low),
			Close:  nullToNaN(close),
			Volume: nullToNaN(volume),
		})
	}

	if err := rows.Err(); err != nil {
		return types.PriceSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return finish(symbol, bars)
}

// Close releases the database connection.
func (d *DuckDBFetcher) Close() error {
	if d.db == nil {
		return nil
	}

	err := d.db.Close()
	d.db = nil

	return err
}

func (d *DuckDBFetcher) buildQuery(path, symbol string, start, end time.Time) (string, []interface{}, error) {
	q := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From(tableFunction(path)).
		OrderBy("time ASC")

	if d.symbolColumn != "" {
		q = q.Where(squirrel.Eq{d.symbolColumn: symbol})
	}

	if !start.IsZero() {
		q = q.Where(squirrel.GtOrEq{"time": start})
	}

	if !end.IsZero() {
		q = q.Where(squirrel.LtOrEq{"time": end})
	}

	return q.ToSql()
}

// tableFunction picks the DuckDB reader for the file extension.
func tableFunction(path string) string {
	escaped := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return fmt.Sprintf("read_csv_auto('%s', header = true)", escaped)
	default:
		return fmt.Sprintf("read_parquet('%s')", escaped)
	}
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}
