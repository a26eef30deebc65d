// Package writer exports signal tables, ledgers and run statistics to disk.
package writer

import (
	"path/filepath"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Format is an export file format for signal tables.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

var AllFormats = []any{
	FormatCSV,
	FormatParquet,
}

const (
	SignalsFileName = "signals"
	LedgerFileName  = "trades.csv"
	StatsFileName   = "stats.yaml"
)

// WriteSignals writes table into dir as signals.<format> and returns the file path.
func WriteSignals(dir string, format Format, table types.SignalTable) (string, error) {
	path := filepath.Join(dir, SignalsFileName+"."+string(format))

	var err error

	switch format {
	case FormatCSV:
		err = WriteSignalsCSV(path, table)
	case FormatParquet:
		err = WriteSignalsParquet(path, table)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported export format %q", format)
	}

	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteResultsFailed, err, "failed to write %s", path)
	}

	return path, nil
}
