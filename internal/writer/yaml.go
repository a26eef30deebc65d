package writer

import (
	"path/filepath"

	"github.com/rxtech-lab/argo-signals/internal/types"
)

// WriteStats writes stats to dir/stats.yaml and returns the path.
func WriteStats(dir string, stats []types.RunStats) (string, error) {
	path := filepath.Join(dir, StatsFileName)

	if err := types.WriteRunStats(path, stats); err != nil {
		return "", err
	}

	return path, nil
}
