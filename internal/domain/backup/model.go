package backup

import (
	"time"

	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// Version is the archive format version written into every export.
const Version = 1

// Database reachability states reported by Status.
const (
	StatusOK   = "ok"
	StatusDown = "down"
)

// Archive is a full dump of the store: every project and every model at full
// detail. It is both the export payload and the restore input.
type Archive struct {
	BackupVersion int               `json:"backupVersion"`
	ExportedAt    time.Time         `json:"exportedAt"`
	Projects      []project.Project `json:"projects"`
	Models        []model.Detail    `json:"models"`
}

// RestoreResult reports how many rows a restore wrote.
type RestoreResult struct {
	Status   string `json:"status"`
	Projects int    `json:"projects"`
	Models   int    `json:"models"`
}

// DBStatus describes database reachability with a measured round trip.
type DBStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// StatusReport is the health check response.
type StatusReport struct {
	DB DBStatus `json:"db"`
}
