package deps

import (
	"time"

	"github.com/waygate-dev/waygate/internal/enrich"
	"github.com/waygate-dev/waygate/internal/logger"
	"github.com/waygate-dev/waygate/internal/store/sqlite"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store    *sqlite.Store    // Item persistence
	Enricher *enrich.Enricher // Create + background metadata jobs
}
