package tui

import "github.com/arxanas/scm-record/internal/record"

func isFullyAccepted(cs *record.ChangeSet, file int) bool {
	return record.Compute(cs, record.FilePath(file)) == record.StateAll
}
