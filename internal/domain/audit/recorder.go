// Package audit defines the domain contract for the audit trail.
// Mutating services record who changed what; the storage layer decides
// how entries are persisted.
package audit

import (
	"context"

	"stockmark/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
)

// Recorder persists audit entries. Record is called inside the mutating
// transaction so entries commit or roll back with the change itself.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// NopRecorder discards all entries. Used in tests and tools.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, string, id.ID, Action, map[string]any) error {
	return nil
}
