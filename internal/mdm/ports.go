package mdm

import (
	"fmt"
	"strings"
)

type Operation string

const (
	OperationUpdate Operation = "UPDATE"
	OperationInsert Operation = "INSERT"
	OperationDelete Operation = "DELETE"
	OperationUpsert Operation = "UPSERT"
)

var operations = map[Operation]bool{
	OperationUpdate: true,
	OperationInsert: true,
	OperationDelete: true,
	OperationUpsert: true,
}

// ParseOperation accepts any casing and surrounding whitespace.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToUpper(strings.TrimSpace(s)))
	if !operations[op] {
		return "", fmt.Errorf("unknown operation %q (want UPDATE|INSERT|DELETE|UPSERT)", s)
	}
	return op, nil
}

// ChangeRequestDraft is sent verbatim to POST /cr. DryRun travels as the
// query parameter, not in the body.
type ChangeRequestDraft struct {
	Domain          string         `json:"domain"`
	Table           string         `json:"table"`
	Operation       Operation      `json:"operation"`
	Filter          map[string]any `json:"filter"`
	ProposedChanges map[string]any `json:"proposed_changes"`
	DryRun          bool           `json:"-"`
}
