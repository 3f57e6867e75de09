package entities

import (
	"fmt"
	"strconv"
	"time"
)

// Audit field names. The whitelist below is the single source of truth for
// which fields produce audit entries; adding an auditable field is a one-line
// change here, not a change in the engine.
const (
	AuditFieldStatus          = "status"
	AuditFieldQuantity        = "quantity"
	AuditFieldValue           = "value"
	AuditFieldTargetDate      = "target_date"
	AuditFieldOperator        = "operator"
	AuditFieldConsultantName  = "consultant_name"
	AuditFieldConsultantEmail = "consultant_email"
	AuditFieldClaim           = "claim"
)

var AuditableFields = map[string]bool{
	AuditFieldStatus:          true,
	AuditFieldQuantity:        true,
	AuditFieldValue:           true,
	AuditFieldTargetDate:      true,
	AuditFieldOperator:        true,
	AuditFieldConsultantName:  true,
	AuditFieldConsultantEmail: true,
	AuditFieldClaim:           true,
}

// FieldChange holds the before/after pair for one audited field.
type FieldChange struct {
	Before interface{} `json:"before"`
	After  interface{} `json:"after"`
}

// ChangeSet maps an audited field name to its change. Keys outside the
// whitelist are dropped by the recorder before the entry is persisted.
type ChangeSet map[string]FieldChange

// AuditEntry is one immutable row of the proposal audit trail.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (proposal_id-index): proposal_id
//
// Entries are append-only; nothing in the system mutates or deletes them.

type AuditEntry struct {
	ID         string    `json:"id"`
	ProposalID string    `json:"proposal_id"`
	ActorID    string    `json:"actor_id"`
	Changes    ChangeSet `json:"changes"`
	CreatedAt  time.Time `json:"created_at"`
}

// NormalizeAuditValue renders a field value as a canonical string so diffing
// does not report false positives from numeric formatting (10 vs 10.0) or
// timestamp encodings.
func NormalizeAuditValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case ProposalStatus:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", t)
	}
}
