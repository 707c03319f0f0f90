package domain

type SyncStatus string

const (
	SyncStatusSkipped SyncStatus = "skipped"
	SyncStatusCreated SyncStatus = "created"
	SyncStatusUpdated SyncStatus = "updated"
	SyncStatusFailed  SyncStatus = "failed"
)

type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "validation_error"
	ErrorKindNetwork           ErrorKind = "network_error"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
)

// SyncOutcome is the tagged result of one orchestration attempt.
// A Failed outcome never propagates past the orchestrator as an error;
// the host's own write is unaffected.
type SyncOutcome struct {
	ItemCode string     `json:"item_code"`
	Status   SyncStatus `json:"status"`

	// Set for created/updated.
	ExternalID string `json:"external_id,omitempty"`

	// Set for skipped.
	Reason string `json:"reason,omitempty"`

	// Set for failed.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Message   string    `json:"message,omitempty"`
}

func Skipped(itemCode string, reason string) SyncOutcome {
	return SyncOutcome{ItemCode: itemCode, Status: SyncStatusSkipped, Reason: reason}
}

func Created(itemCode string, externalID string) SyncOutcome {
	return SyncOutcome{ItemCode: itemCode, Status: SyncStatusCreated, ExternalID: externalID}
}

func Updated(itemCode string, externalID string) SyncOutcome {
	return SyncOutcome{ItemCode: itemCode, Status: SyncStatusUpdated, ExternalID: externalID}
}

func Failed(itemCode string, kind ErrorKind, message string) SyncOutcome {
	return SyncOutcome{ItemCode: itemCode, Status: SyncStatusFailed, ErrorKind: kind, Message: message}
}
