package domain

// OutcomeStatus tags the terminal result of a payment submission.
type OutcomeStatus string

const (
	OutcomeApproved OutcomeStatus = "APPROVED"
	OutcomeDeclined OutcomeStatus = "DECLINED"
	OutcomeFailed   OutcomeStatus = "FAILED"
)

// ErrorKind distinguishes why a submission failed before the gateway could
// render a decision.
type ErrorKind string

const (
	ErrorKindTransport ErrorKind = "TRANSPORT"
	ErrorKindGateway   ErrorKind = "GATEWAY"
	ErrorKindDecode    ErrorKind = "DECODE"
	ErrorKindAuth      ErrorKind = "AUTH"
)

// Outcome is the typed terminal result of a sale submission.
// Approved carries the gateway transaction identifier and auth code;
// Declined carries the gateway's refusal reason; Failed carries the error
// class and a human-readable message.
type Outcome struct {
	Status        OutcomeStatus `json:"status"`
	TransactionID *string       `json:"transaction_id,omitempty"`
	AuthCode      *string       `json:"auth_code,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	ErrorKind     ErrorKind     `json:"error_kind,omitempty"`
	Message       string        `json:"message,omitempty"`
}

// ApprovedOutcome builds an approved outcome. A missing transaction id is
// tolerated, never fatal.
func ApprovedOutcome(transactionID, authCode *string) Outcome {
	return Outcome{
		Status:        OutcomeApproved,
		TransactionID: transactionID,
		AuthCode:      authCode,
	}
}

// DeclinedOutcome builds a declined outcome with the gateway's reason.
func DeclinedOutcome(reason string) Outcome {
	return Outcome{Status: OutcomeDeclined, Reason: reason}
}

// FailedOutcome builds a failed outcome for transport, decode, or
// authentication errors during submission.
func FailedOutcome(kind ErrorKind, message string) Outcome {
	return Outcome{Status: OutcomeFailed, ErrorKind: kind, Message: message}
}

// TerminalState maps the outcome onto the sale state machine.
func (o Outcome) TerminalState() SaleState {
	switch o.Status {
	case OutcomeApproved:
		return SaleStateApproved
	case OutcomeDeclined:
		return SaleStateDeclined
	default:
		return SaleStateFailed
	}
}
