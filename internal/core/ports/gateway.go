package ports

import (
	"context"

	"merchant-pos/internal/core/domain"
)

// Gateway is the typed surface of the payment gateway client. One instance is
// bound to one set of credentials and one environment; a fresh login builds a
// fresh instance. Calls either succeed or return exactly one typed failure.
// There are no automatic retries.
type Gateway interface {
	// GetMerchantProfile fetches account metadata. Doubles as credential
	// validation at login: the gateway rejects bad credentials here.
	GetMerchantProfile(ctx context.Context) (*domain.MerchantProfile, error)

	// CreateTransaction submits an auth-capture sale and returns the decoded
	// submission reply for classification. A reply is returned even when the
	// gateway declined; only transport/decode/application failures error.
	CreateTransaction(ctx context.Context, req domain.PaymentRequest) (*SubmissionReply, error)

	// GetSettledBatchList lists settlement batches, most recent first as
	// returned by the gateway (no client-side re-sorting).
	GetSettledBatchList(ctx context.Context) ([]SettlementBatch, error)

	// GetTransactionList lists the transactions of one settlement batch.
	GetTransactionList(ctx context.Context, batchID string) ([]domain.Transaction, error)

	// GetUnsettledTransactionList lists transactions not yet in any batch.
	GetUnsettledTransactionList(ctx context.Context) ([]domain.Transaction, error)

	// GetVaultCustomerIDs lists the identifiers of stored customer profiles.
	GetVaultCustomerIDs(ctx context.Context) ([]string, error)

	// GetVaultCustomer fetches one stored customer profile.
	GetVaultCustomer(ctx context.Context, id string) (*domain.VaultCustomer, error)
}

// GatewayFactory builds a Gateway bound to the given credentials. Injected
// into the session service so login can construct the client for the
// credentials' environment.
type GatewayFactory func(creds domain.Credentials) Gateway

// SubmissionReply is the decoded payment-submission reply: the gateway's
// numeric response code plus the optional identifier, auth code, and
// explanation lists. Optional fields are nil exactly where the gateway may
// omit them.
type SubmissionReply struct {
	ResponseCode  string
	TransactionID *string
	AuthCode      *string
	Messages      []ReplyNote
	Errors        []ReplyNote
}

// ReplyNote is one code+text entry from a reply's messages or errors list.
type ReplyNote struct {
	Code string
	Text string
}

// SettlementBatch is one gateway-side settlement grouping.
type SettlementBatch struct {
	BatchID           string
	SettlementTimeUTC string
	SettlementState   string
}
