package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"merchant-pos/config"
	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/apperror"

	"github.com/rs/zerolog"
)

// Gateway error code for rejected merchant authentication.
const authFailedCode = "E00007"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Client implements ports.Gateway against the gateway's JSON endpoint.
// One instance is bound to one set of credentials; the environment picks the
// endpoint at construction time and cannot change afterwards.
type Client struct {
	endpoint   string
	creds      domain.Credentials
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient builds a gateway client for the credentials' environment.
func NewClient(creds domain.Credentials, cfg config.GatewayConfig, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		// The gateway contract specifies no timeout; a finite one is our
		// implementation choice so a dead endpoint cannot hang a sale forever.
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &Client{
		endpoint:   cfg.EndpointFor(string(creds.Environment)),
		creds:      creds,
		httpClient: httpClient,
		log:        log,
	}
}

// NewFactory returns a ports.GatewayFactory closed over the transport config.
func NewFactory(cfg config.GatewayConfig, log zerolog.Logger) ports.GatewayFactory {
	return func(creds domain.Credentials) ports.Gateway {
		return NewClient(creds, cfg, nil, log)
	}
}

func (c *Client) auth() merchantAuthentication {
	return merchantAuthentication{
		Name:           c.creds.IdentityID,
		TransactionKey: c.creds.SecretKey,
	}
}

// GetMerchantProfile fetches account metadata; the gateway rejects invalid
// credentials here, which makes this the login validation call.
func (c *Client) GetMerchantProfile(ctx context.Context) (*domain.MerchantProfile, error) {
	var reply merchantDetailsReply
	if err := c.call(ctx, opGetMerchantDetails, merchantDetailsRequest{MerchantAuthentication: c.auth()}, &reply); err != nil {
		return nil, err
	}

	profile := &domain.MerchantProfile{
		MerchantName: reply.MerchantName,
		GatewayID:    reply.GatewayID,
	}
	if reply.ContactDetails != nil {
		profile.ContactDetails = &domain.ContactDetails{
			FirstName:   reply.ContactDetails.FirstName,
			LastName:    reply.ContactDetails.LastName,
			Email:       reply.ContactDetails.Email,
			Company:     reply.ContactDetails.CompanyName,
			Address:     reply.ContactDetails.Address,
			City:        reply.ContactDetails.City,
			State:       reply.ContactDetails.State,
			Zip:         reply.ContactDetails.Zip,
			Country:     reply.ContactDetails.Country,
			PhoneNumber: reply.ContactDetails.PhoneNumber,
		}
	}
	for _, p := range reply.Processors {
		profile.Processors = append(profile.Processors, domain.Processor{Name: p.Name})
	}
	return profile, nil
}

// CreateTransaction submits an auth-capture sale. Amounts go on the wire as
// fixed two-decimal strings to avoid precision drift.
func (c *Client) CreateTransaction(ctx context.Context, req domain.PaymentRequest) (*ports.SubmissionReply, error) {
	body := createTransactionRequest{
		MerchantAuthentication: c.auth(),
		TransactionRequest: transactionRequest{
			TransactionType: "authCaptureTransaction",
			Amount:          domain.FormatAmount(req.TotalMinor),
			Payment: paymentWire{
				CreditCard: creditCardWire{
					CardNumber:     req.CardNumber,
					ExpirationDate: req.ExpirationDate,
					CardCode:       req.CVV,
				},
			},
			Tax: taxWire{
				Amount: domain.FormatAmount(req.TaxMinor),
				Name:   "Sales Tax",
			},
			BillTo: billToWire{
				FirstName: req.Customer.FirstName,
				LastName:  req.Customer.LastName,
				Address:   req.Customer.Address,
				City:      req.Customer.City,
				State:     req.Customer.State,
				Zip:       req.Customer.Zip,
				Country:   req.Customer.Country,
				Email:     req.Customer.Email,
			},
		},
	}

	var reply createTransactionReply
	if err := c.call(ctx, opCreateTransaction, body, &reply); err != nil {
		return nil, err
	}
	if reply.TransactionResponse == nil {
		return nil, apperror.ErrDecodeFailure(fmt.Errorf("reply is missing transactionResponse"))
	}

	tr := reply.TransactionResponse
	out := &ports.SubmissionReply{
		ResponseCode:  tr.ResponseCode,
		TransactionID: optional(tr.TransID),
		AuthCode:      optional(tr.AuthCode),
	}
	if out.ResponseCode == "" {
		out.ResponseCode = "0"
	}
	for _, m := range tr.Messages {
		out.Messages = append(out.Messages, ports.ReplyNote{Code: m.Code, Text: m.Description})
	}
	for _, e := range tr.Errors {
		out.Errors = append(out.Errors, ports.ReplyNote{Code: e.ErrorCode, Text: e.ErrorText})
	}
	return out, nil
}

// GetSettledBatchList lists settlement batches in gateway order.
func (c *Client) GetSettledBatchList(ctx context.Context) ([]ports.SettlementBatch, error) {
	var reply settledBatchListReply
	body := settledBatchListRequest{MerchantAuthentication: c.auth(), IncludeStatistics: false}
	if err := c.call(ctx, opGetSettledBatchList, body, &reply); err != nil {
		return nil, err
	}

	batches := make([]ports.SettlementBatch, 0, len(reply.BatchList))
	for _, b := range reply.BatchList {
		batches = append(batches, ports.SettlementBatch{
			BatchID:           b.BatchID,
			SettlementTimeUTC: b.SettlementTimeUTC,
			SettlementState:   b.SettlementState,
		})
	}
	return batches, nil
}

// GetTransactionList lists the transactions of one settled batch. Entries
// without a transaction identifier are dropped, not errors.
func (c *Client) GetTransactionList(ctx context.Context, batchID string) ([]domain.Transaction, error) {
	var reply transactionListReply
	body := transactionListRequest{MerchantAuthentication: c.auth(), BatchID: batchID}
	if err := c.call(ctx, opGetTransactionList, body, &reply); err != nil {
		return nil, err
	}
	return parseTransactions(reply.Transactions), nil
}

// GetUnsettledTransactionList lists transactions not yet settled into a batch.
func (c *Client) GetUnsettledTransactionList(ctx context.Context) ([]domain.Transaction, error) {
	var reply transactionListReply
	body := unsettledTransactionListRequest{MerchantAuthentication: c.auth()}
	if err := c.call(ctx, opGetUnsettledTransactionList, body, &reply); err != nil {
		return nil, err
	}
	return parseTransactions(reply.Transactions), nil
}

// GetVaultCustomerIDs lists stored customer profile identifiers.
func (c *Client) GetVaultCustomerIDs(ctx context.Context) ([]string, error) {
	var reply customerProfileIdsReply
	if err := c.call(ctx, opGetCustomerProfileIds, customerProfileIdsRequest{MerchantAuthentication: c.auth()}, &reply); err != nil {
		return nil, err
	}
	return reply.IDs, nil
}

// GetVaultCustomer fetches one stored customer profile with its first saved
// payment method.
func (c *Client) GetVaultCustomer(ctx context.Context, id string) (*domain.VaultCustomer, error) {
	var reply customerProfileReply
	body := customerProfileRequest{MerchantAuthentication: c.auth(), CustomerProfileID: id}
	if err := c.call(ctx, opGetCustomerProfile, body, &reply); err != nil {
		return nil, err
	}

	customer := &domain.VaultCustomer{
		ID:    reply.Profile.CustomerProfileID,
		Email: reply.Profile.Email,
	}
	if len(reply.Profile.PaymentProfiles) > 0 {
		pp := reply.Profile.PaymentProfiles[0]
		if pp.BillTo != nil {
			customer.FirstName = pp.BillTo.FirstName
			customer.LastName = pp.BillTo.LastName
			customer.Address = pp.BillTo.Address
			customer.City = pp.BillTo.City
			customer.State = pp.BillTo.State
			customer.Zip = pp.BillTo.Zip
			customer.Country = pp.BillTo.Country
		}
		if pp.Payment != nil && pp.Payment.CreditCard != nil {
			cc := pp.Payment.CreditCard
			customer.Card = domain.VaultCard{
				LastFour:   lastFour(cc.CardNumber),
				Type:       cc.CardType,
				Expiration: cc.ExpirationDate,
			}
		}
	}
	return customer, nil
}

// call performs one request/reply round trip: wrap the body into the
// operation envelope, POST it, strip the BOM, unwrap the reply envelope, and
// classify gateway-level errors. No retries: a call either succeeds or
// returns one typed failure.
func (c *Client) call(ctx context.Context, op string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{op + "Request": body})
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshaling %s request: %w", op, err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperror.InternalError(fmt.Errorf("building %s request: %w", op, err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperror.ErrTransportFailure(err.Error(), err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.ErrTransportFailure(err.Error(), err)
	}

	// The secret key is never logged; only the operation and status are.
	c.log.Debug().
		Str("operation", op).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("gateway call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperror.ErrTransportFailure(fmt.Sprintf("Server error: %d", resp.StatusCode), nil)
	}

	// The gateway prefixes replies with a UTF-8 byte-order mark.
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apperror.ErrDecodeFailure(fmt.Errorf("decoding %s reply: %w", op, err))
	}

	inner, ok := envelope[op+"Response"]
	if !ok {
		return apperror.ErrDecodeFailure(fmt.Errorf("reply is missing %sResponse envelope", op))
	}

	var status struct {
		Messages replyStatus `json:"messages"`
	}
	if err := json.Unmarshal(inner, &status); err != nil {
		return apperror.ErrDecodeFailure(fmt.Errorf("decoding %s status: %w", op, err))
	}
	if status.Messages.ResultCode == "Error" {
		code, text := "", ""
		if len(status.Messages.Message) > 0 {
			code = status.Messages.Message[0].Code
			text = status.Messages.Message[0].Text
		}
		if code == authFailedCode {
			return apperror.ErrAuthenticationFailed(text)
		}
		if text == "" {
			text = "The gateway reported an error"
		}
		// Application-level error, distinct from transport failure; the
		// caller must not retry automatically.
		return apperror.ErrGatewayApplication(text)
	}

	if err := json.Unmarshal(inner, out); err != nil {
		return apperror.ErrDecodeFailure(fmt.Errorf("decoding %s body: %w", op, err))
	}
	return nil
}

func parseTransactions(wires []transactionWire) []domain.Transaction {
	txns := make([]domain.Transaction, 0, len(wires))
	for _, w := range wires {
		if w.TransID == "" {
			// Entries without an identifier are dropped, not errors.
			continue
		}

		status := domain.TransactionStatus(w.TransactionStatus)
		if w.TransactionStatus == "" {
			status = domain.TransactionStatusUnknown
		}

		var settleMinor int64
		if w.SettleAmount != "" {
			if minor, err := domain.ParseAmountToMinor(w.SettleAmount.String()); err == nil {
				settleMinor = minor
			}
		}

		txns = append(txns, domain.Transaction{
			TransactionID:     w.TransID,
			SubmittedAtUTC:    w.SubmitTimeUTC,
			SubmittedAtLocal:  w.SubmitTimeLocal,
			Status:            status,
			AccountType:       w.AccountType,
			AccountLastFour:   maskedLastFour(w.AccountNumber),
			SettleAmountMinor: settleMinor,
			FirstName:         w.FirstName,
			LastName:          w.LastName,
		})
	}
	return txns
}

// maskedLastFour extracts the trailing four digits from a masked account
// number like "XXXX1111".
func maskedLastFour(masked *string) *string {
	if masked == nil {
		return nil
	}
	four := lastFour(*masked)
	if four == "" {
		return nil
	}
	return &four
}

func lastFour(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return s
	}
	return s[len(s)-4:]
}

// optional converts an empty wire string to an absent value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
