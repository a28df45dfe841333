package gateway

import "encoding/json"

// Typed request/response envelopes for the gateway's JSON contract. One
// request variant per operation name; decoded-reply structs carry optional
// fields exactly where the gateway may omit them.

const (
	opGetMerchantDetails          = "getMerchantDetails"
	opCreateTransaction           = "createTransaction"
	opGetSettledBatchList         = "getSettledBatchList"
	opGetTransactionList          = "getTransactionList"
	opGetUnsettledTransactionList = "getUnsettledTransactionList"
	opGetCustomerProfileIds       = "getCustomerProfileIds"
	opGetCustomerProfile          = "getCustomerProfile"
)

// merchantAuthentication is the credential block wrapped into every request.
type merchantAuthentication struct {
	Name           string `json:"name"`
	TransactionKey string `json:"transactionKey"`
}

// --- Request bodies ---

type merchantDetailsRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
}

type createTransactionRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	TransactionRequest     transactionRequest     `json:"transactionRequest"`
}

type transactionRequest struct {
	TransactionType string      `json:"transactionType"`
	Amount          string      `json:"amount"` // fixed two-decimal string, never a float
	Payment         paymentWire `json:"payment"`
	Tax             taxWire     `json:"tax"`
	BillTo          billToWire  `json:"billTo"`
}

type paymentWire struct {
	CreditCard creditCardWire `json:"creditCard"`
}

type creditCardWire struct {
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CardCode       string `json:"cardCode"`
}

type taxWire struct {
	Amount string `json:"amount"`
	Name   string `json:"name"`
}

type billToWire struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Email     string `json:"email"`
}

type settledBatchListRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	IncludeStatistics      bool                   `json:"includeStatistics"`
}

type transactionListRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	BatchID                string                 `json:"batchId"`
}

type unsettledTransactionListRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
}

type customerProfileIdsRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
}

type customerProfileRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	CustomerProfileID      string                 `json:"customerProfileId"`
}

// --- Reply structures ---

// replyStatus is the messages block present on every reply envelope.
type replyStatus struct {
	ResultCode string         `json:"resultCode"`
	Message    []statusDetail `json:"message"`
}

type statusDetail struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type merchantDetailsReply struct {
	Messages       replyStatus     `json:"messages"`
	MerchantName   string          `json:"merchantName"`
	GatewayID      string          `json:"gatewayId"`
	ContactDetails *contactWire    `json:"contactDetails"`
	Processors     []processorWire `json:"processors"`
}

type contactWire struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
}

type processorWire struct {
	Name string `json:"name"`
}

type createTransactionReply struct {
	Messages            replyStatus          `json:"messages"`
	TransactionResponse *transactionResponse `json:"transactionResponse"`
}

type transactionResponse struct {
	ResponseCode string             `json:"responseCode"`
	TransID      string             `json:"transId"`
	AuthCode     string             `json:"authCode"`
	Messages     []transactionNote  `json:"messages"`
	Errors       []transactionError `json:"errors"`
}

type transactionNote struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type transactionError struct {
	ErrorCode string `json:"errorCode"`
	ErrorText string `json:"errorText"`
}

type settledBatchListReply struct {
	Messages  replyStatus `json:"messages"`
	BatchList []batchWire `json:"batchList"`
}

type batchWire struct {
	BatchID           string `json:"batchId"`
	SettlementTimeUTC string `json:"settlementTimeUTC"`
	SettlementState   string `json:"settlementState"`
}

type transactionListReply struct {
	Messages     replyStatus       `json:"messages"`
	Transactions []transactionWire `json:"transactions"`
}

type transactionWire struct {
	TransID           string      `json:"transId"`
	SubmitTimeUTC     string      `json:"submitTimeUTC"`
	SubmitTimeLocal   string      `json:"submitTimeLocal"`
	TransactionStatus string      `json:"transactionStatus"`
	AccountType       *string     `json:"accountType"`
	AccountNumber     *string     `json:"accountNumber"`
	SettleAmount      json.Number `json:"settleAmount"`
	FirstName         *string     `json:"firstName"`
	LastName          *string     `json:"lastName"`
}

type customerProfileIdsReply struct {
	Messages replyStatus `json:"messages"`
	IDs      []string    `json:"ids"`
}

type customerProfileReply struct {
	Messages replyStatus         `json:"messages"`
	Profile  customerProfileWire `json:"profile"`
}

type customerProfileWire struct {
	CustomerProfileID string               `json:"customerProfileId"`
	Email             string               `json:"email"`
	PaymentProfiles   []paymentProfileWire `json:"paymentProfiles"`
}

type paymentProfileWire struct {
	BillTo  *billToWire     `json:"billTo"`
	Payment *storedCardWire `json:"payment"`
}

type storedCardWire struct {
	CreditCard *storedCreditCard `json:"creditCard"`
}

type storedCreditCard struct {
	CardNumber     string `json:"cardNumber"` // masked, e.g. "XXXX4242"
	ExpirationDate string `json:"expirationDate"`
	CardType       string `json:"cardType"`
}
