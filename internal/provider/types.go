package provider

// Request headers understood by the MoMo API
const (
	HeaderSubscriptionKey   = "Ocp-Apim-Subscription-Key"
	HeaderTargetEnvironment = "X-Target-Environment"
	HeaderReferenceID       = "X-Reference-Id"
	HeaderCallbackURL       = "X-Callback-Url"
	HeaderAuthorization     = "Authorization"
	HeaderContentType       = "Content-Type"

	ContentTypeJSON = "application/json"
)

// OperationType names an API operation in logs and metrics
type OperationType string

const (
	OpToken          OperationType = "token"
	OpRequestToPay   OperationType = "request_to_pay"
	OpPaymentStatus  OperationType = "payment_status"
	OpDeposit        OperationType = "deposit"
	OpDepositStatus  OperationType = "deposit_status"
	OpTransfer       OperationType = "transfer"
	OpTransferStatus OperationType = "transfer_status"
	OpRefund         OperationType = "refund"
	OpRefundStatus   OperationType = "refund_status"
	OpBalance        OperationType = "balance"
	OpCreateAPIUser  OperationType = "create_api_user"
	OpGetAPIUser     OperationType = "get_api_user"
	OpCreateAPIKey   OperationType = "create_api_key"
)
