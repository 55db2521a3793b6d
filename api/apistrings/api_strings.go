package apistrings

const (
	/// Basic User Related Strings
	UserNotFound              = "user or account does not exist"
	UserDetailsAlreadyCreated = "email already exists"
	InvalidEmail              = "invalid email address, please check submitted email address"
	InvalidEmailPassInput     = "please enter a valid email and password"
	IncorrectEmailPass        = "incorrect email or password"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Wallet Related Strings
	UserNoWallet          = "user does not have a wallet created"
	InvalidAmountInput    = "check 'amount' key, amount must be greater than zero"
	InvalidTransactionPIN = "incorrect PIN, please try again"
	PINNotSet             = "transaction PIN has not been set"
	InsufficientFunds     = "insufficient wallet balance"

	/// Funding Related Strings
	DuplicatePendingFunding = "you already have a pending funding request, please wait a moment"
	ProofRequired           = "please attach your proof of payment"
	MissingReference        = "check 'reference' key, invalid request"
	TransactionNotFound     = "transaction does not exist"
	ProviderUnavailable     = "payment provider is unavailable, please try again later"

	/// Withdrawal Related Strings
	NoBankDetails            = "please add your bank details before withdrawing"
	IdempotencyTokenMiss     = "missing Idempotency-Key header, please retry with a token"
	IdempotencyTokenConflict = "idempotency token is already in use, please retry with a new one"
	EntryTooLong             = "one of the values provided is too long"

	/// Catalog Related Strings
	VariantNotFound  = "gift card variant does not exist"
	VariantWrongSide = "gift card variant is not available for this order type"
	OutOfStock       = "not enough cards in stock for this order"
	CardCodeRequired = "please submit at least one card code"
	InvalidQuantity  = "check 'quantity' key, quantity must be at least 1"

	/// Notification Related Strings
	NotificationNotFound = "notification does not exist"
)
