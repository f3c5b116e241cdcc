package audithook

// Action constants for audit events.
const (
	// Subscription actions
	ActionSubscribed      = "subscription.purchased"
	ActionPaymentRejected = "subscription.payment_rejected"

	// Catalogue actions
	ActionMovieAdded = "catalog.movie_added"

	// Funds actions
	ActionFundsWithdrawn = "funds.withdrawn"
)

// Resource constants for audit events.
const (
	ResourceSubscription = "subscription"
	ResourceMovie        = "movie"
	ResourceFunds        = "funds"
)

// Category constants for audit events.
const (
	CategorySubscription = "subscription"
	CategoryCatalog      = "catalog"
	CategoryPayment      = "payment"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
