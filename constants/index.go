package constants

// Roles
const (
	ROLE_ADMIN    = "ADMIN"
	ROLE_STAFF    = "STAFF"
	ROLE_CUSTOMER = "CUSTOMER"
)

// Festival status
const (
	FESTIVAL_UPCOMING = "UPCOMING"
	FESTIVAL_RUNNING  = "RUNNING"
	FESTIVAL_ENDED    = "ENDED"
)

// Performance status
const (
	PERFORMANCE_SCHEDULED = "SCHEDULED"
	PERFORMANCE_FINISHED  = "FINISHED"
)

// Error taxonomy codes returned in the keyError field
const (
	INVALID_INPUT                = "INVALID_INPUT"
	INVALID_QUANTITY             = "INVALID_QUANTITY"
	CATALOG_NOT_FOUND            = "CATALOG_NOT_FOUND"
	INVALID_AMOUNT               = "INVALID_AMOUNT"
	AMOUNT_MISMATCH              = "AMOUNT_MISMATCH"
	PAYMENT_NOT_COMPLETED        = "PAYMENT_NOT_COMPLETED"
	SESSION_NOT_FOUND_OR_EXPIRED = "SESSION_NOT_FOUND_OR_EXPIRED"
	NOT_PAYMENT_OWNER            = "NOT_PAYMENT_OWNER"
	GATEWAY_UNAVAILABLE          = "GATEWAY_UNAVAILABLE"
	DUPLICATE_CONFIRMATION       = "DUPLICATE_CONFIRMATION"
	CODE_GENERATION_EXHAUSTED    = "CODE_GENERATION_EXHAUSTED"
	TICKET_NOT_FOUND             = "TICKET_NOT_FOUND"
	ALREADY_REDEEMED             = "ALREADY_REDEEMED"
)

// Shared handler messages
const (
	MISSING_LOGIN_INPUT      = "Username and password are required"
	INVALID_USERNAME         = "Username does not exist"
	INVALID_PASSWORD         = "Password does not match"
	ACCOUNT_NOT_ACTIVE       = "Account is not active"
	ERROR_INTERNAL_ERROR     = "Internal server error"
	ERROR_INPUT              = "Invalid input"
	NOT_ADMIN                = "Admin permission required"
	NOT_STAFF                = "Staff permission required"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
)
