package httputil

// Machine-readable error codes returned alongside error messages.
// Clients should branch on these rather than on message text.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeNameRequired       = "NAME_REQUIRED"
	CodeEmailRequired      = "EMAIL_REQUIRED"
	CodePasswordRequired   = "PASSWORD_REQUIRED"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeInvalidEmailFormat = "INVALID_EMAIL_FORMAT"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	CodeMissingAuth  = "MISSING_AUTH"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeInvalidToken = "INVALID_TOKEN"

	CodeTextRequired = "TEXT_REQUIRED"
	CodeTaskNotFound = "TASK_NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"

	CodeInternalError = "INTERNAL_ERROR"
)
