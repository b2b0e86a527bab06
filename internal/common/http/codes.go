package http

const (
	CodeUnknown            = "UNKNOWN"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeInvalidPath        = "INVALID_PATH"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotXHR             = "NOT_XHR"
	CodeMissingAccessToken = "MISSING_ACCESS_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUnknownGroup       = "UNKNOWN_CATEGORY_GROUP"
	CodeAccountIDRequired  = "ACCOUNT_ID_REQUIRED"
	CodeCategoryIDRequired = "CATEGORY_ID_REQUIRED"
)
