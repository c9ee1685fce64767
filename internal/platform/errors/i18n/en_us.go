package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                 = "UNKNOWN"
	CodeInvalidArgument         = "INVALID_ARGUMENT"
	CodeNotFound                = "NOT_FOUND"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeSessionTokenInvalid     = "SESSION_TOKEN_INVALID"
	CodeSessionTokenExpired     = "SESSION_TOKEN_EXPIRED"
	CodeRateLimited             = "RATE_LIMITED"
	CodeTransport               = "TRANSPORT"
	CodeUploadInvalidType       = "UPLOAD_INVALID_TYPE"
	CodeUploadTooLarge          = "UPLOAD_TOO_LARGE"
	CodeUploadInvalidDimensions = "UPLOAD_INVALID_DIMENSIONS"
	CodeUploadRejected          = "UPLOAD_REJECTED"
)

// builtinMessages backs codes a locale file does not carry.
var builtinMessages = map[Code]string{
	CodeUnknown:                 "Something went wrong",
	CodeInvalidArgument:         "Invalid request",
	CodeNotFound:                "The requested item was not found",
	CodeInvalidCredentials:      "Login failed",
	CodeSessionTokenInvalid:     "Your session is no longer valid",
	CodeSessionTokenExpired:     "Your session has expired",
	CodeRateLimited:             "Too many attempts, try again shortly",
	CodeTransport:               "Network error",
	CodeUploadInvalidType:       "Unsupported file type {{.ContentType}}",
	CodeUploadTooLarge:          "File is larger than {{.MaxBytes}} bytes",
	CodeUploadInvalidDimensions: "Image must be exactly {{.WidthPX}} x {{.HeightPX}} pixels",
	CodeUploadRejected:          "Upload failed: {{.Reason}}",
}
