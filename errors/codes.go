package errors

// ErrorCode identifies an error category in API responses
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_NOT_HOST
	ErrorCode_NOT_ELIGIBLE
	ErrorCode_CAPACITY_EXCEEDED
	ErrorCode_INVALID_CAPACITY
	ErrorCode_INVALID_TRANSITION
	ErrorCode_LOCATION_TOO_FAR
	ErrorCode_LOCATION_PERMISSION_DENIED
	ErrorCode_LOCATION_UNAVAILABLE
	ErrorCode_ALREADY_COMPLETED
	ErrorCode_INVITATION_NOT_FOUND
	ErrorCode_STORE_UNAVAILABLE
	ErrorCode_DAILY_LIMIT_EXCEEDED
	ErrorCode_ACCOUNT_RESTRICTED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                    "UNKNOWN",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_NOT_HOST:                   "NOT_HOST",
	ErrorCode_NOT_ELIGIBLE:               "NOT_ELIGIBLE",
	ErrorCode_CAPACITY_EXCEEDED:          "CAPACITY_EXCEEDED",
	ErrorCode_INVALID_CAPACITY:           "INVALID_CAPACITY",
	ErrorCode_INVALID_TRANSITION:         "INVALID_TRANSITION",
	ErrorCode_LOCATION_TOO_FAR:           "LOCATION_TOO_FAR",
	ErrorCode_LOCATION_PERMISSION_DENIED: "LOCATION_PERMISSION_DENIED",
	ErrorCode_LOCATION_UNAVAILABLE:       "LOCATION_UNAVAILABLE",
	ErrorCode_ALREADY_COMPLETED:          "ALREADY_COMPLETED",
	ErrorCode_INVITATION_NOT_FOUND:       "INVITATION_NOT_FOUND",
	ErrorCode_STORE_UNAVAILABLE:          "STORE_UNAVAILABLE",
	ErrorCode_DAILY_LIMIT_EXCEEDED:       "DAILY_LIMIT_EXCEEDED",
	ErrorCode_ACCOUNT_RESTRICTED:         "ACCOUNT_RESTRICTED",
}

// String returns the code's wire name
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
