package domain

// Result is the status code the service attaches to connect and logon outcomes.
type Result string

const (
	OK                            Result = "OK"
	FAIL                          Result = "FAIL"
	NO_CONNECTION                 Result = "NO_CONNECTION"
	TIMEOUT                       Result = "TIMEOUT"
	SERVICE_UNAVAILABLE           Result = "SERVICE_UNAVAILABLE"
	TRY_ANOTHER_CM                Result = "TRY_ANOTHER_CM"
	INVALID_PASSWORD              Result = "INVALID_PASSWORD"
	ACCESS_DENIED                 Result = "ACCESS_DENIED"
	ACCOUNT_LOGON_DENIED          Result = "ACCOUNT_LOGON_DENIED"
	ACCOUNT_LOGON_DENIED_NO_MAIL  Result = "ACCOUNT_LOGON_DENIED_NO_MAIL"
	ACCOUNT_LOGIN_DENIED_NEED_2FA Result = "ACCOUNT_LOGIN_DENIED_NEED_TWO_FACTOR"
	TWO_FACTOR_CODE_MISMATCH      Result = "TWO_FACTOR_CODE_MISMATCH"
	RATE_LIMIT_EXCEEDED           Result = "RATE_LIMIT_EXCEEDED"
)

// IsAccessDenied reports whether the service refused the credentials themselves,
// or asked for a verification step the bot cannot provide.
// Retrying with the same credentials cannot succeed.
func (r Result) IsAccessDenied() bool {
	switch r {
	case INVALID_PASSWORD,
		ACCESS_DENIED,
		ACCOUNT_LOGON_DENIED,
		ACCOUNT_LOGON_DENIED_NO_MAIL,
		ACCOUNT_LOGIN_DENIED_NEED_2FA,
		TWO_FACTOR_CODE_MISMATCH:
		return true
	default:
		return false
	}
}
