package api

import "time"

// DefaultBaseURL is the Omnicha.in API endpoint
const DefaultBaseURL = "https://omnicha.in/api"

// DefaultTimeout bounds a single API call
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request unless overridden
const DefaultUserAgent = "omchain-go/1.0"

// maxResponseSize caps how much of a response body is read
const maxResponseSize = 4 << 20

// API method names
const (
	// public methods
	MethodGetInfo          = "getinfo"
	MethodGetDifficulty    = "getdifficulty"
	MethodGetBlockCount    = "getblockcount"
	MethodGetNetworkHashps = "getnetworkhashps"
	MethodGetBalance       = "getbalance"
	MethodCheckAddress     = "checkaddress"
	MethodVerifyMessage    = "verifymessage"
	MethodGetRichList      = "getrichlist"
	MethodGetWalletStats   = "getwstats"
	MethodEarningsCalc     = "earningscalc"

	// account methods
	MethodRegister         = "wallet_register"
	MethodLogin            = "wallet_login"
	MethodGetWalletInfo    = "wallet_getinfo"
	MethodGenerateAddress  = "wallet_genaddr"
	MethodSignMessage      = "wallet_signmessage"
	MethodSendCoins        = "wallet_send"
	MethodImportPrivateKey = "wallet_importkey"
	MethodChangePassword   = "wallet_changepassword"
	MethodChangeEmail      = "wallet_changeemail"
)

// errorMessages maps error codes reported in error_info to readable text
var errorMessages = map[string]string{
	"BAD_LOGIN":             "invalid username or password",
	"EMPTY_REQUIRED_FIELDS": "a required field was left empty",
	"INVALID_ADDRESS":       "the address is not a valid Omnicoin address",
	"INVALID_AMOUNT":        "the amount is not valid",
	"INSUFFICIENT_FUNDS":    "insufficient funds in the wallet",
	"USERNAME_TAKEN":        "the username is already registered",
	"INVALID_USERNAME":      "the username is not valid",
	"INVALID_PASSWORD":      "the password is not valid",
	"PASSWORD_MISMATCH":     "the passwords do not match",
	"INVALID_EMAIL":         "the email address is not valid",
	"INVALID_SESSION":       "the session has expired",
	"UNKNOWN_METHOD":        "the API method does not exist",
	"RATE_LIMITED":          "too many requests, try again later",
	"SERVER_ERROR":          "the server encountered an internal error",
}
