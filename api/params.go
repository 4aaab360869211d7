package api

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// amountPlaces is the number of decimal places OMC amounts are sent with
const amountPlaces = 8

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report the wire name of a parameter rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("param"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimals are validated by value
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("omcaddress", func(fl validator.FieldLevel) bool {
		return ValidateAddress(fl.Field().String()) == nil
	})

	return v
}

// validateParams checks p against its validate tags
func validateParams(method string, p interface{}) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	verr := &ValidationError{Method: method}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.Fields = append(verr.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
	}
	return verr
}

// HashPassword returns the lowercase hex SHA-512 digest the API expects in place of a password
func HashPassword(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}

// FormatAmount encodes an OMC amount for the wire. SendCoins rejects amounts
// with more than 8 decimal places, so the encoding never rounds.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(amountPlaces)
}

// Credentials authenticate account methods
type Credentials struct {
	Username     string `param:"username" validate:"required,max=64"`
	PasswordHash string `param:"password" validate:"required,len=128,hexadecimal"`
}

// NewCredentials hashes password and pairs it with username
func NewCredentials(username, password string) Credentials {
	return Credentials{Username: username, PasswordHash: HashPassword(password)}
}

func (c Credentials) values() url.Values {
	return url.Values{
		"username": {c.Username},
		"password": {c.PasswordHash},
	}
}

type addressParams struct {
	Address string `param:"address" validate:"required,omcaddress"`
}

type verifyMessageParams struct {
	Address   string `param:"address" validate:"required,omcaddress"`
	Message   string `param:"message" validate:"required"`
	Signature string `param:"signature" validate:"required,base64"`
}

type earningsParams struct {
	Hashrate float64 `param:"hashrate" validate:"gt=0"`
}

type registerParams struct {
	Username        string `param:"username" validate:"required,max=64"`
	PasswordHash    string `param:"password" validate:"required,len=128,hexadecimal"`
	ConfirmPassword string `param:"confirmpassword" validate:"required,eqfield=PasswordHash"`
}

type signMessageParams struct {
	Credentials
	Address string `param:"address" validate:"required,omcaddress"`
	Message string `param:"message" validate:"required"`
}

type sendCoinsParams struct {
	Credentials
	Address string          `param:"address" validate:"required,omcaddress"`
	Amount  decimal.Decimal `param:"amount" validate:"gt=0"`
}

type importKeyParams struct {
	Credentials
	PrivateKey string `param:"privkey" validate:"required"`
	Address    string `param:"address" validate:"required,omcaddress"`
}

type changePasswordParams struct {
	Credentials
	NewPasswordHash     string `param:"new_password" validate:"required,len=128,hexadecimal"`
	ConfirmPasswordHash string `param:"confirm_password" validate:"required,eqfield=NewPasswordHash"`
}

type changeEmailParams struct {
	Credentials
	Email string `param:"email" validate:"required,email"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
