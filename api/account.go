package api

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

// Register creates a new account. An empty confirmPassword is treated as equal to password.
func (c *Client) Register(ctx context.Context, username, password, confirmPassword string) error {
	if confirmPassword == "" {
		confirmPassword = password
	}

	p := registerParams{
		Username:        username,
		PasswordHash:    hashIfSet(password),
		ConfirmPassword: hashIfSet(confirmPassword),
	}
	if err := c.validate(MethodRegister, p); err != nil {
		return err
	}

	params := url.Values{
		"username":        {p.Username},
		"password":        {p.PasswordHash},
		"confirmpassword": {p.ConfirmPassword},
	}
	return c.Call(ctx, MethodRegister, params, nil)
}

// Login signs in and returns the session token
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	if err := c.validate(MethodLogin, creds); err != nil {
		return "", err
	}

	var result struct {
		Session string `json:"session"`
	}
	if err := c.Call(ctx, MethodLogin, creds.values(), &result); err != nil {
		return "", err
	}
	if result.Session == "" {
		return "", &APIError{Method: MethodLogin, Code: "INVALID_SESSION"}
	}
	return result.Session, nil
}

// GetWalletInfo fetches balances, addresses and transactions of the account
func (c *Client) GetWalletInfo(ctx context.Context, creds Credentials) (*WalletInfo, error) {
	if err := c.validate(MethodGetWalletInfo, creds); err != nil {
		return nil, err
	}

	var info WalletInfo
	if err := c.Call(ctx, MethodGetWalletInfo, creds.values(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GenerateAddress creates a new receiving address for the account
func (c *Client) GenerateAddress(ctx context.Context, creds Credentials) (string, error) {
	if err := c.validate(MethodGenerateAddress, creds); err != nil {
		return "", err
	}

	var result struct {
		Address string `json:"address"`
	}
	if err := c.Call(ctx, MethodGenerateAddress, creds.values(), &result); err != nil {
		return "", err
	}
	if result.Address == "" {
		return "", ErrEmptyResponse
	}
	return result.Address, nil
}

// SignMessage has the server sign message with the key of one of the account's addresses
func (c *Client) SignMessage(ctx context.Context, creds Credentials, address, message string) (string, error) {
	p := signMessageParams{Credentials: creds, Address: address, Message: message}
	if err := c.validate(MethodSignMessage, p); err != nil {
		return "", err
	}

	params := creds.values()
	params.Set("address", address)
	params.Set("message", message)

	var result struct {
		Signature string `json:"signature"`
	}
	if err := c.Call(ctx, MethodSignMessage, params, &result); err != nil {
		return "", err
	}
	if result.Signature == "" {
		return "", ErrEmptyResponse
	}
	return result.Signature, nil
}

// SendCoins sends amount OMC from the account to address
func (c *Client) SendCoins(ctx context.Context, creds Credentials, address string, amount decimal.Decimal) error {
	p := sendCoinsParams{Credentials: creds, Address: address, Amount: amount}
	if err := c.validate(MethodSendCoins, p); err != nil {
		return err
	}
	if !amount.Equal(amount.Round(amountPlaces)) {
		return c.invalid(MethodSendCoins, FieldError{Field: "amount", Rule: "max_places"})
	}

	params := creds.values()
	params.Set("address", address)
	params.Set("amount", FormatAmount(amount))

	return c.Call(ctx, MethodSendCoins, params, nil)
}

// ImportPrivateKey imports a private key into the hosted account.
//
// Deprecated: the key leaves the local machine. Generate addresses on the server instead.
func (c *Client) ImportPrivateKey(ctx context.Context, creds Credentials, privateKey, address string) error {
	p := importKeyParams{Credentials: creds, PrivateKey: privateKey, Address: address}
	if err := c.validate(MethodImportPrivateKey, p); err != nil {
		return err
	}

	params := creds.values()
	params.Set("privkey", privateKey)
	params.Set("address", address)

	return c.Call(ctx, MethodImportPrivateKey, params, nil)
}

// ChangePassword changes the account password. An empty confirmPassword is treated as equal to newPassword.
// It returns the credentials to use from now on.
func (c *Client) ChangePassword(ctx context.Context, creds Credentials, newPassword, confirmPassword string) (Credentials, error) {
	if confirmPassword == "" {
		confirmPassword = newPassword
	}

	p := changePasswordParams{
		Credentials:         creds,
		NewPasswordHash:     hashIfSet(newPassword),
		ConfirmPasswordHash: hashIfSet(confirmPassword),
	}
	if err := c.validate(MethodChangePassword, p); err != nil {
		return creds, err
	}

	params := creds.values()
	params.Set("new_password", p.NewPasswordHash)
	params.Set("confirm_password", p.ConfirmPasswordHash)

	if err := c.Call(ctx, MethodChangePassword, params, nil); err != nil {
		return creds, err
	}
	return Credentials{Username: creds.Username, PasswordHash: p.NewPasswordHash}, nil
}

// ChangeEmail changes the email address of the account
func (c *Client) ChangeEmail(ctx context.Context, creds Credentials, email string) error {
	p := changeEmailParams{Credentials: creds, Email: email}
	if err := c.validate(MethodChangeEmail, p); err != nil {
		return err
	}

	params := creds.values()
	params.Set("email", email)

	return c.Call(ctx, MethodChangeEmail, params, nil)
}

// hashIfSet keeps empty passwords empty so validation reports them as missing
func hashIfSet(password string) string {
	if password == "" {
		return ""
	}
	return HashPassword(password)
}
