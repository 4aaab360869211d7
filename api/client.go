package api

// API Client-
//
// Files:
//   config.go    - Omnicha.in endpoint, API method names, known error codes
//   types.go     - Response records (Info, Address, Transaction, RichListEntry, ...)
//   base.go      - Core client functionality (Client struct, NewClient, Call)
//   options.go   - Functional options for NewClient
//   errors.go    - APIError, StatusError, ValidationError and sentinels
//   address.go   - Local Omnicoin address validation
//   params.go    - Request parameter structs and validation
//   public.go    - Unauthenticated endpoints (getinfo, getbalance, getrichlist, ...)
//   account.go   - Account endpoints (wallet_register, wallet_send, ...)
//
// Usage:
//   client := api.NewClient(api.WithTimeout(10 * time.Second))
//   info, err := client.GetInfo(ctx)                              // from public.go
//   creds := api.NewCredentials("alice", "hunter22")
//   walletInfo, err := client.GetWalletInfo(ctx, creds)           // from account.go
//   err = client.SendCoins(ctx, creds, "oGxg7S7...", amount)      // from account.go
