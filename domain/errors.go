package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput  = errors.New("Given Param is not valid")
	ErrInvalidAddress = errors.New("Invalid address")

	// ErrInvalidName is returned when a name cannot be normalized or encoded
	ErrInvalidName = errors.New("invalid ens name")
	// ErrUnsupportedChain is returned when there is no ens registry for a chain id
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrDecode is returned for malformed abi payloads or selector mismatches
	ErrDecode = errors.New("decode error")

	ErrNestedLookup     = errors.New("offchain lookup raised inside nested call")
	ErrLookupLimit      = errors.New("offchain lookup limit exceeded")
	ErrNoGateway        = errors.New("ccip read disabled or provided no urls")
	ErrGatewayRejected  = errors.New("gateway rejected request")
	ErrGatewayExhausted = errors.New("all gateways failed")
)
