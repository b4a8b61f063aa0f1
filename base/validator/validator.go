package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// IsHexData reports whether s is 0x prefixed hex with an even number of digits
func IsHexData(s string) bool {
	_, err := hexutil.Decode(s)
	return err == nil
}

// New returns a validator with the custom tags used by request bodies:
//
//	hexdata - 0x prefixed even length hex string
//	address - hex encoded ethereum address
func New() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("hexdata", func(fl validator.FieldLevel) bool {
		return IsHexData(fl.Field().String())
	})
	v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
