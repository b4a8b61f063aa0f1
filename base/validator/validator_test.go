package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "valid address - real address",
			address:    "0xd8dA6BF26964aF9D7eEd9e10e5D9ba0F5EBc3EE6",
			expIsValid: true,
		},
		{
			desc:       "valid address - lower case",
			address:    "0xd8da6bf26964af9d7eed9e10e5d9ba0f5ebc3ee6",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func (s *ValidatorTestSuite) TestCustomTags() {
	type body struct {
		Data   string `validate:"required,hexdata"`
		Sender string `validate:"omitempty,address"`
	}
	v := NewCustomValidator(New())

	s.NoError(v.Validate(&body{Data: "0x556f1830"}))
	s.NoError(v.Validate(&body{Data: "0x", Sender: "0xd8da6bf26964af9d7eed9e10e5d9ba0f5ebc3ee6"}))
	s.Error(v.Validate(&body{Data: "556f1830"}))
	s.Error(v.Validate(&body{Data: "0x556"}))
	s.Error(v.Validate(&body{Data: "0x00", Sender: "0x1234"}))
	s.Error(v.Validate(&body{}))
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
