package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/domain"
)

// FieldSpec describes one member of an abi encoded tuple, e.g. {"urls", "string[]"}
type FieldSpec struct {
	Name string
	Type string
}

// NewArguments builds the go-ethereum argument list for a set of fields.
func NewArguments(fields []FieldSpec) (abi.Arguments, error) {
	args := make(abi.Arguments, 0, len(fields))
	for _, f := range fields {
		t, err := abi.NewType(f.Type, "", nil)
		if err != nil {
			return nil, xerrors.Errorf("field %s: %w", f.Name, err)
		}
		args = append(args, abi.Argument{Name: f.Name, Type: t})
	}
	return args, nil
}

// MustNewArguments is NewArguments for package level declarations.
func MustNewArguments(fields []FieldSpec) abi.Arguments {
	args, err := NewArguments(fields)
	if err != nil {
		panic(err)
	}
	return args
}

// DecodeTuple decodes data as the tuple described by fields and returns one
// value per field in declared order. Either every field decodes or
// domain.ErrDecode is returned.
func DecodeTuple(data []byte, fields []FieldSpec) ([]interface{}, error) {
	args, err := NewArguments(fields)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, domain.ErrDecode)
	}
	return Unpack(args, data)
}

// Unpack runs args.Unpack, turning errors and panics from malformed input
// into domain.ErrDecode.
func Unpack(args abi.Arguments, data []byte) (values []interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = xerrors.Errorf("unpack panicked: %v: %w", r, domain.ErrDecode)
		}
	}()

	values, err = args.Unpack(data)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, domain.ErrDecode)
	}
	if len(values) != len(args) {
		return nil, xerrors.Errorf("expected %d values, got %d: %w", len(args), len(values), domain.ErrDecode)
	}
	return values, nil
}

// EncodeTuple is the inverse of DecodeTuple.
func EncodeTuple(fields []FieldSpec, values ...interface{}) ([]byte, error) {
	if len(fields) != len(values) {
		return nil, fmt.Errorf("expected %d values, got %d", len(fields), len(values))
	}
	args, err := NewArguments(fields)
	if err != nil {
		return nil, err
	}
	return args.Pack(values...)
}
