// Package ccip implements the client side data structures of EIP-3668
// (CCIP-Read): the OffchainLookup revert payload and the gateway request
// and response format.
package ccip

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/base/abi"
	"github.com/x-xyz/ensapi/domain"
)

// Selector is bytes4(keccak256("OffchainLookup(address,string[],bytes,bytes4,bytes)"))
var Selector = [4]byte{0x55, 0x6f, 0x18, 0x30}

var offchainLookupFields = []abi.FieldSpec{
	{Name: "sender", Type: "address"},
	{Name: "urls", Type: "string[]"},
	{Name: "callData", Type: "bytes"},
	{Name: "callbackFunction", Type: "bytes4"},
	{Name: "extraData", Type: "bytes"},
}

// OffchainLookup tells the client which gateways to ask (Urls), what to send
// (CallData) and how to hand the answer back (CallbackFunction on Sender,
// together with ExtraData).
type OffchainLookup struct {
	Sender           common.Address
	Urls             []string
	CallData         []byte
	CallbackFunction [4]byte
	ExtraData        []byte
}

// Equal compares all five fields by value.
func (l *OffchainLookup) Equal(o *OffchainLookup) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.Sender != o.Sender || l.CallbackFunction != o.CallbackFunction {
		return false
	}
	if len(l.Urls) != len(o.Urls) {
		return false
	}
	for i := range l.Urls {
		if l.Urls[i] != o.Urls[i] {
			return false
		}
	}
	return bytes.Equal(l.CallData, o.CallData) && bytes.Equal(l.ExtraData, o.ExtraData)
}

// MatchesSelector reports whether revertData starts with the OffchainLookup
// error selector.
func MatchesSelector(revertData []byte) bool {
	return len(revertData) >= len(Selector) && bytes.Equal(revertData[:len(Selector)], Selector[:])
}

// Decode decodes the abi tuple body of an OffchainLookup error, i.e. the
// revert data with the selector already removed.
func Decode(body []byte) (*OffchainLookup, error) {
	values, err := abi.DecodeTuple(body, offchainLookupFields)
	if err != nil {
		return nil, err
	}
	if err := checkPadding(body); err != nil {
		return nil, err
	}

	sender, ok1 := values[0].(common.Address)
	urls, ok2 := values[1].([]string)
	callData, ok3 := values[2].([]byte)
	callback, ok4 := values[3].([4]byte)
	extraData, ok5 := values[4].([]byte)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return nil, xerrors.Errorf("unexpected offchain lookup field types: %w", domain.ErrDecode)
	}

	return &OffchainLookup{
		Sender:           sender,
		Urls:             urls,
		CallData:         callData,
		CallbackFunction: callback,
		ExtraData:        extraData,
	}, nil
}

// ParseRevert checks the selector of revertData and decodes the rest.
func ParseRevert(revertData []byte) (*OffchainLookup, error) {
	if !MatchesSelector(revertData) {
		return nil, xerrors.Errorf("not an offchain lookup revert: %w", domain.ErrDecode)
	}
	return Decode(revertData[len(Selector):])
}

// Encode returns the revert data a contract would produce for l, selector
// included.
func Encode(l *OffchainLookup) ([]byte, error) {
	urls := l.Urls
	if urls == nil {
		urls = []string{}
	}
	body, err := abi.EncodeTuple(offchainLookupFields, l.Sender, urls, nonNil(l.CallData), l.CallbackFunction, nonNil(l.ExtraData))
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, Selector[:]...), body...), nil
}

// head words of the tuple holding static values
const (
	wordSize     = 32
	senderWord   = 0
	callbackWord = 3
)

// checkPadding rejects a sender word with non-zero high bytes and a bytes4
// word with non-zero low bytes. body must already have decoded.
func checkPadding(body []byte) error {
	sender := body[senderWord*wordSize : senderWord*wordSize+wordSize]
	if !isZero(sender[:wordSize-common.AddressLength]) {
		return xerrors.Errorf("dirty address padding: %w", domain.ErrDecode)
	}
	callback := body[callbackWord*wordSize : callbackWord*wordSize+wordSize]
	if !isZero(callback[len(Selector):]) {
		return xerrors.Errorf("dirty bytes4 padding: %w", domain.ErrDecode)
	}
	return nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
