package ens

import (
	"errors"

	"github.com/ethereum/go-ethereum"
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/base/abi"
	"github.com/x-xyz/ensapi/base/ccip"
	"github.com/x-xyz/ensapi/base/ctx"
	bens "github.com/x-xyz/ensapi/base/ens"
	"github.com/x-xyz/ensapi/base/log"
	"github.com/x-xyz/ensapi/domain"
	"github.com/x-xyz/ensapi/domain/keys"
)

// callbackFields is the argument list of a CCIP-Read callback such as
// resolveWithProof(bytes response, bytes extraData)
var callbackFields = []abi.FieldSpec{
	{Name: "response", Type: "bytes"},
	{Name: "extraData", Type: "bytes"},
}

func (im *impl) call(c ctx.Ctx, to common.Address, data []byte) ([]byte, error) {
	return im.caller.CallContract(c, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// revertData extracts the revert payload carried by an eth_call error
func revertData(err error) ([]byte, bool) {
	var de rpc.DataError
	if !errors.As(err, &de) {
		return nil, false
	}
	s, ok := de.ErrorData().(string)
	if !ok {
		return nil, false
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

// resolverOf asks the registry for the resolver of name, walking up to the
// parent names until one has a resolver set.
func (im *impl) resolverOf(c ctx.Ctx, name string) (common.Address, error) {
	for n, ok := name, true; ok; n, ok = bens.Parent(n) {
		node, err := bens.NameHash(n)
		if err != nil {
			return common.Address{}, err
		}

		data, err := abi.RegistryABI.Pack("resolver", [32]byte(node))
		if err != nil {
			return common.Address{}, err
		}
		out, err := im.call(c, im.registry, data)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "node": node.Hex()}).Error("registry.resolver failed")
			return common.Address{}, err
		}
		if len(out) == 0 {
			continue
		}

		resolver, err := unpackAddress(abi.RegistryABI.Methods["resolver"].Outputs, out)
		if err != nil {
			return common.Address{}, err
		}
		if resolver != (common.Address{}) {
			return resolver, nil
		}
	}
	return common.Address{}, xerrors.Errorf("no resolver for %s: %w", name, domain.ErrNotFound)
}

// supportsWildcard reports ENSIP-10 support of a resolver. Failed calls count
// as unsupported.
func (im *impl) supportsWildcard(c ctx.Ctx, resolver common.Address) bool {
	res := false
	key := keys.RedisKey(im.chainKey, "wildcard", resolver.Hex())
	err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		data, err := abi.ResolverABI.Pack("supportsInterface", [4]byte(bens.InterfaceWildcard))
		if err != nil {
			return nil, err
		}
		out, err := im.call(c, resolver, data)
		if err != nil {
			return nil, err
		}
		vals, err := abi.Unpack(abi.ResolverABI.Methods["supportsInterface"].Outputs, out)
		if err != nil {
			return nil, err
		}
		supported, _ := vals[0].(bool)
		return &supported, nil
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "resolver": resolver.Hex()}).Warn("supportsInterface failed")
		return false
	}
	return res
}

// callWithLookups performs an eth_call and follows CCIP-Read OffchainLookup
// reverts raised by the target itself, up to the configured limit.
func (im *impl) callWithLookups(c ctx.Ctx, to common.Address, data []byte) ([]byte, error) {
	out, callErr := im.call(c, to, data)
	for lookups := 0; callErr != nil; lookups++ {
		rd, ok := revertData(callErr)
		if !ok || !ccip.MatchesSelector(rd) {
			return nil, callErr
		}
		if lookups >= im.cfg.LookupLimit {
			return nil, domain.ErrLookupLimit
		}

		lookup, err := ccip.ParseRevert(rd)
		if err != nil {
			c.WithField("err", err).Error("ccip.ParseRevert failed")
			return nil, err
		}
		if lookup.Sender != to {
			return nil, domain.ErrNestedLookup
		}

		response, err := im.fetcher.Fetch(c, lookup)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "urls": lookup.Urls}).Error("fetcher.Fetch failed")
			return nil, err
		}

		args, err := abi.EncodeTuple(callbackFields, response, nonNil(lookup.ExtraData))
		if err != nil {
			return nil, err
		}
		callback := append(append([]byte{}, lookup.CallbackFunction[:]...), args...)
		out, callErr = im.call(c, to, callback)
	}
	return out, nil
}

func unpackAddress(outputs gethabi.Arguments, out []byte) (common.Address, error) {
	vals, err := abi.Unpack(outputs, out)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := vals[0].(common.Address)
	if !ok {
		return common.Address{}, xerrors.Errorf("unexpected address type %T: %w", vals[0], domain.ErrDecode)
	}
	return addr, nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
