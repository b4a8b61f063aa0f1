package http

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/base/ccip"
	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/base/delivery"
	bens "github.com/x-xyz/ensapi/base/ens"
	"github.com/x-xyz/ensapi/domain"
	mmiddleware "github.com/x-xyz/ensapi/middleware"
	"github.com/x-xyz/ensapi/service/ens"
)

type handler struct {
	ens ens.ENS
}

// NameHashResult is returned by GET /ens/namehash/:name
type NameHashResult struct {
	Name       string `json:"name"`
	Normalized string `json:"normalized"`
	NameHash   string `json:"namehash"`
	LabelHash  string `json:"labelhash,omitempty"`
}

// OffchainLookupResult is the hex rendering of a decoded OffchainLookup
type OffchainLookupResult struct {
	Sender           domain.Address `json:"sender"`
	Urls             []string       `json:"urls"`
	CallData         string         `json:"callData"`
	CallbackFunction string         `json:"callbackFunction"`
	ExtraData        string         `json:"extraData"`
}

func New(e *echo.Echo, ens ens.ENS, pure ...echo.MiddlewareFunc) {
	h := &handler{
		ens,
	}

	g := e.Group("ens")

	g.GET("/resolve/:name", h.Resolve)
	g.POST("/resolve", h.BatchResolve)

	g.GET("/reverse-resolve/:address", h.ReverseResolve, mmiddleware.IsValidAddress("address"))

	// results below only depend on the request
	g.GET("/namehash/:name", h.NameHash, pure...)
	g.GET("/dns-encode/:name", h.DNSEncode, pure...)
	g.GET("/registry/:chainId", h.Registry, pure...)
	g.POST("/offchain-lookup", h.DecodeOffchainLookup)
}

func (h *handler) Resolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name string `param:"name" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	address, err := h.ens.Resolve(ctx, p.Name)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, address)
}

func (h *handler) BatchResolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Names []string `json:"names" validate:"required,min=1,max=100,dive,required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.ens.BatchResolve(ctx, p.Names)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) ReverseResolve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Address domain.Address `param:"address" validate:"required"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	name, err := h.ens.ReverseResolve(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, name)
}

func (h *handler) NameHash(c echo.Context) error {
	name := c.Param("name")

	normalized, err := bens.Normalize(name)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	node, err := bens.NameHash(normalized)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res := NameHashResult{
		Name:       name,
		Normalized: normalized,
		NameHash:   node.Hex(),
	}
	if normalized != "" {
		label := normalized
		if parent, ok := bens.Parent(normalized); ok {
			label = normalized[:len(normalized)-len(parent)-1]
		}
		res.LabelHash = bens.LabelHash(label).Hex()
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) DNSEncode(c echo.Context) error {
	b, err := bens.DNSEncode(c.Param("name"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, hexutil.Encode(b))
}

func (h *handler) Registry(c echo.Context) error {
	chainId, err := strconv.ParseUint(c.Param("chainId"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, xerrors.Errorf("chainId %q: %w", c.Param("chainId"), domain.ErrBadParamInput))
	}

	addr, err := bens.RegistryAddress(domain.ChainId(chainId))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, addr.Hex())
}

func (h *handler) DecodeOffchainLookup(c echo.Context) error {
	type payload struct {
		Data string `json:"data" validate:"required,hexdata"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	lookup, err := ccip.ParseRevert(hexutil.MustDecode(p.Data))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, OffchainLookupResult{
		Sender:           domain.Address(lookup.Sender.Hex()).ToLower(),
		Urls:             lookup.Urls,
		CallData:         hexutil.Encode(lookup.CallData),
		CallbackFunction: hexutil.Encode(lookup.CallbackFunction[:]),
		ExtraData:        hexutil.Encode(lookup.ExtraData),
	})
}
