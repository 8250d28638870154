package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/alakaboom20/MetaLand-Deeds/internal/app/history"
	"github.com/alakaboom20/MetaLand-Deeds/internal/app/registry"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const callerHeader = "X-Caller"

type Handler struct {
	Registry  registry.Registry
	HistoryUC history.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	reg := s.Group("/api/registry")
	reg.POST("/authority", h.setAuthority)
	reg.POST("/mint-fee", h.setMintFee)
	reg.POST("/max-deeds", h.setMaxDeeds)
	reg.GET("/settings", h.settings)
	reg.GET("/fees", h.fees)
	reg.GET("/deed-count", h.deedCount)
	reg.GET("/coordinates", h.coordinates)

	deeds := s.Group("/api/deeds")
	deeds.POST("", h.mint)
	deeds.GET("/:id", h.getDeed)
	deeds.GET("/:id/owner", h.getOwner)
	deeds.GET("/:id/update", h.getUpdate)
	deeds.GET("/:id/history", h.history)
	deeds.POST("/:id/transfer", h.transfer)
	deeds.POST("/:id/update", h.update)
	deeds.DELETE("/:id", h.burn)

	s.GET("/api/owners/:owner/deeds", h.listByOwner)
	s.GET("/ops/kpi", h.kpi)
}

type authorityRequest struct {
	Principal string `json:"principal"`
}

type mintFeeRequest struct {
	Fee uint64 `json:"fee"`
}

type maxDeedsRequest struct {
	MaxDeeds uint64 `json:"max_deeds"`
}

type transferRequest struct {
	NewOwner string `json:"new_owner"`
}

type updateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Attributes  string `json:"attributes"`
}

type coordinatesResponse struct {
	Exists bool   `json:"exists"`
	DeedID uint64 `json:"deed_id,omitempty"`
}

func (h Handler) setAuthority(c context.Context, ctx *app.RequestContext) {
	var body authorityRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", 0, "invalid json")
		return
	}
	if err := h.Registry.SetAuthorityContract(c, body.Principal); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) setMintFee(c context.Context, ctx *app.RequestContext) {
	var body mintFeeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", 0, "invalid json")
		return
	}
	if err := h.Registry.SetMintFee(c, body.Fee); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) setMaxDeeds(c context.Context, ctx *app.RequestContext) {
	var body maxDeedsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", 0, "invalid json")
		return
	}
	if err := h.Registry.SetMaxDeeds(c, body.MaxDeeds); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) settings(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Registry.Settings(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) fees(c context.Context, ctx *app.RequestContext) {
	resp, err := h.Registry.FeeTransfers(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"fee_transfers": resp})
}

func (h Handler) deedCount(c context.Context, ctx *app.RequestContext) {
	count, err := h.Registry.GetDeedCount(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"count": count})
}

func (h Handler) coordinates(c context.Context, ctx *app.RequestContext) {
	metaverseID := string(ctx.Query("metaverse_id"))
	coords := string(ctx.Query("coordinates"))
	id, err := h.Registry.GetDeedIDByCoordinates(c, metaverseID, coords)
	if errors.Is(err, deed.ErrDeedNotFound) {
		ctx.JSON(consts.StatusOK, coordinatesResponse{Exists: false})
		return
	}
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, coordinatesResponse{Exists: true, DeedID: id})
}

func (h Handler) mint(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body deed.Params
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", 0, "invalid json")
		return
	}
	id, err := h.Registry.MintDeed(c, registry.MintRequest{Caller: caller, Params: body})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, map[string]any{"deed_id": id})
}

func (h Handler) getDeed(c context.Context, ctx *app.RequestContext) {
	id, err := deedIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.Registry.GetDeed(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getOwner(c context.Context, ctx *app.RequestContext) {
	id, err := deedIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	owner, err := h.Registry.GetDeedOwner(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"deed_id": id, "owner": owner})
}

func (h Handler) getUpdate(c context.Context, ctx *app.RequestContext) {
	id, err := deedIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.Registry.GetDeedUpdate(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	id, err := deedIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.HistoryUC.Execute(c, history.Request{DeedID: id, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) transfer(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	id, err := deedIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body transferRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", 0, "invalid json")
		return
	}
	if err := h.Registry.TransferDeed(c, registry.TransferRequest{Caller: caller, DeedID: id, NewOwner: body.NewOwner}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) update(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	id, err := deedIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body updateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", 0, "invalid json")
		return
	}
	if err := h.Registry.UpdateDeed(c, registry.UpdateRequest{
		Caller:      caller,
		DeedID:      id,
		Title:       body.Title,
		Description: body.Description,
		Attributes:  body.Attributes,
	}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) burn(c context.Context, ctx *app.RequestContext) {
	caller, err := requireCaller(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	id, err := deedIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.Registry.BurnDeed(c, registry.BurnRequest{Caller: caller, DeedID: id}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) listByOwner(c context.Context, ctx *app.RequestContext) {
	owner := string(ctx.Param("owner"))
	resp, err := h.Registry.ListDeedsByOwner(c, owner)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"owner": owner, "deeds": resp})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", 0, "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingCallerHeader = errors.New("missing x-caller header")
var ErrInvalidDeedID = errors.New("deed id must be a positive integer")

func requireCaller(ctx *app.RequestContext) (string, error) {
	caller := strings.TrimSpace(string(ctx.GetHeader(callerHeader)))
	if caller == "" {
		return "", ErrMissingCallerHeader
	}
	return caller, nil
}

func deedIDParam(ctx *app.RequestContext) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidDeedID
	}
	return id, nil
}

func writeError(ctx *app.RequestContext, err error) {
	if code, ok := deed.CodeOf(err); ok {
		writeErrorBody(ctx, statusForCode(code), code.String(), uint32(code), err.Error())
		return
	}
	switch {
	case errors.Is(err, ErrMissingCallerHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_caller", 0, err.Error())
	case errors.Is(err, ErrInvalidDeedID):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_deed_id", 0, err.Error())
	case errors.Is(err, registry.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", 0, err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", 0, "internal error")
	}
}

func statusForCode(code deed.Code) int {
	switch code {
	case deed.CodeDeedNotFound:
		return consts.StatusNotFound
	case deed.CodeNotAuthorized:
		return consts.StatusForbidden
	case deed.CodeDeedAlreadyExists, deed.CodeMaxDeedsExceeded:
		return consts.StatusConflict
	case deed.CodeAuthorityNotVerified:
		return consts.StatusPreconditionFailed
	case deed.CodeInvalidMetaverseID, deed.CodeInvalidCoordinates, deed.CodeInvalidTitle,
		deed.CodeInvalidDescription, deed.CodeInvalidAttributes, deed.CodeInvalidUpdateParam,
		deed.CodeInvalidLocation, deed.CodeInvalidDimensions, deed.CodeInvalidValue,
		deed.CodeInvalidRoyaltyRate, deed.CodeInvalidGracePeriod:
		return consts.StatusBadRequest
	default:
		// Codes raised by the land verifier.
		return consts.StatusUnprocessableEntity
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code string, value uint32, message string) {
	body := map[string]any{
		"code":    code,
		"message": message,
	}
	if value > 0 {
		body["value"] = value
	}
	ctx.JSON(status, map[string]any{"error": body})
}
