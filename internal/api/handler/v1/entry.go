package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mysticpicks/picks-api/internal/api/handler/v1/request"
	"github.com/mysticpicks/picks-api/internal/api/handler/v1/response"
	"github.com/mysticpicks/picks-api/internal/domain"
	"github.com/mysticpicks/picks-api/internal/lottery"
	"github.com/mysticpicks/picks-api/internal/service"
)

type EntryService interface {
	CreateEntry(ctx context.Context, in service.NewEntry) (domain.Entry, error)
	ListEntries(ctx context.Context, limit int, game string) ([]domain.Entry, string, error)
	ListAllEntries(ctx context.Context) ([]domain.Entry, error)
	GetEntry(ctx context.Context, id string) (domain.Entry, error)
	SetPlayed(ctx context.Context, id string, played bool) (domain.Entry, error)
}

type EntryHandler struct {
	svc EntryService
}

func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

// HandleCreateEntry godoc
// @Summary      Store a pick
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEntryRequest  true  "request body"
// @Success      201      {object}  response.CreateEntryResponse
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /entries [post]
func (h *EntryHandler) HandleCreateEntry(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.RenderErr(ctx, response.ErrInvalidJSON(err))
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}

	var req request.CreateEntryRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		response.RenderErr(ctx, response.ErrInvalidJSON(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, err := h.svc.CreateEntry(ctx.Request.Context(), service.NewEntry{
		Game:     req.Game,
		Picks:    req.PickList(),
		PickedAt: req.PickedAt,
		Played:   req.IsPlayed(),
		Meta:     requestMeta(ctx),
	})
	if err != nil {
		renderServiceErr(ctx, "", fmt.Errorf("v1.HandleCreateEntry -> h.svc.CreateEntry -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, response.CreateEntryResponse{
		OK:       true,
		ID:       entry.ID,
		Key:      entry.ID,
		PickedAt: entry.PickedAt,
	})
}

// HandleListEntries godoc
// @Summary      List recent picks
// @Description  Newest first. An unknown game value lists every game.
// @Tags         entries
// @Produce      json
// @Param        limit  query     int     false  "page size, 1 to 100"  default(10)
// @Param        game   query     string  false  "fantasy5 or superlotto"
// @Success      200    {object}  response.ListEntriesResponse
// @Failure      500    {object}  response.Err
// @Router       /entries [get]
func (h *EntryHandler) HandleListEntries(ctx *gin.Context) {
	limit := parseLimit(ctx.Query("limit"), ctx.Request.URL.Query().Has("limit"))

	game := ctx.Query("game")
	if game == "" {
		game = ctx.Query("Game")
	}

	items, filter, err := h.svc.ListEntries(ctx.Request.Context(), limit, game)
	if err != nil {
		renderServiceErr(ctx, "", fmt.Errorf("v1.HandleListEntries -> h.svc.ListEntries -> %w", err))
		return
	}

	var gameFilter *string
	if filter != "" {
		gameFilter = &filter
	}

	ctx.JSON(http.StatusOK, response.ListEntriesResponse{
		Items:      response.NewEntries(items, false),
		Count:      len(items),
		GameFilter: gameFilter,
	})
}

// HandleListAllEntries godoc
// @Summary      List every stored pick
// @Tags         entries
// @Produce      json
// @Success      200  {object}  response.ListAllEntriesResponse
// @Failure      500  {object}  response.Err
// @Router       /endpoints [get]
func (h *EntryHandler) HandleListAllEntries(ctx *gin.Context) {
	items, err := h.svc.ListAllEntries(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "", fmt.Errorf("v1.HandleListAllEntries -> h.svc.ListAllEntries -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.ListAllEntriesResponse{
		Items: response.NewEntries(items, true),
		Count: len(items),
	})
}

// HandleGetEntry godoc
// @Summary      Get one pick
// @Tags         entries
// @Produce      json
// @Param        id   path      string  true  "entry id"
// @Success      200  {object}  response.GetEntryResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /entries/{id} [get]
func (h *EntryHandler) HandleGetEntry(ctx *gin.Context) {
	id := ctx.Param("id")

	entry, err := h.svc.GetEntry(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, id, fmt.Errorf("v1.HandleGetEntry -> h.svc.GetEntry -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.GetEntryResponse{
		Item: response.NewEntry(entry, true),
	})
}

// HandleSetPlayed godoc
// @Summary      Mark a pick as played or not played
// @Tags         entries
// @Produce      json
// @Param        id      path      string  true  "entry id"
// @Param        played  path      string  true  "true or false"  Enums(true, false)
// @Success      200     {object}  response.SetPlayedResponse
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /entries/{id}/played/{played} [put]
func (h *EntryHandler) HandleSetPlayed(ctx *gin.Context) {
	var played bool
	switch ctx.Param("played") {
	case "true":
		played = true
	case "false":
	default:
		HandleNoRoute(ctx)
		return
	}

	id := ctx.Param("id")
	entry, err := h.svc.SetPlayed(ctx.Request.Context(), id, played)
	if err != nil {
		renderServiceErr(ctx, id, fmt.Errorf("v1.HandleSetPlayed -> h.svc.SetPlayed -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.SetPlayedResponse{
		OK:       true,
		ID:       entry.ID,
		Key:      entry.ID,
		Played:   entry.Played,
		PlayedAt: entry.PlayedAt,
	})
}

// HandleNoRoute answers requests that match no route.
func HandleNoRoute(ctx *gin.Context) {
	response.RenderErr(ctx, response.ErrRouteNotFound(ctx.Request.URL.Path))
}

// HandleHealthcheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func renderServiceErr(ctx *gin.Context, id string, err error) {
	var vErr *lottery.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.RenderErr(ctx, response.ErrBadRequest(vErr))
	case errors.Is(err, service.ErrEntryNotFound):
		response.RenderErr(ctx, response.ErrNotFound("entry", id))
	case errors.Is(err, service.ErrWriteConflict):
		response.RenderErr(ctx, response.ErrConflict(service.ErrWriteConflict))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// parseLimit reads the limit query value. Absent means the default page
// size. Otherwise the leading integer is used, so "5abc" and "5.9" read as
// 5; a value with no leading digits clamps to the smallest page.
func parseLimit(raw string, present bool) int {
	if !present {
		return service.DefaultListLimit
	}

	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Too many digits for an int; the sign decides which bound applies.
		if s[0] == '-' {
			return 1
		}
		return service.MaxListLimit
	}
	return service.ClampLimit(n)
}

// requestMeta records where a submission came from. The first
// X-Forwarded-For hop wins over the peer address.
func requestMeta(ctx *gin.Context) *domain.Meta {
	meta := &domain.Meta{
		UserAgent: ctx.Request.UserAgent(),
	}

	if xff := ctx.GetHeader("X-Forwarded-For"); xff != "" {
		meta.SourceIP = strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if meta.SourceIP == "" {
		meta.SourceIP = ctx.RemoteIP()
	}

	if *meta == (domain.Meta{}) {
		return nil
	}
	return meta
}
