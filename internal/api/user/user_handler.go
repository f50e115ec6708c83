package user

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/FACorreiaa/go-account-console/internal/api"
	"github.com/FACorreiaa/go-account-console/internal/api/auth"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	DeleteUsers(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService   UserService
	validate      *validator.Validate
	logger        *slog.Logger
	exposeDetails bool
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, exposeDetails bool, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("user handler requires a logger")
	}
	return &HandlerImpl{
		userService:   userService,
		validate:      api.NewValidator(),
		logger:        logger,
		exposeDetails: exposeDetails,
	}
}

// ListUsers godoc
// @Summary      List Users
// @Description  Returns every account, most recent login first and never-logged-in accounts last.
// @Tags         Users
// @Produce      json
// @Success      200 {array} types.User
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /users [get]
func (h *HandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "ListUsers"))

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.InternalErrorResponse(w, r, "Failed to retrieve users", err, h.exposeDetails)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, users)
}

// UpdateStatus godoc
// @Summary      Bulk Update Status
// @Description  Blocks or activates every selected account. Ids that do not exist are skipped.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body body types.UpdateStatusRequest true "Selection and target status"
// @Success      200 {object} types.BulkActionResponse
// @Failure      400 {object} types.Response "Invalid selection or status"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /users/status [put]
func (h *HandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "UpdateStatus"))
	if principal, ok := auth.GetPrincipal(ctx); ok {
		l = l.With(slog.String("actorID", principal.ID.String()))
	}

	var req types.UpdateStatusRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid status body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(h.validate, req); err != nil {
		h.writeInputError(w, r, err)
		return
	}

	status, err := types.ParseUserStatus(req.Status)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, types.ErrInvalidStatus.Error())
		return
	}
	ids, err := parseIDs(req.UserIDs)
	if err != nil {
		h.writeInputError(w, r, err)
		return
	}

	affected, err := h.userService.SetStatus(ctx, ids, status)
	if err != nil {
		if errors.Is(err, types.ErrEmptySelection) || errors.Is(err, types.ErrInvalidStatus) {
			h.writeInputError(w, r, err)
			return
		}
		l.ErrorContext(ctx, "Failed to update user status", slog.Any("error", err))
		api.InternalErrorResponse(w, r, "Failed to update user status", err, h.exposeDetails)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.BulkActionResponse{
		Success:  true,
		Message:  statusMessage(status),
		Affected: affected,
	})
}

// DeleteUsers godoc
// @Summary      Bulk Delete
// @Description  Permanently removes every selected account. Ids that do not exist are skipped.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body body types.DeleteUsersRequest true "Selection"
// @Success      200 {object} types.BulkActionResponse
// @Failure      400 {object} types.Response "Invalid selection"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /users [delete]
func (h *HandlerImpl) DeleteUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "DeleteUsers"))
	if principal, ok := auth.GetPrincipal(ctx); ok {
		l = l.With(slog.String("actorID", principal.ID.String()))
	}

	var req types.DeleteUsersRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid delete body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(h.validate, req); err != nil {
		h.writeInputError(w, r, err)
		return
	}
	ids, err := parseIDs(req.UserIDs)
	if err != nil {
		h.writeInputError(w, r, err)
		return
	}

	affected, err := h.userService.DeleteUsers(ctx, ids)
	if err != nil {
		if errors.Is(err, types.ErrEmptySelection) {
			h.writeInputError(w, r, err)
			return
		}
		l.ErrorContext(ctx, "Failed to delete users", slog.Any("error", err))
		api.InternalErrorResponse(w, r, "Failed to delete users", err, h.exposeDetails)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.BulkActionResponse{
		Success:  true,
		Message:  "Users deleted successfully",
		Affected: affected,
	})
}

func (h *HandlerImpl) writeInputError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs types.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		api.ValidationErrorResponse(w, r, verrs)
	case errors.Is(err, types.ErrEmptySelection):
		api.ErrorResponse(w, r, http.StatusBadRequest, types.ErrEmptySelection.Error())
	case errors.Is(err, types.ErrInvalidStatus):
		api.ErrorResponse(w, r, http.StatusBadRequest, types.ErrInvalidStatus.Error())
	default:
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
	}
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func statusMessage(status types.UserStatus) string {
	if status == types.StatusBlocked {
		return "Users blocked successfully"
	}
	return "Users activated successfully"
}
