package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-account-console/app/observability/metrics"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the moderation contract used by the console.
type UserService interface {
	ListUsers(ctx context.Context) ([]types.User, error)
	// SetStatus applies status to every id in the selection. Unknown ids are skipped.
	SetStatus(ctx context.Context, userIDs []uuid.UUID, status types.UserStatus) (int64, error)
	// DeleteUsers permanently removes every id in the selection. Unknown ids are skipped.
	DeleteUsers(ctx context.Context, userIDs []uuid.UUID) (int64, error)
}

// UserServiceImpl provides the implementation for UserService.
type UserServiceImpl struct {
	logger  *slog.Logger
	repo    UserRepo
	metrics *metrics.AppMetrics
}

// NewUserService creates a new user service instance.
func NewUserService(repo UserRepo, appMetrics *metrics.AppMetrics, logger *slog.Logger) *UserServiceImpl {
	if appMetrics == nil {
		appMetrics = metrics.NewNoop()
	}
	return &UserServiceImpl{
		logger:  logger,
		repo:    repo,
		metrics: appMetrics,
	}
}

// ListUsers returns every account, recent logins first.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]types.User, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "ListUsers")
	defer span.End()

	l := s.logger.With(slog.String("method", "ListUsers"))
	l.DebugContext(ctx, "Listing users")

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository list failed")
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	span.SetAttributes(attribute.Int("users.count", len(users)))
	span.SetStatus(codes.Ok, "Users listed")
	return users, nil
}

func (s *UserServiceImpl) SetStatus(ctx context.Context, userIDs []uuid.UUID, status types.UserStatus) (int64, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "SetStatus", trace.WithAttributes(
		attribute.String("user.status", string(status)),
		attribute.Int("selection.size", len(userIDs)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "SetStatus"), slog.String("status", string(status)))

	if !status.Valid() {
		span.SetStatus(codes.Error, "invalid status")
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidStatus, status)
	}
	ids := uniqueIDs(userIDs)
	if len(ids) == 0 {
		span.SetStatus(codes.Error, "empty selection")
		return 0, types.ErrEmptySelection
	}

	affected, err := s.repo.UpdateStatus(ctx, ids, status)
	if err != nil {
		l.ErrorContext(ctx, "Failed to update user status", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository update failed")
		return 0, fmt.Errorf("error updating user status: %w", err)
	}

	s.recordAction(ctx, "set_"+string(status), affected)
	l.InfoContext(ctx, "User status updated",
		slog.Int("requested", len(ids)),
		slog.Int64("affected", affected))
	span.SetAttributes(attribute.Int64("users.affected", affected))
	span.SetStatus(codes.Ok, "Status updated")
	return affected, nil
}

func (s *UserServiceImpl) DeleteUsers(ctx context.Context, userIDs []uuid.UUID) (int64, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "DeleteUsers", trace.WithAttributes(
		attribute.Int("selection.size", len(userIDs)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "DeleteUsers"))

	ids := uniqueIDs(userIDs)
	if len(ids) == 0 {
		span.SetStatus(codes.Error, "empty selection")
		return 0, types.ErrEmptySelection
	}

	affected, err := s.repo.DeleteUsers(ctx, ids)
	if err != nil {
		l.ErrorContext(ctx, "Failed to delete users", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository delete failed")
		return 0, fmt.Errorf("error deleting users: %w", err)
	}

	s.recordAction(ctx, "delete", affected)
	l.InfoContext(ctx, "Users deleted",
		slog.Int("requested", len(ids)),
		slog.Int64("affected", affected))
	span.SetAttributes(attribute.Int64("users.affected", affected))
	span.SetStatus(codes.Ok, "Users deleted")
	return affected, nil
}

func (s *UserServiceImpl) recordAction(ctx context.Context, action string, affected int64) {
	attrs := metric.WithAttributes(attribute.String("action", action))
	s.metrics.ModerationActionsTotal.Add(ctx, 1, attrs)
	s.metrics.ModeratedUsersTotal.Add(ctx, affected, attrs)
}

// uniqueIDs drops repeated ids, keeping first-seen order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
