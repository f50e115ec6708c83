package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-account-console/app/db"
	"github.com/FACorreiaa/go-account-console/app/observability/metrics"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo defines the contract for account persistence. Every method is a
// single statement; bulk methods skip ids that do not exist.
type UserRepo interface {
	// CreateUser inserts a new active account. Returns types.ErrConflict if the email is taken.
	CreateUser(ctx context.Context, params types.CreateUserParams) (*types.User, error)
	// GetUserByEmail returns types.ErrNotFound if no account has this exact email.
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	// GetUserByID returns types.ErrNotFound if the account does not exist.
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	// UpdateLastLogin stamps the current time, never moving the value backwards.
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) (time.Time, error)
	// UpdateStatus sets status on every existing id and reports how many rows changed.
	UpdateStatus(ctx context.Context, userIDs []uuid.UUID, status types.UserStatus) (int64, error)
	// DeleteUsers removes every existing id and reports how many rows were removed.
	DeleteUsers(ctx context.Context, userIDs []uuid.UUID) (int64, error)
	// ListUsers returns all accounts, most recent login first, never-logged-in last.
	ListUsers(ctx context.Context) ([]types.User, error)
}

const userColumns = `id, name, email, password_hash, status, last_login_at, registered_at`

const (
	queryCreateUser = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	queryUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	queryUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	queryUpdateLastLogin = `
		UPDATE users
		SET last_login_at = GREATEST(COALESCE(last_login_at, NOW()), NOW())
		WHERE id = $1
		RETURNING last_login_at`

	queryUpdateStatus = `
		UPDATE users
		SET status = $1::user_status
		WHERE id = ANY($2) AND status <> $1::user_status`

	queryDeleteUsers = `DELETE FROM users WHERE id = ANY($1)`

	queryListUsers = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY last_login_at IS NULL, last_login_at DESC, registered_at DESC`
)

type PostgresUserRepo struct {
	logger  *slog.Logger
	pgpool  database.DBTX
	metrics *metrics.AppMetrics
}

func NewPostgresUserRepo(pgpool database.DBTX, appMetrics *metrics.AppMetrics, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger:  logger,
		pgpool:  pgpool,
		metrics: appMetrics,
	}
}

func (r *PostgresUserRepo) startSpan(ctx context.Context, name, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", "users"),
	)
	return otel.Tracer("UserRepo").Start(ctx, name, trace.WithAttributes(attrs...))
}

func failSpan(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*types.User, error) {
	var u types.User
	var status string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &status, &u.LastLoginAt, &u.RegisteredAt); err != nil {
		return nil, err
	}
	u.Status = types.UserStatus(status)
	return &u, nil
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, params types.CreateUserParams) (*types.User, error) {
	ctx, span := r.startSpan(ctx, "CreateUser", "INSERT")
	defer span.End()

	start := time.Now()
	u, err := scanUser(r.pgpool.QueryRow(ctx, queryCreateUser, params.Name, params.Email, params.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			r.metrics.ObserveQuery(ctx, "create_user", start, nil)
			span.SetStatus(codes.Error, "email already in use")
			return nil, fmt.Errorf("create user: %w", types.ErrConflict)
		}
		r.metrics.ObserveQuery(ctx, "create_user", start, err)
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		failSpan(span, err, "insert failed")
		return nil, fmt.Errorf("create user: db insert failed: %w", err)
	}
	r.metrics.ObserveQuery(ctx, "create_user", start, nil)

	span.SetAttributes(attribute.String("db.user.id", u.ID.String()))
	span.SetStatus(codes.Ok, "user created")
	return u, nil
}

func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := r.startSpan(ctx, "GetUserByEmail", "SELECT")
	defer span.End()

	return r.getUser(ctx, span, "get_user_by_email", queryUserByEmail, email)
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx, span := r.startSpan(ctx, "GetUserByID", "SELECT", attribute.String("db.user.id", userID.String()))
	defer span.End()

	return r.getUser(ctx, span, "get_user_by_id", queryUserByID, userID)
}

func (r *PostgresUserRepo) getUser(ctx context.Context, span trace.Span, op, query string, arg any) (*types.User, error) {
	start := time.Now()
	u, err := scanUser(r.pgpool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.metrics.ObserveQuery(ctx, op, start, nil)
			return nil, types.ErrNotFound
		}
		r.metrics.ObserveQuery(ctx, op, start, err)
		failSpan(span, err, "query failed")
		return nil, fmt.Errorf("%s: query failed: %w", op, err)
	}
	r.metrics.ObserveQuery(ctx, op, start, nil)
	return u, nil
}

func (r *PostgresUserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	ctx, span := r.startSpan(ctx, "UpdateLastLogin", "UPDATE", attribute.String("db.user.id", userID.String()))
	defer span.End()

	start := time.Now()
	var lastLogin time.Time
	err := r.pgpool.QueryRow(ctx, queryUpdateLastLogin, userID).Scan(&lastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.metrics.ObserveQuery(ctx, "update_last_login", start, nil)
			return time.Time{}, types.ErrNotFound
		}
		r.metrics.ObserveQuery(ctx, "update_last_login", start, err)
		failSpan(span, err, "update failed")
		return time.Time{}, fmt.Errorf("update last login: db update failed: %w", err)
	}
	r.metrics.ObserveQuery(ctx, "update_last_login", start, nil)
	return lastLogin, nil
}

func (r *PostgresUserRepo) UpdateStatus(ctx context.Context, userIDs []uuid.UUID, status types.UserStatus) (int64, error) {
	ctx, span := r.startSpan(ctx, "UpdateStatus", "UPDATE",
		attribute.String("user.status", string(status)),
		attribute.Int("selection.size", len(userIDs)),
	)
	defer span.End()

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, queryUpdateStatus, string(status), userIDs)
	r.metrics.ObserveQuery(ctx, "update_status", start, err)
	if err != nil {
		failSpan(span, err, "update failed")
		return 0, fmt.Errorf("update status: db update failed: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func (r *PostgresUserRepo) DeleteUsers(ctx context.Context, userIDs []uuid.UUID) (int64, error) {
	ctx, span := r.startSpan(ctx, "DeleteUsers", "DELETE", attribute.Int("selection.size", len(userIDs)))
	defer span.End()

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, queryDeleteUsers, userIDs)
	r.metrics.ObserveQuery(ctx, "delete_users", start, err)
	if err != nil {
		failSpan(span, err, "delete failed")
		return 0, fmt.Errorf("delete users: db delete failed: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context) ([]types.User, error) {
	ctx, span := r.startSpan(ctx, "ListUsers", "SELECT")
	defer span.End()

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, queryListUsers)
	if err != nil {
		r.metrics.ObserveQuery(ctx, "list_users", start, err)
		failSpan(span, err, "query failed")
		return nil, fmt.Errorf("list users: query failed: %w", err)
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			r.metrics.ObserveQuery(ctx, "list_users", start, err)
			failSpan(span, err, "scan failed")
			return nil, fmt.Errorf("list users: scan failed: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		r.metrics.ObserveQuery(ctx, "list_users", start, err)
		failSpan(span, err, "row iteration failed")
		return nil, fmt.Errorf("list users: rows: %w", err)
	}
	r.metrics.ObserveQuery(ctx, "list_users", start, nil)

	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, nil
}
