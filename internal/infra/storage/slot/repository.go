package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/dbmetrics"
	"github.com/khan47650/central-kitchen/pkg/psqlbuilder"
	"github.com/khan47650/central-kitchen/pkg/types"
)

const (
	tableSlots = "slots"

	// SQLSTATE
	codeExclusionViolation = "23P01"
	codeCheckViolation     = "23514"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"state",
	"occupant_kind",
	"occupant_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockDate берет транзакционную advisory-блокировку на дату.
// Все изменения слотов одной даты выполняются последовательно.
// Вне транзакции блокировка бессмысленна, поэтому вызов ничего не делает.
func (r *Repository) LockDate(ctx context.Context, date types.Date) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", date.String()); err != nil {
		return fmt.Errorf("%w: LockDate - date=%s: %w", ErrLockDate, date, err)
	}
	return nil
}

// Create сохраняет новый слот. Пересечение с другим слотом даты отклоняется ограничением EXCLUDE.
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	kind, occupantID := occupantColumns(slot.Occupant)

	query, args, err := psqlbuilder.Insert(tableSlots).
		Columns("id", "slot_date", "start_time", "end_time", "state", "occupant_kind", "occupant_id").
		Values(slot.ID, slot.Date, slot.StartTime, slot.EndTime, string(slot.State), kind, occupantID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return slot, nil
}

// Update сохраняет новое состояние, занявшего и время окончания слота
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	kind, occupantID := occupantColumns(slot.Occupant)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("end_time", slot.EndTime).
		Set("state", string(slot.State)).
		Set("occupant_kind", kind).
		Set("occupant_id", occupantID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	return slot, nil
}

// GetByID получает слот по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSlotNotFound
	}

	builder := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}
	return slot, nil
}

// ListByDate возвращает все слоты даты, отсортированные по времени начала
func (r *Repository) ListByDate(ctx context.Context, date types.Date) ([]*domain.Slot, error) {
	return r.List(ctx, domain.SlotFilter{Date: &date})
}

// List возвращает слоты по фильтру, отсортированные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		OrderBy("slot_date ASC", "start_time ASC")

	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"slot_date": *filter.Date})
	}
	if filter.Occupant != nil {
		if filter.Occupant.IsAdmin() {
			builder = builder.Where(squirrel.Eq{"occupant_kind": string(domain.ActorAdmin)})
		} else {
			builder = builder.
				Where(squirrel.Eq{"occupant_kind": string(domain.ActorClient)}).
				Where(squirrel.Eq{"occupant_id": filter.Occupant.ClientID()})
		}
	}
	if filter.ExcludeBlocked {
		builder = builder.Where(squirrel.NotEq{"state": string(domain.SlotBlocked)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan slot: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	return slots, nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return ErrSlotNotFound
	}

	query, args, err := psqlbuilder.Delete(tableSlots).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot       domain.Slot
		state      string
		kind       sql.NullString
		occupantID sql.NullString
	)

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&state,
		&kind,
		&occupantID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.State = domain.SlotState(state)
	switch domain.ActorKind(kind.String) {
	case domain.ActorAdmin:
		slot.Occupant = domain.Admin()
	case domain.ActorClient:
		slot.Occupant = domain.Client(occupantID.String)
	}

	return &slot, nil
}

func occupantColumns(actor domain.Actor) (sql.NullString, sql.NullString) {
	if actor.IsZero() {
		return sql.NullString{}, sql.NullString{}
	}
	kind := sql.NullString{String: string(actor.Kind()), Valid: true}
	if actor.IsAdmin() {
		return kind, sql.NullString{}
	}
	return kind, sql.NullString{String: actor.ClientID(), Valid: true}
}

func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeExclusionViolation:
			return fmt.Errorf("%w: %s - %s", ErrSlotOverlap, op, pqErr.Message)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s - %s", ErrInvalidSlot, op, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
}
