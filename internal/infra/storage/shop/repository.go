package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/dbmetrics"
	"github.com/khan47650/central-kitchen/pkg/psqlbuilder"
)

const (
	tableShops   = "shops"
	tableTimings = "shop_timings"
)

var shopColumns = []string{"id", "owner_id", "name", "address", "description", "created_at", "updated_at"}

var timingColumns = []string{"shop_id", "day", "open", "open_time", "close_time", "break", "break_start", "break_end"}

// Repository репозиторий магазинов и их недельных расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория магазинов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет магазин вместе со всеми семью строками расписания.
// Вызывать внутри транзакции, чтобы магазин не остался без расписания.
func (r *Repository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if shop.ID == "" {
		shop.ID = uuid.NewString()
	}
	if shop.Timings == nil {
		shop.Timings = domain.NewTimetable()
	}

	query, args, err := psqlbuilder.Insert(tableShops).
		Columns("id", "owner_id", "name", "address", "description").
		Values(shop.ID, shop.OwnerID, shop.Name, shop.Address, shop.Description).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&shop.CreatedAt, &shop.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if err := r.upsertTimings(ctx, shop.ID, shop.Timings); err != nil {
		return nil, err
	}

	return shop, nil
}

// GetByID получает магазин с расписанием
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает магазин, блокируя строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Shop, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id string, forUpdate bool) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrShopNotFound
	}

	builder := psqlbuilder.Select(shopColumns...).
		From(tableShops).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	shop, err := scanShop(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shop: %w", ErrScanRow, err)
	}

	timings, err := r.loadTimings(ctx, []string{shop.ID})
	if err != nil {
		return nil, err
	}
	shop.Timings = timings[shop.ID]

	return shop, nil
}

// ListByOwner возвращает магазины владельца
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shop, error) {
	return r.list(ctx, squirrel.Eq{"owner_id": ownerID})
}

// List возвращает все магазины
func (r *Repository) List(ctx context.Context) ([]*domain.Shop, error) {
	return r.list(ctx, nil)
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(shopColumns...).
		From(tableShops).
		OrderBy("created_at ASC")
	if where != nil {
		builder = builder.Where(where)
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

	shops := make([]*domain.Shop, 0)
	ids := make([]string, 0)
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan shop: %w", ErrScanRow, err)
		}
		shops = append(shops, shop)
		ids = append(ids, shop.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return shops, nil
	}

	timings, err := r.loadTimings(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, shop := range shops {
		shop.Timings = timings[shop.ID]
	}

	return shops, nil
}

// Update сохраняет профиль магазина и заменяет расписание целиком
func (r *Repository) Update(ctx context.Context, shop *domain.Shop) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableShops).
		Set("name", shop.Name).
		Set("address", shop.Address).
		Set("description", shop.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shop.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrShopNotFound
	}

	return r.upsertTimings(ctx, shop.ID, shop.Timings)
}

// Delete удаляет магазин. Строки расписания удаляются каскадно.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return ErrShopNotFound
	}

	query, args, err := psqlbuilder.Delete(tableShops).
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
		return ErrShopNotFound
	}

	return nil
}

func (r *Repository) upsertTimings(ctx context.Context, shopID string, table domain.Timetable) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(tableTimings).Columns(timingColumns...)
	for _, row := range table.Rows() {
		builder = builder.Values(
			shopID, string(row.Day), row.Open, row.OpenTime, row.CloseTime,
			row.Break, row.BreakStart, row.BreakEnd,
		)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (shop_id, day) DO UPDATE SET " +
			"open = EXCLUDED.open, open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, " +
			"break = EXCLUDED.break, break_start = EXCLUDED.break_start, break_end = EXCLUDED.break_end").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: upsertTimings - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: upsertTimings - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) loadTimings(ctx context.Context, shopIDs []string) (map[string]domain.Timetable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timingColumns...).
		From(tableTimings).
		Where(squirrel.Eq{"shop_id": shopIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadTimings - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadTimings - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]domain.Timetable, len(shopIDs))
	for _, id := range shopIDs {
		result[id] = domain.NewTimetable()
	}

	for rows.Next() {
		var (
			shopID string
			day    string
			row    domain.TimingRow
		)
		err := rows.Scan(
			&shopID, &day, &row.Open, &row.OpenTime, &row.CloseTime,
			&row.Break, &row.BreakStart, &row.BreakEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadTimings - scan row: %w", ErrScanRow, err)
		}
		row.Day = domain.Weekday(day)
		if table, ok := result[shopID]; ok {
			table[row.Day] = row
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadTimings - iterate rows: %w", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShop(row rowScanner) (*domain.Shop, error) {
	var shop domain.Shop
	err := row.Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Address,
		&shop.Description,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}
