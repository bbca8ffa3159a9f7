// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
)

var lineCols = postgres.ExtractDBColumns[documents.Line]()

// Tables names the storage of one document type.
type Tables struct {
	Header string
	Lines  string

	// ClientCol is filtered by ListFilter.ClientID; empty when the type has no client
	ClientCol string

	// WarehouseCols are matched by ListFilter.WarehouseID; any of them may match
	WarehouseCols []string
}

// BaseDocumentRepo implements documents.Repository for one document type.
type BaseDocumentRepo[T any] struct {
	txm        *postgres.TxManager
	tables     Tables
	selectCols []string
	filterCols postgres.Columns
	newFn      func() T
}

// NewBaseDocumentRepo creates a new base document repository.
func NewBaseDocumentRepo[T any](
	txm *postgres.TxManager,
	tables Tables,
	selectCols []string,
	newFn func() T,
) *BaseDocumentRepo[T] {
	return &BaseDocumentRepo[T]{
		txm:        txm,
		tables:     tables,
		selectCols: selectCols,
		filterCols: postgres.ColumnsOf("", selectCols...),
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder.
func (r *BaseDocumentRepo[T]) Builder() squirrel.StatementBuilderType {
	return postgres.Builder()
}

func (r *BaseDocumentRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

func (r *BaseDocumentRepo[T]) columnsOf(entity T) map[string]any {
	data := postgres.StructToMap(entity)
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	return filtered
}

// Create inserts a new document header.
func (r *BaseDocumentRepo[T]) Create(ctx context.Context, entity T) error {
	data := r.columnsOf(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	sql, args, err := r.Builder().
		Insert(r.tables.Header).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tables.Header, postgres.MapConstraintError(err, r.tables.Header))
	}
	return nil
}

// Update writes the header with optimistic locking.
func (r *BaseDocumentRepo[T]) Update(ctx context.Context, entity T) error {
	data := r.columnsOf(entity)

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	sql, args, err := r.updateQuery(data, entityID, version).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tables.Header, postgres.MapConstraintError(err, r.tables.Header))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tables.Header, entityID)
	}

	if v, ok := any(entity).(interface{ SetVersion(int) }); ok {
		v.SetVersion(version + 1)
	}
	return nil
}

func (r *BaseDocumentRepo[T]) updateQuery(data map[string]any, entityID any, version int) squirrel.UpdateBuilder {
	set := make(map[string]any, len(data))
	for col, val := range data {
		switch col {
		case "id", "version", "created_at", "user_id":
			continue
		}
		set[col] = val
	}

	return r.Builder().
		Update(r.tables.Header).
		SetMap(set).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version})
}

// SetDeletionMark sets or clears the soft-delete flag.
func (r *BaseDocumentRepo[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	sql, args, err := r.Builder().
		Update(r.tables.Header).
		Set("deletion_mark", marked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tables.Header, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tables.Header, entityID.String())
	}
	return nil
}

// baseSelect creates a SELECT builder.
func (r *BaseDocumentRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tables.Header)
}

func (r *BaseDocumentRepo[T]) getOne(ctx context.Context, q squirrel.SelectBuilder, entityID id.ID) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tables.Header, entityID.String())
		}
		return entity, fmt.Errorf("get %s: %w", r.tables.Header, err)
	}
	return entity, nil
}

// GetByID retrieves a live document header.
func (r *BaseDocumentRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	return r.getOne(ctx, r.byID(entityID), entityID)
}

// GetForUpdate retrieves a live document header with a row lock.
func (r *BaseDocumentRepo[T]) GetForUpdate(ctx context.Context, entityID id.ID) (T, error) {
	return r.getOne(ctx, r.byID(entityID).Suffix("FOR UPDATE"), entityID)
}

func (r *BaseDocumentRepo[T]) byID(entityID id.ID) squirrel.SelectBuilder {
	return r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"deletion_mark": false})
}

func (r *BaseDocumentRepo[T]) linesQuery(docID id.ID) squirrel.SelectBuilder {
	return r.Builder().
		Select(lineCols...).
		From(r.tables.Lines).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")
}

// GetLines returns the table part ordered by line number.
func (r *BaseDocumentRepo[T]) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	sql, args, err := r.linesQuery(docID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]documents.Line, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

// SaveLines replaces the table part. Must run inside a transaction.
func (r *BaseDocumentRepo[T]) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	deleteSQL := "DELETE FROM " + r.tables.Lines + " WHERE document_id = $1"
	if _, err := r.querier(ctx).Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if _, err := r.txm.CopyRows(ctx, r.tables.Lines, lineCols, lineRows(docID, lines)); err != nil {
		return postgres.MapConstraintError(err, r.tables.Lines)
	}
	return nil
}

// lineRows lays lines out in lineCols order.
func lineRows(docID id.ID, lines []documents.Line) [][]any {
	rows := make([][]any, len(lines))
	for i, l := range lines {
		rows[i] = []any{l.ID, docID, l.LineNo, l.ProductID, l.Count, l.Price, l.Status, l.Comment}
	}
	return rows
}

// listQuery applies the document filter without pagination.
func (r *BaseDocumentRepo[T]) listQuery(filter documents.ListFilter) (squirrel.SelectBuilder, error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if filter.ClientID != nil && r.tables.ClientCol != "" {
		q = q.Where(squirrel.Eq{r.tables.ClientCol: *filter.ClientID})
	}
	if filter.WarehouseID != nil && len(r.tables.WarehouseCols) > 0 {
		or := make(squirrel.Or, len(r.tables.WarehouseCols))
		for i, col := range r.tables.WarehouseCols {
			or[i] = squirrel.Eq{col: *filter.WarehouseID}
		}
		q = q.Where(or)
	}
	if filter.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		// inclusive calendar date
		q = q.Where(squirrel.Lt{"created_at": filter.DateTo.AddDate(0, 0, 1)})
	}
	q = postgres.Search(q, filter.Search, "comment")

	return postgres.ApplyConditions(q, filter.Conditions, r.filterCols)
}

// List retrieves documents with filtering and pagination.
func (r *BaseDocumentRepo[T]) List(ctx context.Context, filter documents.ListFilter) (domain.ListResult[T], error) {
	filter.Normalize()
	result := domain.ListResult[T]{
		Items:  make([]T, 0),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q, err := r.listQuery(filter)
	if err != nil {
		return result, err
	}

	countSQL, countArgs, err := r.Builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := postgres.OrderBy(filter.OrderBy, "created_at DESC", r.filterCols)
	if err != nil {
		return result, err
	}
	q = postgres.Page(q.OrderBy(orderBy, "id DESC"), filter.Limit, filter.Offset)

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", r.tables.Header, err)
	}
	return result, nil
}
