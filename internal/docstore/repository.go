package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a collection-scoped JSON document store.
type Store interface {
	Query(ctx context.Context, collection string, filters []Equal) ([]Document, error)
	Insert(ctx context.Context, collection string, rec Record) (string, error)
	UpdateFields(ctx context.Context, collection, id string, fields Record) error
	Delete(ctx context.Context, collection, id string) error
}

// fieldName guards the JSON keys interpolated into ->> expressions.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a document store over public.documents.
func NewPgxRepository(pool *pgxpool.Pool) Store {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Query(ctx context.Context, collection string, filters []Equal) ([]Document, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "collection", "data", "created_at", "updated_at").
		From("public.documents").
		Where(squirrel.Eq{"collection": collection})

	for _, f := range filters {
		if !fieldName.MatchString(f.Field) {
			return nil, fmt.Errorf("invalid document field %q", f.Field)
		}
		query = query.Where(squirrel.Expr("data->>'"+f.Field+"' = ?", f.Value))
	}

	sql, args, err := query.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query documents failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents failed: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var raw []byte
		if err := rows.Scan(&d.ID, &d.Collection, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document failed: %w", err)
		}
		if err := json.Unmarshal(raw, &d.Data); err != nil {
			return nil, fmt.Errorf("decode document %s failed: %w", d.ID, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents failed: %w", err)
	}
	return docs, nil
}

func (r *pgxRepository) Insert(ctx context.Context, collection string, rec Record) (string, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode document failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.documents").
		Columns("collection", "data").
		Values(collection, body).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert document query failed: %w", err)
	}

	var id string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicate
		}
		return "", fmt.Errorf("insert document failed: %w", err)
	}
	return id, nil
}

// UpdateFields merges fields into the stored JSON body (top-level keys only).
func (r *pgxRepository) UpdateFields(ctx context.Context, collection, id string, fields Record) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document patch failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.documents").
		Set("data", squirrel.Expr("data || ?::jsonb", patch)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update document query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update document failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, collection, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.documents").
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete document query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
