package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

const LiveKeyColumn = "live_key"

var ErrDuplicate = errors.New("duplicate key on unique index")

// Dependent describes rows in another catalog table that point at this one.
// Dependents of a dependent are walked before the dependent itself.
//
// A join table dependent names the owning table in Through; its rows only
// count while the owning row behind ThroughKey is live.
type Dependent struct {
	Kind             models.Kind
	Table            string
	ForeignKey       string
	SoftDeleteColumn string
	Dependents       []Dependent

	Through                 string
	ThroughKey              string
	ThroughSoftDeleteColumn string
}

// Lookup counts live rows of Table whose id is in IDs and whose columns equal Match.
type Lookup struct {
	Table            string
	IDs              []string
	SoftDeleteColumn string
	Match            map[string]any
}

type CatalogRepositoryImpl[T any] interface {
	Schema() *schema.Schema
	ResolveColumn(name string) (string, bool)
	ResolveFilter(name string) (string, bool)
	ResolveInclude(path string) error
	TableOf(model any) (string, error)

	FindFirst(ctx context.Context, filter *Filter, include ...string) (*T, error)
	FindMany(ctx context.Context, filter *Filter, include ...string) ([]T, error)
	Count(ctx context.Context, filter *Filter) (int64, error)
	CountExisting(ctx context.Context, lookup Lookup) (int64, error)

	Create(ctx context.Context, record *T, omit ...string) error
	Update(ctx context.Context, record *T, columns []string) error
	SoftDelete(ctx context.Context, ids []string, column string, at time.Time) error

	CountDependents(ctx context.Context, dep Dependent, parentIDs []string) (int64, error)
	DeleteDependents(ctx context.Context, dep Dependent, parentIDs []string, at time.Time, hard bool) error

	Transaction(ctx context.Context, fn func(tx CatalogRepositoryImpl[T]) error) error
}

// HardDeleter is the optional capability of physically removing rows.
// owned names has-many or many2many associations removed together with each row.
type HardDeleter interface {
	Delete(ctx context.Context, ids []string, owned ...string) error
}

type catalogRepository[T any] struct {
	db     *gorm.DB
	schema *schema.Schema
}

func NewCatalogRepository[T any](db *gorm.DB) (CatalogRepositoryImpl[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed to parse model schema: %w", err)
	}
	return &catalogRepository[T]{db: db, schema: stmt.Schema}, nil
}

func (r *catalogRepository[T]) Schema() *schema.Schema {
	return r.schema
}

// ResolveColumn maps a Go field name, JSON name or column name to the column name.
func (r *catalogRepository[T]) ResolveColumn(name string) (string, bool) {
	return resolveColumn(r.schema, name)
}

// ResolveFilter is ResolveColumn restricted to fields visible in JSON.
func (r *catalogRepository[T]) ResolveFilter(name string) (string, bool) {
	column, ok := resolveColumn(r.schema, name)
	if !ok {
		return "", false
	}
	if jsonName, _, _ := strings.Cut(r.schema.LookUpField(column).Tag.Get("json"), ","); jsonName == "-" {
		return "", false
	}
	return column, true
}

func resolveColumn(s *schema.Schema, name string) (string, bool) {
	if f := s.LookUpField(name); f != nil && f.DBName != "" {
		return f.DBName, true
	}
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		if jsonName, _, _ := strings.Cut(f.Tag.Get("json"), ","); jsonName == name {
			return f.DBName, true
		}
	}
	return "", false
}

func (r *catalogRepository[T]) ResolveInclude(path string) error {
	_, err := r.preloads(path)
	return err
}

func (r *catalogRepository[T]) TableOf(model any) (string, error) {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(model); err != nil {
		return "", fmt.Errorf("failed to parse model schema: %w", err)
	}
	return stmt.Schema.Table, nil
}

type preload struct {
	path   string
	column string
}

// preloads expands "A.B" into one preload per level, each scoped to live rows
// when the related model has a soft-delete column.
func (r *catalogRepository[T]) preloads(path string) ([]preload, error) {
	var out []preload
	current := r.schema
	var prefix []string
	for _, name := range strings.Split(path, ".") {
		rel, ok := current.Relationships.Relations[name]
		if !ok {
			return nil, fmt.Errorf("unknown relation %q on %s", name, current.Name)
		}
		prefix = append(prefix, name)
		current = rel.FieldSchema
		p := preload{path: strings.Join(prefix, ".")}
		if f := current.LookUpField("deleted_at"); f != nil {
			p.column = f.DBName
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *catalogRepository[T]) withIncludes(db *gorm.DB, include []string) (*gorm.DB, error) {
	seen := make(map[string]bool)
	for _, path := range include {
		pls, err := r.preloads(path)
		if err != nil {
			return nil, err
		}
		for _, p := range pls {
			if seen[p.path] {
				continue
			}
			seen[p.path] = true
			if p.column != "" {
				db = db.Preload(p.path, p.column+" IS NULL")
			} else {
				db = db.Preload(p.path)
			}
		}
	}
	return db, nil
}

func (r *catalogRepository[T]) FindFirst(ctx context.Context, filter *Filter, include ...string) (*T, error) {
	db, err := r.withIncludes(r.db.WithContext(ctx), include)
	if err != nil {
		return nil, err
	}
	var record T
	err = filter.apply(db.Model(new(T))).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *catalogRepository[T]) FindMany(ctx context.Context, filter *Filter, include ...string) ([]T, error) {
	db, err := r.withIncludes(r.db.WithContext(ctx), include)
	if err != nil {
		return nil, err
	}
	records := []T{}
	err = filter.apply(db.Model(new(T))).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *catalogRepository[T]) Count(ctx context.Context, filter *Filter) (int64, error) {
	var n int64
	err := filter.apply(r.db.WithContext(ctx).Model(new(T))).Count(&n).Error
	return n, err
}

func (r *catalogRepository[T]) CountExisting(ctx context.Context, lookup Lookup) (int64, error) {
	f := NewFilter().In("id", lookup.IDs)
	if lookup.SoftDeleteColumn != "" {
		f.IsNull(lookup.SoftDeleteColumn)
	}
	for col, v := range lookup.Match {
		f.Eq(col, v)
	}
	var n int64
	err := f.apply(r.db.WithContext(ctx).Table(lookup.Table)).Count(&n).Error
	return n, err
}

func (r *catalogRepository[T]) Create(ctx context.Context, record *T, omit ...string) error {
	db := r.db.WithContext(ctx)
	if len(omit) > 0 {
		db = db.Omit(omit...)
	}
	return translateError(db.Create(record).Error)
}

// Update writes exactly the given columns of record, zero values included.
func (r *catalogRepository[T]) Update(ctx context.Context, record *T, columns []string) error {
	return translateError(r.db.WithContext(ctx).Model(record).Select(columns).Updates(record).Error)
}

func (r *catalogRepository[T]) SoftDelete(ctx context.Context, ids []string, column string, at time.Time) error {
	updates := map[string]any{column: at}
	if f := r.schema.LookUpField(LiveKeyColumn); f != nil {
		updates[LiveKeyColumn] = nil
	}
	if f := r.schema.LookUpField("updated_at"); f != nil {
		updates["updated_at"] = at
	}
	return NewFilter().In("id", ids).apply(r.db.WithContext(ctx).Model(new(T))).Updates(updates).Error
}

func (r *catalogRepository[T]) Delete(ctx context.Context, ids []string, owned ...string) error {
	for _, id := range ids {
		record := new(T)
		rec, ok := any(record).(models.Record)
		if !ok {
			return fmt.Errorf("model %s does not embed CatalogBase", r.schema.Name)
		}
		rec.SetID(id)

		db := r.db.WithContext(ctx)
		if len(owned) > 0 {
			db = db.Select(owned)
		}
		if err := db.Delete(record).Error; err != nil {
			return err
		}
	}
	return nil
}

func dependentFilter(dep Dependent, parentIDs []string, liveOnly bool) *Filter {
	f := NewFilter().In(dep.ForeignKey, parentIDs)
	if liveOnly && dep.SoftDeleteColumn != "" {
		f.IsNull(dep.SoftDeleteColumn)
	}
	return f
}

// CountDependents counts live dependent rows. Rows of tables without a
// soft-delete column count unless they go through a retired owning row.
func (r *catalogRepository[T]) CountDependents(ctx context.Context, dep Dependent, parentIDs []string) (int64, error) {
	if dep.Through != "" {
		return r.countThrough(ctx, dep, parentIDs)
	}
	var n int64
	err := dependentFilter(dep, parentIDs, true).apply(r.db.WithContext(ctx).Table(dep.Table)).Count(&n).Error
	return n, err
}

func (r *catalogRepository[T]) countThrough(ctx context.Context, dep Dependent, parentIDs []string) (int64, error) {
	in := make([]any, len(parentIDs))
	for i, id := range parentIDs {
		in[i] = id
	}
	db := r.db.WithContext(ctx).Table(dep.Table).
		Joins("JOIN ? ON ? = ?",
			clause.Table{Name: dep.Through},
			clause.Column{Table: dep.Through, Name: "id"},
			clause.Column{Table: dep.Table, Name: dep.ThroughKey}).
		Where(clause.IN{Column: clause.Column{Table: dep.Table, Name: dep.ForeignKey}, Values: in})
	if dep.ThroughSoftDeleteColumn != "" {
		db = db.Where(clause.Eq{Column: clause.Column{Table: dep.Through, Name: dep.ThroughSoftDeleteColumn}, Value: nil})
	}
	var n int64
	err := db.Count(&n).Error
	return n, err
}

// DeleteDependents removes dependents of parentIDs, deepest first. With hard
// set every row is removed physically; otherwise live rows of soft-deletable
// tables are stamped and tables without a soft-delete column are left alone.
func (r *catalogRepository[T]) DeleteDependents(ctx context.Context, dep Dependent, parentIDs []string, at time.Time, hard bool) error {
	if len(parentIDs) == 0 {
		return nil
	}
	if !hard && dep.SoftDeleteColumn == "" {
		return nil
	}
	if len(dep.Dependents) > 0 {
		var childIDs []string
		err := dependentFilter(dep, parentIDs, !hard).apply(r.db.WithContext(ctx).Table(dep.Table)).Pluck("id", &childIDs).Error
		if err != nil {
			return fmt.Errorf("failed to list %s dependents: %w", dep.Table, err)
		}
		for _, nested := range dep.Dependents {
			if err := r.DeleteDependents(ctx, nested, childIDs, at, hard); err != nil {
				return err
			}
		}
	}

	db := dependentFilter(dep, parentIDs, !hard).apply(r.db.WithContext(ctx).Table(dep.Table))
	if hard {
		if err := db.Delete(map[string]any{}).Error; err != nil {
			return fmt.Errorf("failed to delete %s dependents: %w", dep.Table, err)
		}
		return nil
	}
	err := db.Updates(map[string]any{
		dep.SoftDeleteColumn: at,
		LiveKeyColumn:        nil,
		"updated_at":         at,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to soft delete %s dependents: %w", dep.Table, err)
	}
	return nil
}

func (r *catalogRepository[T]) Transaction(ctx context.Context, fn func(tx CatalogRepositoryImpl[T]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&catalogRepository[T]{db: tx, schema: r.schema})
	})
}

// translateError folds every driver's unique violation into ErrDuplicate.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) &&
		(liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return true
	}
	return false
}
