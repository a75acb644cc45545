package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/cache"
	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/Rakhulsr/clothing-catalog-admin/app/repositories"
	"gorm.io/gorm/schema"
)

// GetParams narrows a get or list call. Filter keys may be Go field names,
// JSON names or column names. A nil value matches NULL and a []string value
// matches any of its elements.
type GetParams struct {
	Filters map[string]any
	Include []string
}

type reference[T any] struct {
	Reference[T]
	table            string
	softDeleteColumn string
}

// Crud runs the validated create, update, delete and get operations of one
// entity kind against its repository.
type Crud[T any] struct {
	repo        repositories.CatalogRepositoryImpl[T]
	opts        CrudOptions[T]
	revalidator cache.Revalidator

	unique           []*schema.Field
	uniqueLabel      string
	softDeleteColumn string
	references       []reference[T]
	now              func() time.Time
}

// NewCrud checks opts against the model once so that misconfiguration fails
// at startup instead of on a request.
func NewCrud[T any](repo repositories.CatalogRepositoryImpl[T], opts CrudOptions[T], revalidator cache.Revalidator) (*Crud[T], error) {
	if !opts.Kind.Valid() {
		return nil, fmt.Errorf("invalid entity kind %d", opts.Kind)
	}
	if opts.Schema == nil {
		return nil, fmt.Errorf("%s: schema is required", opts.Kind)
	}
	if _, ok := any(new(T)).(models.Record); !ok {
		return nil, fmt.Errorf("%s: model must embed CatalogBase", opts.Kind)
	}
	if revalidator == nil {
		revalidator = cache.NopRevalidator{}
	}

	c := &Crud[T]{repo: repo, opts: opts, revalidator: revalidator, now: time.Now}

	var labels []string
	for _, name := range opts.UniqueFields {
		column, ok := repo.ResolveColumn(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown unique field %q", opts.Kind, name)
		}
		field := repo.Schema().LookUpField(column)
		c.unique = append(c.unique, field)
		labels = append(labels, jsonName(field))
	}
	c.uniqueLabel = strings.Join(labels, " and ")

	if opts.SoftDeleteField != "" {
		column, ok := repo.ResolveColumn(opts.SoftDeleteField)
		if !ok {
			return nil, fmt.Errorf("%s: unknown soft delete field %q", opts.Kind, opts.SoftDeleteField)
		}
		c.softDeleteColumn = column
	}
	if c.softDeleteColumn == "" && !opts.HardDelete {
		if _, ok := repo.(repositories.HardDeleter); !ok {
			return nil, fmt.Errorf("%s: no soft delete field and repository cannot hard delete", opts.Kind)
		}
	}

	for _, column := range opts.Schema.Columns() {
		if _, ok := repo.ResolveColumn(column); !ok {
			return nil, fmt.Errorf("%s: schema declares unknown column %q", opts.Kind, column)
		}
	}
	for _, path := range opts.Include {
		if err := repo.ResolveInclude(path); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Kind, err)
		}
	}

	for _, ref := range opts.References {
		if ref.Field == "" || ref.Model == nil || ref.IDs == nil {
			return nil, fmt.Errorf("%s: incomplete reference %q", opts.Kind, ref.Field)
		}
		table, err := repo.TableOf(ref.Model)
		if err != nil {
			return nil, fmt.Errorf("%s: reference %q: %w", opts.Kind, ref.Field, err)
		}
		r := reference[T]{Reference: ref, table: table}
		if _, ok := ref.Model.(models.Record); ok {
			r.softDeleteColumn = "deleted_at"
		}
		c.references = append(c.references, r)
	}

	if c.opts.OnDelete == "" {
		c.opts.OnDelete = DeleteRestrict
	}
	if _, ok := ParseDeletePolicy(string(c.opts.OnDelete)); !ok {
		return nil, fmt.Errorf("%s: unknown delete policy %q", opts.Kind, opts.OnDelete)
	}
	for _, dep := range opts.Dependents {
		if dep.Table == "" || dep.ForeignKey == "" {
			return nil, fmt.Errorf("%s: dependent %s needs a table and a foreign key", opts.Kind, dep.Kind)
		}
		if dep.Through != "" && dep.ThroughKey == "" {
			return nil, fmt.Errorf("%s: dependent %s goes through %s without a key", opts.Kind, dep.Kind, dep.Through)
		}
	}
	return c, nil
}

func jsonName(f *schema.Field) string {
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	return f.DBName
}

func (c *Crud[T]) Kind() models.Kind {
	return c.opts.Kind
}

func (c *Crud[T]) Options() CrudOptions[T] {
	return c.opts
}

func (c *Crud[T]) CreateItem(ctx context.Context, input any) Result[*T] {
	record, err := c.create(ctx, input)
	if err != nil {
		return fromError[*T]("CreateItem "+c.opts.Kind.String(), err)
	}
	return succeed(c.opts.Kind.String()+" created successfully.", record)
}

func (c *Crud[T]) create(ctx context.Context, input any) (*T, error) {
	parsed := c.opts.Schema.SafeParse(input)
	if !parsed.Success {
		return nil, c.invalid(parsed.Errors)
	}
	record := parsed.Data

	err := c.repo.Transaction(ctx, func(tx repositories.CatalogRepositoryImpl[T]) error {
		if err := c.checkReferences(ctx, tx, record); err != nil {
			return err
		}
		filter := c.uniqueFilter(ctx, record)
		if filter.Len() > 0 {
			existing, err := tx.FindFirst(ctx, filter)
			if err != nil {
				return err
			}
			if existing != nil {
				return c.duplicate()
			}
		}
		any(record).(models.Record).SetLiveKey(c.liveKey(ctx, record))
		return tx.Create(ctx, record, c.opts.OmitOnCreate...)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, c.duplicate()
		}
		return nil, err
	}

	c.revalidate(ctx)
	return c.reload(ctx, record)
}

func (c *Crud[T]) UpdateItem(ctx context.Context, id string, input any) Result[*T] {
	record, err := c.update(ctx, strings.TrimSpace(id), input)
	if err != nil {
		return fromError[*T]("UpdateItem "+c.opts.Kind.String(), err)
	}
	return succeed(c.opts.Kind.String()+" updated successfully.", record)
}

func (c *Crud[T]) update(ctx context.Context, id string, input any) (*T, error) {
	parsed := c.opts.Schema.SafeParse(input)
	if !parsed.Success {
		return nil, c.invalid(parsed.Errors)
	}
	record := parsed.Data
	if id == "" {
		return nil, c.notFound()
	}

	err := c.repo.Transaction(ctx, func(tx repositories.CatalogRepositoryImpl[T]) error {
		current, err := tx.FindFirst(ctx, c.liveByIDs([]string{id}))
		if err != nil {
			return err
		}
		if current == nil {
			return c.notFound()
		}
		if err := c.checkReferences(ctx, tx, record); err != nil {
			return err
		}
		filter := c.uniqueFilter(ctx, record)
		if filter.Len() > 0 {
			existing, err := tx.FindFirst(ctx, filter.Ne("id", id))
			if err != nil {
				return err
			}
			if existing != nil {
				return c.duplicate()
			}
		}

		rec := any(record).(models.Record)
		rec.SetID(id)
		rec.SetLiveKey(c.liveKey(ctx, record))
		columns := append(c.opts.Schema.Columns(), "LiveKey", "UpdatedAt")
		return tx.Update(ctx, record, columns)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, c.duplicate()
		}
		return nil, err
	}

	c.revalidate(ctx)
	return c.reload(ctx, record)
}

// DeleteItems deletes every id or none. policy overrides the configured
// delete policy for this call.
func (c *Crud[T]) DeleteItems(ctx context.Context, ids []string, policy ...DeletePolicy) Result[[]string] {
	deleted, err := c.delete(ctx, ids, policy...)
	if err != nil {
		return fromError[[]string]("DeleteItems "+c.opts.Kind.String(), err)
	}
	return succeed(c.opts.Kind.String()+" deleted successfully.", deleted)
}

func (c *Crud[T]) delete(ctx context.Context, ids []string, policy ...DeletePolicy) ([]string, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return nil, newFailure(ErrorBadRequest, "Invalid ID list")
	}
	onDelete := c.opts.OnDelete
	if len(policy) > 0 && policy[0] != "" {
		p, valid := ParseDeletePolicy(string(policy[0]))
		if !valid {
			return nil, newFailure(ErrorBadRequest, fmt.Sprintf("Unknown delete policy %q", policy[0]))
		}
		onDelete = p
	}
	hard := c.opts.HardDelete || c.softDeleteColumn == ""
	at := c.now().UTC()

	err := c.repo.Transaction(ctx, func(tx repositories.CatalogRepositoryImpl[T]) error {
		n, err := tx.Count(ctx, c.liveByIDs(ids))
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return newFailure(ErrorNotFound, c.opts.Kind.String()+" not found for some of the provided IDs.")
		}

		switch onDelete {
		case DeleteRestrict:
			for _, dep := range c.opts.Dependents {
				count, err := tx.CountDependents(ctx, dep, ids)
				if err != nil {
					return err
				}
				if count > 0 {
					return newFailure(ErrorConflict, fmt.Sprintf(
						"Cannot delete %s: %d dependent %s record(s) still reference it.", c.opts.Kind, count, dep.Kind))
				}
			}
		case DeleteCascade:
			for _, dep := range c.opts.Dependents {
				if err := tx.DeleteDependents(ctx, dep, ids, at, hard); err != nil {
					return err
				}
			}
		}

		if hard {
			if deleter, ok := tx.(repositories.HardDeleter); ok {
				return deleter.Delete(ctx, ids, c.opts.OwnedAssociations...)
			}
			if c.softDeleteColumn == "" {
				return fmt.Errorf("%s: repository cannot hard delete", c.opts.Kind)
			}
		}
		return tx.SoftDelete(ctx, ids, c.softDeleteColumn, at)
	})
	if err != nil {
		return nil, err
	}

	c.revalidate(ctx)
	return ids, nil
}

func (c *Crud[T]) GetItem(ctx context.Context, id string, params GetParams) Result[*T] {
	record, err := c.get(ctx, strings.TrimSpace(id), params)
	if err != nil {
		return fromError[*T]("GetItem "+c.opts.Kind.String(), err)
	}
	return succeed(c.opts.Kind.String()+" fetched successfully.", record)
}

func (c *Crud[T]) get(ctx context.Context, id string, params GetParams) (*T, error) {
	if id == "" {
		return nil, c.notFound()
	}
	filter, include, err := c.query(params)
	if err != nil {
		return nil, err
	}
	record, err := c.repo.FindFirst(ctx, c.liveByIDs([]string{id}).Merge(filter), include...)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, c.notFound()
	}
	return record, nil
}

func (c *Crud[T]) GetItems(ctx context.Context, params GetParams) Result[[]T] {
	records, err := c.list(ctx, params)
	if err != nil {
		return fromError[[]T]("GetItems "+c.opts.Kind.String(), err)
	}
	return succeed(c.opts.Kind.String()+" list fetched successfully.", records)
}

func (c *Crud[T]) list(ctx context.Context, params GetParams) ([]T, error) {
	filter, include, err := c.query(params)
	if err != nil {
		return nil, err
	}
	return c.repo.FindMany(ctx, c.live().Merge(filter), include...)
}

// query resolves caller filters and includes. Unknown names are bad requests.
func (c *Crud[T]) query(params GetParams) (*repositories.Filter, []string, error) {
	filter := repositories.NewFilter()
	for key, value := range params.Filters {
		column, ok := c.repo.ResolveFilter(key)
		if !ok {
			return nil, nil, newFailure(ErrorBadRequest, fmt.Sprintf("Unknown filter %q", key))
		}
		switch v := value.(type) {
		case nil:
			filter.IsNull(column)
		case []string:
			filter.In(column, v)
		default:
			filter.Eq(column, v)
		}
	}

	include := params.Include
	if include == nil {
		include = c.opts.Include
	}
	for _, path := range include {
		if err := c.repo.ResolveInclude(path); err != nil {
			return nil, nil, newFailure(ErrorBadRequest, fmt.Sprintf("Unknown include %q", path))
		}
	}
	return filter, include, nil
}

func (c *Crud[T]) reload(ctx context.Context, record *T) (*T, error) {
	id := any(record).(models.Record).GetID()
	stored, err := c.repo.FindFirst(ctx, repositories.NewFilter().Eq("id", id), c.opts.Include...)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return record, nil
	}
	return stored, nil
}

func (c *Crud[T]) live() *repositories.Filter {
	f := repositories.NewFilter()
	if c.softDeleteColumn != "" {
		f.IsNull(c.softDeleteColumn)
	}
	return f
}

func (c *Crud[T]) liveByIDs(ids []string) *repositories.Filter {
	return c.live().In("id", ids)
}

func (c *Crud[T]) uniqueFilter(ctx context.Context, record *T) *repositories.Filter {
	if len(c.unique) == 0 {
		return repositories.NewFilter()
	}
	f := c.live()
	rv := reflect.ValueOf(record)
	for _, field := range c.unique {
		value, _ := field.ValueOf(ctx, rv)
		f.IEq(field.DBName, value)
	}
	return f
}

// liveKey digests the normalized uniqueness tuple. Nil when the kind has no key.
func (c *Crud[T]) liveKey(ctx context.Context, record *T) *string {
	if len(c.unique) == 0 {
		return nil
	}
	rv := reflect.ValueOf(record)
	parts := make([]string, 0, len(c.unique))
	for _, field := range c.unique {
		value, _ := field.ValueOf(ctx, rv)
		parts = append(parts, normalizeKeyPart(value))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	key := hex.EncodeToString(sum[:])
	return &key
}

func normalizeKeyPart(value any) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(v)
	case *string:
		if v == nil {
			return ""
		}
		return strings.ToLower(*v)
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}

func (c *Crud[T]) checkReferences(ctx context.Context, tx repositories.CatalogRepositoryImpl[T], record *T) error {
	for _, ref := range c.references {
		ids := normalizeIDs(ref.IDs(record))
		if len(ids) == 0 {
			continue
		}
		lookup := repositories.Lookup{Table: ref.table, IDs: ids, SoftDeleteColumn: ref.softDeleteColumn}
		if ref.Match != nil {
			lookup.Match = ref.Match(record)
		}
		n, err := tx.CountExisting(ctx, lookup)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return c.invalid(helpers.FieldErrors{ref.Field: ref.Field + " does not reference an existing record."})
		}
	}
	return nil
}

func (c *Crud[T]) revalidate(ctx context.Context) {
	if c.opts.RevalidatePath != "" {
		c.revalidator.Revalidate(ctx, c.opts.RevalidatePath)
	}
}

func (c *Crud[T]) invalid(fields helpers.FieldErrors) error {
	return &failure{kind: ErrorValidation, message: "Invalid " + c.opts.Kind.String() + " data.", fields: fields}
}

func (c *Crud[T]) notFound() error {
	return newFailure(ErrorNotFound, c.opts.Kind.String()+" not found.")
}

func (c *Crud[T]) duplicate() error {
	return newFailure(ErrorDuplicate, fmt.Sprintf("A %s with the same %s already exists.", c.opts.Kind, c.uniqueLabel))
}

// normalizeIDs trims ids and drops blanks and repeats.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
