package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Op string

const (
	OpEq     Op = "eq"
	OpIEq    Op = "ieq"
	OpNe     Op = "ne"
	OpIn     Op = "in"
	OpIsNull Op = "null"
)

// Condition is one column predicate. Column is always a resolved database column name.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Filter is a conjunction of conditions.
type Filter struct {
	conds []Condition
}

func NewFilter() *Filter {
	return &Filter{}
}

func (f *Filter) Eq(column string, value any) *Filter {
	return f.add(column, OpEq, value)
}

// IEq compares strings case-insensitively. Non-string values fall back to Eq.
func (f *Filter) IEq(column string, value any) *Filter {
	if _, ok := value.(string); !ok {
		return f.Eq(column, value)
	}
	return f.add(column, OpIEq, value)
}

func (f *Filter) Ne(column string, value any) *Filter {
	return f.add(column, OpNe, value)
}

func (f *Filter) In(column string, values []string) *Filter {
	return f.add(column, OpIn, values)
}

func (f *Filter) IsNull(column string) *Filter {
	return f.add(column, OpIsNull, nil)
}

func (f *Filter) add(column string, op Op, value any) *Filter {
	if column == "" {
		return f
	}
	f.conds = append(f.conds, Condition{Column: column, Op: op, Value: value})
	return f
}

// Merge appends other's conditions to f.
func (f *Filter) Merge(other *Filter) *Filter {
	if other != nil {
		f.conds = append(f.conds, other.conds...)
	}
	return f
}

func (f *Filter) Conditions() []Condition {
	if f == nil {
		return nil
	}
	out := make([]Condition, len(f.conds))
	copy(out, f.conds)
	return out
}

func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.conds)
}

func (f *Filter) apply(db *gorm.DB) *gorm.DB {
	if f == nil {
		return db
	}
	for _, c := range f.conds {
		col := clause.Column{Name: c.Column}
		switch c.Op {
		case OpEq:
			db = db.Where(clause.Eq{Column: col, Value: c.Value})
		case OpIEq:
			db = db.Where(clause.Expr{SQL: "LOWER(?) = LOWER(?)", Vars: []any{col, c.Value}})
		case OpNe:
			db = db.Where(clause.Neq{Column: col, Value: c.Value})
		case OpIn:
			values, _ := c.Value.([]string)
			in := make([]any, len(values))
			for i, v := range values {
				in[i] = v
			}
			db = db.Where(clause.IN{Column: col, Values: in})
		case OpIsNull:
			db = db.Where(clause.Eq{Column: col, Value: nil})
		}
	}
	return db
}
