package schemas

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/models"
	"github.com/go-playground/validator/v10"
)

type GenderForm struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CategoryForm struct {
	Name     string `json:"name" validate:"required,max=255"`
	GenderID string `json:"genderId" validate:"required"`
}

type DetailCategoryForm struct {
	Name       string `json:"name" validate:"required,max=255"`
	CategoryID string `json:"categoryId" validate:"required"`
}

type PromotionForm struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=255"`
	StartDay    *Day   `json:"startDay"`
	EndDay      *Day   `json:"endDay"`
}

type TrademarkForm struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Day accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp.
type Day struct {
	time.Time
}

func (d *Day) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid day %q", s)
	}
	d.Time = t
	return nil
}

func (d *Day) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.UTC()
	return &t
}

func NewGenderSchema(v *validator.Validate) *FormSchema[GenderForm, models.Gender] {
	return &FormSchema[GenderForm, models.Gender]{
		Validate: v,
		Normalize: func(f *GenderForm) {
			f.Name = helpers.CollapseSpaces(f.Name)
		},
		Build: func(f *GenderForm) *models.Gender {
			return &models.Gender{Name: f.Name}
		},
		Fields: []string{"Name"},
	}
}

func NewCategorySchema(v *validator.Validate) *FormSchema[CategoryForm, models.Category] {
	return &FormSchema[CategoryForm, models.Category]{
		Validate: v,
		Normalize: func(f *CategoryForm) {
			f.Name = helpers.CollapseSpaces(f.Name)
			f.GenderID = strings.TrimSpace(f.GenderID)
		},
		Build: func(f *CategoryForm) *models.Category {
			return &models.Category{Name: f.Name, GenderID: f.GenderID}
		},
		Fields: []string{"Name", "GenderID"},
	}
}

func NewDetailCategorySchema(v *validator.Validate) *FormSchema[DetailCategoryForm, models.DetailCategory] {
	return &FormSchema[DetailCategoryForm, models.DetailCategory]{
		Validate: v,
		Normalize: func(f *DetailCategoryForm) {
			f.Name = helpers.CollapseSpaces(f.Name)
			f.CategoryID = strings.TrimSpace(f.CategoryID)
		},
		Build: func(f *DetailCategoryForm) *models.DetailCategory {
			return &models.DetailCategory{Name: f.Name, CategoryID: f.CategoryID}
		},
		Fields: []string{"Name", "CategoryID"},
	}
}

func NewPromotionSchema(v *validator.Validate) *FormSchema[PromotionForm, models.Promotion] {
	return &FormSchema[PromotionForm, models.Promotion]{
		Validate: v,
		Normalize: func(f *PromotionForm) {
			f.Name = helpers.CollapseSpaces(f.Name)
			f.Description = strings.TrimSpace(f.Description)
		},
		Refine: func(f *PromotionForm) helpers.FieldErrors {
			start, end := f.StartDay.ptr(), f.EndDay.ptr()
			if start != nil && end != nil && end.Before(*start) {
				return helpers.FieldErrors{"endDay": "endDay must not be before startDay."}
			}
			return nil
		},
		Build: func(f *PromotionForm) *models.Promotion {
			return &models.Promotion{
				Name:        f.Name,
				Description: f.Description,
				StartDay:    f.StartDay.ptr(),
				EndDay:      f.EndDay.ptr(),
			}
		},
		Fields: []string{"Name", "Description", "StartDay", "EndDay"},
	}
}

func NewTrademarkSchema(v *validator.Validate) *FormSchema[TrademarkForm, models.Trademark] {
	return &FormSchema[TrademarkForm, models.Trademark]{
		Validate: v,
		Normalize: func(f *TrademarkForm) {
			f.Name = helpers.CollapseSpaces(f.Name)
		},
		Build: func(f *TrademarkForm) *models.Trademark {
			return &models.Trademark{Name: f.Name}
		},
		Fields: []string{"Name"},
	}
}
