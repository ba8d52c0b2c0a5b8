package domain

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultTake = 100
	MaxTake     = 1000
)

// SortField is a banner column the list can be ordered by.
type SortField string

const (
	SortByID        SortField = "id"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByName      SortField = "name"
)

// Column returns the database column for the field.
func (f SortField) Column() string {
	switch f {
	case SortByCreatedAt:
		return "created_at"
	case SortByUpdatedAt:
		return "updated_at"
	case SortByName:
		return "name"
	default:
		return "id"
	}
}

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// LogicalOperator joins the filter clauses.
type LogicalOperator string

const (
	OperatorAnd LogicalOperator = "AND"
	OperatorOr  LogicalOperator = "OR"
)

// BannerFilter narrows a banner list. Unset fields do not filter.
type BannerFilter struct {
	NameEq       *string
	NameContains *string
	Enabled      *bool
}

// IsEmpty reports whether no clause is set.
func (f BannerFilter) IsEmpty() bool {
	return f.NameEq == nil && f.NameContains == nil && f.Enabled == nil
}

// ListOptions controls paging, ordering and filtering of FindAll.
type ListOptions struct {
	Skip           int
	Take           int
	Sort           SortField
	Order          SortOrder
	Filter         BannerFilter
	FilterOperator LogicalOperator
}

// Validate validates ListOptions
func (o ListOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Skip, validation.Min(0)),
		validation.Field(&o.Take, validation.Min(0), validation.Max(MaxTake)),
		validation.Field(&o.Sort, validation.In(SortByID, SortByCreatedAt, SortByUpdatedAt, SortByName)),
		validation.Field(&o.Order, validation.In(SortAsc, SortDesc)),
		validation.Field(&o.FilterOperator, validation.In(OperatorAnd, OperatorOr)),
	)
}

// Normalized fills defaults: DefaultTake items, newest first, AND filters.
func (o ListOptions) Normalized() ListOptions {
	if o.Take == 0 {
		o.Take = DefaultTake
	}
	if o.Sort == "" {
		o.Sort = SortByCreatedAt
		if o.Order == "" {
			o.Order = SortDesc
		}
	}
	o.Order = SortOrder(strings.ToUpper(string(o.Order)))
	if o.Order == "" {
		o.Order = SortAsc
	}
	o.FilterOperator = LogicalOperator(strings.ToUpper(string(o.FilterOperator)))
	if o.FilterOperator == "" {
		o.FilterOperator = OperatorAnd
	}
	return o
}

// PaginatedList is one page of results plus the unpaged total.
type PaginatedList[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"totalItems"`
}
