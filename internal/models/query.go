// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Default and maximum page sizes for list queries.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortOrder is the direction of a list query.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query is the common list query shared by every paginated endpoint.
// Filters carries the entity-specific extras (status, role, post_id...).
type Query struct {
	Keyword   string
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
	Filters   map[string]string
}

// QueryFromValues reads a list query from URL values. Only filter keys in
// allowed are kept; out-of-range paging falls back to the defaults.
func QueryFromValues(v url.Values, allowed ...string) Query {
	q := Query{
		Keyword: strings.TrimSpace(v.Get("keyword")),
		Page:    1,
		Limit:   DefaultLimit,
		SortBy:  v.Get("sort_by"),
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(v.Get("limit")); err == nil && l > 0 {
		q.Limit = min(l, MaxLimit)
	}
	switch SortOrder(strings.ToLower(v.Get("sort_order"))) {
	case SortAsc:
		q.SortOrder = SortAsc
	case SortDesc:
		q.SortOrder = SortDesc
	}
	for _, key := range allowed {
		if val := v.Get(key); val != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[key] = val
		}
	}
	return q
}

// Values encodes the query for the remote API. Zero fields are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", string(q.SortOrder))
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, q.Filters[k])
	}
	return v
}

// PageMeta is the pagination block of a list response.
type PageMeta struct {
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewPageMeta computes the pagination block for total rows split into pages
// of limit rows, positioned at page.
func NewPageMeta(total, page, limit int) PageMeta {
	if limit < 1 {
		limit = DefaultLimit
	}
	pages := (total + limit - 1) / limit
	return PageMeta{
		Total:           total,
		Page:            page,
		Limit:           limit,
		TotalPages:      pages,
		HasNextPage:     page < pages,
		HasPreviousPage: page > 1,
	}
}
