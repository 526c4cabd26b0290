// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"blogconsole/internal/categorytree"
	"blogconsole/internal/models"
	"blogconsole/internal/slug"
)

// CategoryStore reads and writes categories directly in PostgreSQL. It
// serves the same category operations as the remote API client, and acts
// as the tree fetcher and reorder gateway when the console owns the data.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id::text, slug, name_vi, name_en, description, parent_id::text, sort_order, created_at, updated_at`

// categorySortColumns maps accepted sort_by values to columns.
var categorySortColumns = map[string]string{
	"name_vi":    "name_vi",
	"name_en":    "name_en",
	"order":      "sort_order",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Slug, &c.NameVI, &c.NameEN, &c.Description,
		&c.ParentID, &c.Order, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// all returns every category ordered by parent and position.
func (s *CategoryStore) all(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+`
		FROM categories ORDER BY parent_id NULLS FIRST, sort_order, name_vi`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FetchTree loads the whole category tree with display labels.
func (s *CategoryStore) FetchTree(ctx context.Context) (categorytree.Tree, error) {
	cats, err := s.all(ctx)
	if err != nil {
		return categorytree.Tree{}, fmt.Errorf("fetch tree: %w", err)
	}
	items := make([]categorytree.OrderItem, len(cats))
	labels := make(map[string]categorytree.Label, len(cats))
	for i, c := range cats {
		items[i] = categorytree.OrderItem{ID: c.ID, ParentID: c.ParentID, Order: c.Order}
		labels[c.ID] = categorytree.Label{Primary: c.NameVI, Secondary: c.NameEN}
	}
	t, err := categorytree.BuildWithLabels(items, labels)
	if err != nil {
		return categorytree.Tree{}, fmt.Errorf("fetch tree: %w", err)
	}
	return t, nil
}

// CategoryTree returns every category nested under its parent, siblings in
// display order.
func (s *CategoryStore) CategoryTree(ctx context.Context) ([]models.Category, error) {
	cats, err := s.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("category tree: %w", err)
	}
	children := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range cats {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}
	var nest func(level []models.Category) []models.Category
	nest = func(level []models.Category) []models.Category {
		for i := range level {
			level[i].Children = nest(children[level[i].ID])
		}
		return level
	}
	return nest(roots), nil
}

// SubmitOrder writes a complete reorder batch in one transaction. The batch
// must describe a well-formed forest and every id must exist, otherwise
// nothing is written and the error wraps categorytree.ErrServerRejected.
// Database failures wrap categorytree.ErrNetwork.
func (s *CategoryStore) SubmitOrder(ctx context.Context, items []categorytree.OrderItem) (int, error) {
	if _, err := categorytree.Build(items); err != nil {
		return 0, fmt.Errorf("submit order: %w: %w", categorytree.ErrServerRejected, err)
	}
	for _, it := range items {
		if _, err := uuid.Parse(it.ID); err != nil {
			return 0, fmt.Errorf("submit order: %w: invalid id %q", categorytree.ErrServerRejected, it.ID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("submit order begin tx: %w: %w", categorytree.ErrNetwork, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE categories SET parent_id = $1, sort_order = $2, updated_at = NOW()
		WHERE id = $3`)
	if err != nil {
		return 0, fmt.Errorf("submit order prepare: %w: %w", categorytree.ErrNetwork, err)
	}
	defer stmt.Close()

	for _, it := range items {
		res, err := stmt.ExecContext(ctx, it.ParentID, it.Order, it.ID)
		if err != nil {
			return 0, fmt.Errorf("submit order update %s: %w: %w", it.ID, categorytree.ErrNetwork, err)
		}
		if n, _ := res.RowsAffected(); n != 1 {
			return 0, fmt.Errorf("submit order: %w: category %s does not exist", categorytree.ErrServerRejected, it.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("submit order commit: %w: %w", categorytree.ErrNetwork, err)
	}
	return len(items), nil
}

// ListCategories returns one page of categories. The keyword matches either
// name; the parent_id filter narrows to one level ("root" for top level).
func (s *CategoryStore) ListCategories(ctx context.Context, q models.Query) (*models.Page[models.Category], error) {
	var (
		where []string
		args  []any
	)
	if q.Keyword != "" {
		args = append(args, "%"+q.Keyword+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(name_vi ILIKE $"+n+" OR name_en ILIKE $"+n+")")
	}
	if parent := q.Filters["parent_id"]; parent != "" {
		if parent == "root" {
			where = append(where, "parent_id IS NULL")
		} else {
			args = append(args, parent)
			where = append(where, "parent_id::text = $"+strconv.Itoa(len(args)))
		}
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories"+clause, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}
	orderBy := "sort_order"
	if col, ok := categorySortColumns[q.SortBy]; ok {
		orderBy = col
	}
	dir := "ASC"
	if q.SortOrder == models.SortDesc {
		dir = "DESC"
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories`+clause+
		` ORDER BY `+orderBy+` `+dir+`, name_vi
		LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &models.Page[models.Category]{Data: items, Meta: models.NewPageMeta(total, page, limit)}, nil
}

// GetCategory retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// CreateCategory inserts a category at the end of its parent's children.
// The slug comes from the English name (Vietnamese as fallback) and gets a
// numeric suffix when taken.
func (s *CategoryStore) CreateCategory(ctx context.Context, in models.CreateCategoryInput) (*models.Category, error) {
	if in.ParentID != nil {
		parent, err := s.GetCategory(ctx, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("create category: %w: parent %s does not exist", categorytree.ErrInvalidMove, *in.ParentID)
		}
	}

	base := slug.Generate(in.NameEN)
	if base == "" {
		base = slug.Generate(in.NameVI)
	}
	sl, err := s.uniqueSlug(ctx, base, "")
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (slug, name_vi, name_en, description, parent_id, sort_order)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM categories WHERE parent_id IS NOT DISTINCT FROM $5::uuid))
		RETURNING `+categoryColumns,
		sl, in.NameVI, in.NameEN, in.Description, in.ParentID,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// UpdateCategory applies the non-nil fields of in. The parent only changes
// when in.MovesParent. Moving a category under itself or one of its
// descendants fails with categorytree.ErrInvalidMove; a category that
// changes parent goes to the end of its new siblings.
func (s *CategoryStore) UpdateCategory(ctx context.Context, id string, in models.UpdateCategoryInput) (*models.Category, error) {
	cur, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if cur == nil {
		return nil, fmt.Errorf("update category %s: %w", id, categorytree.ErrNotFound)
	}

	parent := cur.ParentID
	if in.MovesParent() {
		parent = in.ParentID
	}
	if in.MovesParent() && in.ParentID != nil {
		t, err := s.FetchTree(ctx)
		if err != nil {
			return nil, fmt.Errorf("update category: %w", err)
		}
		if _, ok := categorytree.Find(t, *in.ParentID); !ok {
			return nil, fmt.Errorf("update category: %w: parent %s does not exist", categorytree.ErrInvalidMove, *in.ParentID)
		}
		if categorytree.IsDescendant(t, id, *in.ParentID) {
			return nil, fmt.Errorf("update category: %w: cannot move %s under itself", categorytree.ErrInvalidMove, id)
		}
	}

	next := *cur
	if in.NameVI != nil {
		next.NameVI = *in.NameVI
	}
	if in.NameEN != nil {
		next.NameEN = *in.NameEN
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.NameEN != nil && *in.NameEN != cur.NameEN {
		if next.Slug, err = s.uniqueSlug(ctx, slug.Generate(next.NameEN), id); err != nil {
			return nil, fmt.Errorf("update category: %w", err)
		}
	}

	sameParent := (cur.ParentID == nil && parent == nil) ||
		(cur.ParentID != nil && parent != nil && *cur.ParentID == *parent)

	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			slug = $1, name_vi = $2, name_en = $3, description = $4,
			parent_id = $5,
			sort_order = CASE WHEN $6::boolean THEN sort_order ELSE
				(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM categories
				 WHERE parent_id IS NOT DISTINCT FROM $5::uuid AND id <> $7) END,
			updated_at = NOW()
		WHERE id = $7
		RETURNING `+categoryColumns,
		next.Slug, next.NameVI, next.NameEN, next.Description, parent, sameParent, id,
	)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update category %s: %w", id, categorytree.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category by ID. Children are re-parented to the
// top level (ON DELETE SET NULL).
func (s *CategoryStore) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, categorytree.ErrNotFound)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete category %s: %w", id, categorytree.ErrNotFound)
	}
	return nil
}

// uniqueSlug returns base, or base-2, base-3... whichever is free. The
// category excludeID may keep its own slug.
func (s *CategoryStore) uniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	if base == "" {
		base = "category"
	}
	candidate := base
	for i := 2; i < 1000; i++ {
		var taken bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND id::text <> $2)`,
			candidate, excludeID,
		).Scan(&taken)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
