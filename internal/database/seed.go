package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"blogconsole/internal/slug"
)

// seedCategory is one node of the starter tree.
type seedCategory struct {
	vi, en   string
	children []seedCategory
}

var starterTree = []seedCategory{
	{vi: "Tin tức", en: "News", children: []seedCategory{
		{vi: "Thế giới", en: "World"},
		{vi: "Trong nước", en: "Domestic"},
	}},
	{vi: "Công nghệ", en: "Technology", children: []seedCategory{
		{vi: "Lập trình", en: "Programming"},
	}},
	{vi: "Đời sống", en: "Lifestyle"},
}

// Seed fills an empty categories table with a small starter tree so the
// console has something to reorder in database mode. It is a no-op once
// any category exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	var insert func(nodes []seedCategory, parent *string) error
	insert = func(nodes []seedCategory, parent *string) error {
		for i, n := range nodes {
			var id string
			err := tx.QueryRowContext(ctx, `
				INSERT INTO categories (slug, name_vi, name_en, parent_id, sort_order)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				slug.Generate(n.en), n.vi, n.en, parent, i,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("seed insert category %q: %w", n.en, err)
			}
			inserted++
			if err := insert(n.children, &id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(starterTree, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with starter categories", "count", inserted)
	return nil
}
