package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/dukerupert/maremansa/internal/catalog"
	"github.com/dukerupert/maremansa/internal/domain"
)

// SeedCategories is the full category list of the collection. The built-in
// catalog only carries the four used by the grid sidebar.
var SeedCategories = []domain.Category{
	{Name: "Marinho", Slug: "marinho", SortOrder: 1},
	{Name: "Infantil", Slug: "infantil", SortOrder: 2},
	{Name: "Banheiro", Slug: "banheiro", SortOrder: 3},
	{Name: "Minimalista", Slug: "minimalista", SortOrder: 4},
	{Name: "Verão", Slug: "verao", SortOrder: 5},
	{Name: "Pessoas", Slug: "pessoas", SortOrder: 6},
	{Name: "Aventura", Slug: "aventura", SortOrder: 7},
	{Name: "Geométrico", Slug: "geometrico", SortOrder: 8},
}

// Beginner starts transactions; satisfied by *pgxpool.Pool.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SeedResult counts the rows each seed step inserted.
type SeedResult struct {
	Media      int64
	Categories int64
	Textures   int64
	Products   int64
	Links      int64
}

// Seed loads the collection's initial content in one transaction. Rows that
// already exist are left untouched, so running it twice is safe.
func Seed(ctx context.Context, db Beginner, logger *slog.Logger) (SeedResult, error) {
	var res SeedResult
	fb := catalog.Fallback()

	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		for _, url := range seedMediaURLs(fb) {
			n, err := exec(ctx, tx, insertMedia, url, "")
			if err != nil {
				return fmt.Errorf("seed media %s: %w", url, err)
			}
			res.Media += n
		}

		for _, c := range SeedCategories {
			n, err := exec(ctx, tx, insertCategory, c.Name, c.Slug, c.SortOrder)
			if err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
			res.Categories += n
		}

		for _, t := range fb.Textures {
			n, err := exec(ctx, tx, insertTexture, t.Name, t.Image, t.SortOrder)
			if err != nil {
				return fmt.Errorf("seed texture %s: %w", t.Name, err)
			}
			res.Textures += n
		}

		for _, p := range fb.Products {
			n, err := exec(ctx, tx, insertProduct,
				p.Number, p.Name, p.Description,
				p.Material, p.RollWidth, p.AvailableHeights,
				domain.DefaultPrice.String(),
				p.ImageRoom, p.ImageSheet, p.ImageDetail,
				p.SortOrder,
			)
			if err != nil {
				return fmt.Errorf("seed product %s: %w", p.Number, err)
			}
			res.Products += n

			for i, name := range p.Categories {
				n, err := exec(ctx, tx, linkCategory, p.Number, name, i)
				if err != nil {
					return fmt.Errorf("link %s to category %s: %w", p.Number, name, err)
				}
				res.Links += n
			}
			for i, name := range p.Textures {
				n, err := exec(ctx, tx, linkTexture, p.Number, name, i)
				if err != nil {
					return fmt.Errorf("link %s to texture %s: %w", p.Number, name, err)
				}
				res.Links += n
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	logger.Info("seed complete",
		"media", res.Media,
		"categories", res.Categories,
		"textures", res.Textures,
		"products", res.Products,
		"links", res.Links,
	)
	return res, nil
}

func exec(ctx context.Context, tx pgx.Tx, sql string, args ...any) (int64, error) {
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// seedMediaURLs lists every image referenced by the built-in catalog, once.
func seedMediaURLs(c domain.Catalog) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}
	for _, t := range c.Textures {
		add(t.Image)
	}
	for _, p := range c.Products {
		for _, img := range p.Images() {
			add(img)
		}
	}
	return urls
}

const insertMedia = `
INSERT INTO media (url, alt)
SELECT $1::text, $2::text
WHERE NOT EXISTS (SELECT 1 FROM media WHERE url = $1::text)`

const insertCategory = `
INSERT INTO categories (name, slug, sort_order)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO NOTHING`

const insertTexture = `
INSERT INTO textures (name, image_id, sort_order)
VALUES ($1, (SELECT id FROM media WHERE url = $2 LIMIT 1), $3)
ON CONFLICT (name) DO NOTHING`

const insertProduct = `
INSERT INTO products (
    number, name, description, material, roll_width, available_heights, price,
    image_room_id, image_sheet_id, image_detail_id, sort_order
) VALUES (
    $1, $2, $3, $4, $5, $6, $7::numeric,
    (SELECT id FROM media WHERE url = $8 LIMIT 1),
    (SELECT id FROM media WHERE url = $9 LIMIT 1),
    (SELECT id FROM media WHERE url = $10 LIMIT 1),
    $11
)
ON CONFLICT (number) DO NOTHING`

const linkCategory = `
INSERT INTO product_categories (product_id, category_id, position)
SELECT p.id, c.id, $3
FROM products p, categories c
WHERE p.number = $1 AND c.name = $2
ON CONFLICT DO NOTHING`

const linkTexture = `
INSERT INTO product_textures (product_id, texture_id, position)
SELECT p.id, t.id, $3
FROM products p, textures t
WHERE p.number = $1 AND t.name = $2
ON CONFLICT DO NOTHING`
