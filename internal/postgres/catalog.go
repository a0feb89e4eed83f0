package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/maremansa/internal/domain"
)

// DBTX is the subset of pgxpool.Pool used by the store.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// CatalogStore implements domain.CatalogSource using PostgreSQL.
type CatalogStore struct {
	db DBTX
}

// Compile-time check that CatalogStore implements domain.CatalogSource.
var _ domain.CatalogSource = (*CatalogStore)(nil)

// NewCatalogStore creates a new PostgreSQL-backed catalog store.
func NewCatalogStore(db DBTX) *CatalogStore {
	return &CatalogStore{db: db}
}

// Ping checks the database connection.
func (s *CatalogStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

const listActiveProducts = `
SELECT
    p.id::text,
    p.number,
    p.name,
    p.description,
    p.material,
    p.roll_width,
    p.available_heights,
    p.price::text,
    mr.url, mr.filename,
    ms.url, ms.filename,
    md.url, md.filename,
    p.sort_order,
    (SELECT COALESCE(array_agg(c.name ORDER BY pc.position, c.sort_order), '{}')
       FROM product_categories pc
       JOIN categories c ON c.id = pc.category_id
      WHERE pc.product_id = p.id) AS categories,
    (SELECT COALESCE(array_agg(t.name ORDER BY pt.position, t.sort_order), '{}')
       FROM product_textures pt
       JOIN textures t ON t.id = pt.texture_id
      WHERE pt.product_id = p.id) AS textures
FROM products p
LEFT JOIN media mr ON mr.id = p.image_room_id
LEFT JOIN media ms ON ms.id = p.image_sheet_id
LEFT JOIN media md ON md.id = p.image_detail_id
WHERE p.is_active
ORDER BY p.sort_order, p.number`

// productRow mirrors one row of listActiveProducts.
type productRow struct {
	ID               string
	Number           string
	Name             string
	Description      string
	Material         pgtype.Text
	RollWidth        pgtype.Text
	AvailableHeights pgtype.Text
	Price            pgtype.Text
	RoomURL          pgtype.Text
	RoomFile         pgtype.Text
	SheetURL         pgtype.Text
	SheetFile        pgtype.Text
	DetailURL        pgtype.Text
	DetailFile       pgtype.Text
	SortOrder        int32
	Categories       []string
	Textures         []string
}

// ListActiveProducts returns active products ordered for display.
func (s *CatalogStore) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx, listActiveProducts)
	if err != nil {
		return nil, domain.Unavailable(err, "catalog.list_products", "failed to list products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var r productRow
		if err := rows.Scan(
			&r.ID, &r.Number, &r.Name, &r.Description,
			&r.Material, &r.RollWidth, &r.AvailableHeights, &r.Price,
			&r.RoomURL, &r.RoomFile,
			&r.SheetURL, &r.SheetFile,
			&r.DetailURL, &r.DetailFile,
			&r.SortOrder, &r.Categories, &r.Textures,
		); err != nil {
			return nil, domain.Internal(err, "catalog.list_products", "failed to scan product")
		}
		p, err := productFromRow(r)
		if err != nil {
			return nil, domain.Internal(err, "catalog.list_products", "invalid product record")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable(err, "catalog.list_products", "failed to read products")
	}

	return products, nil
}

// productFromRow maps a row to the domain, filling CMS defaults for empty
// descriptive fields and the base price when none is stored.
func productFromRow(r productRow) (domain.Product, error) {
	price := domain.DefaultPrice
	if r.Price.Valid && r.Price.String != "" {
		d, err := decimal.NewFromString(r.Price.String)
		if err != nil {
			return domain.Product{}, fmt.Errorf("product %s: parse price %q: %w", r.Number, r.Price.String, err)
		}
		if !d.IsZero() {
			price = d
		}
	}

	return domain.Product{
		ID:               r.ID,
		Number:           r.Number,
		Name:             r.Name,
		Categories:       nonNil(r.Categories),
		Textures:         nonNil(r.Textures),
		ImageRoom:        mediaURL(r.RoomURL, r.RoomFile),
		ImageSheet:       mediaURL(r.SheetURL, r.SheetFile),
		ImageDetail:      mediaURL(r.DetailURL, r.DetailFile),
		Description:      r.Description,
		Material:         textOr(r.Material, domain.DefaultMaterial),
		RollWidth:        textOr(r.RollWidth, domain.DefaultRollWidth),
		AvailableHeights: textOr(r.AvailableHeights, domain.DefaultAvailableHeights),
		Price:            decimal.NewNullDecimal(price),
		SortOrder:        r.SortOrder,
	}, nil
}

const listCategories = `
SELECT name, slug, COALESCE(description, ''), sort_order
FROM categories
ORDER BY sort_order, name`

// ListCategories returns all categories ordered for display.
func (s *CatalogStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, listCategories)
	if err != nil {
		return nil, domain.Unavailable(err, "catalog.list_categories", "failed to list categories")
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Slug, &c.Description, &c.SortOrder); err != nil {
			return nil, domain.Internal(err, "catalog.list_categories", "failed to scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable(err, "catalog.list_categories", "failed to read categories")
	}

	return categories, nil
}

const listTextures = `
SELECT t.name, m.url, m.filename, COALESCE(t.description, ''), t.sort_order
FROM textures t
LEFT JOIN media m ON m.id = t.image_id
ORDER BY t.sort_order, t.name`

// ListTextures returns all textures ordered for display.
func (s *CatalogStore) ListTextures(ctx context.Context) ([]domain.Texture, error) {
	rows, err := s.db.Query(ctx, listTextures)
	if err != nil {
		return nil, domain.Unavailable(err, "catalog.list_textures", "failed to list textures")
	}
	defer rows.Close()

	var textures []domain.Texture
	for rows.Next() {
		var (
			t         domain.Texture
			url, file pgtype.Text
		)
		if err := rows.Scan(&t.Name, &url, &file, &t.Description, &t.SortOrder); err != nil {
			return nil, domain.Internal(err, "catalog.list_textures", "failed to scan texture")
		}
		t.Image = mediaURL(url, file)
		textures = append(textures, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable(err, "catalog.list_textures", "failed to read textures")
	}

	return textures, nil
}

// mediaURL prefers the stored URL, then the bare filename, then the placeholder.
func mediaURL(url, filename pgtype.Text) string {
	if url.Valid && url.String != "" {
		return url.String
	}
	if filename.Valid && filename.String != "" {
		return filename.String
	}
	return domain.PlaceholderImage
}

func textOr(t pgtype.Text, fallback string) string {
	if t.Valid && t.String != "" {
		return t.String
	}
	return fallback
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
