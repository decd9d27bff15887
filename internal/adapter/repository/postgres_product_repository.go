package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/pkg/errors"
	"armabazar/pkg/utils"
)

type postgresProductRepository struct {
	db *sqlx.DB
}

func NewPostgresProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &postgresProductRepository{
		db: db,
	}
}

const productColumns = `id, user_id, title, description, price, listing_type, category, subcategory,
    condition, main_image, images, location, is_active, is_sold, view_count, created_at, updated_at`

type productRow struct {
	entity.Product
	ImagesRaw string `db:"images"`
}

func (row *productRow) toEntity() *entity.Product {
	product := row.Product
	product.Images = parseImageList(row.ImagesRaw)
	return &product
}

func (r *postgresProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = utils.GenerateID()
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, user_id, title, description, price, listing_type, category, subcategory,
             condition, main_image, images, location, is_active, is_sold, view_count, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		product.ID, product.UserID, product.Title, product.Description, product.Price,
		product.ListingType, product.Category, product.Subcategory, product.Condition,
		product.MainImage, encodeImageList(product.Images), product.Location,
		product.IsActive, product.IsSold, product.ViewCount, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row,
		fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}
	return row.toEntity(), nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx,
		`UPDATE products
         SET title = $2, description = $3, price = $4, listing_type = $5, category = $6,
             subcategory = $7, condition = $8, main_image = $9, images = $10, location = $11,
             is_active = $12, is_sold = $13, updated_at = $14
         WHERE id = $1`,
		product.ID, product.Title, product.Description, product.Price, product.ListingType,
		product.Category, product.Subcategory, product.Condition, product.MainImage,
		encodeImageList(product.Images), product.Location, product.IsActive, product.IsSold,
		product.UpdatedAt)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *postgresProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	var conditions []string
	var args []interface{}

	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE AND is_sold = FALSE")
	}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Category != "" {
		addCondition("category = $%d", filter.Category)
	}
	if filter.ListingType != "" {
		addCondition("listing_type = $%d", filter.ListingType)
	}
	if filter.Condition != "" {
		addCondition("condition = $%d", filter.Condition)
	}
	if filter.Location != "" {
		addCondition("location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.MinPrice > 0 {
		addCondition("price >= $%d", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		addCondition("price <= $%d", filter.MaxPrice)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern)
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR subcategory ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"+where, args...); err != nil {
		return nil, 0, errors.Internal("Failed to count products", err)
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, orderClause(filter.Sort), len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list products", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var row productRow
		if err := rows.StructScan(&row); err != nil {
			return nil, 0, errors.Internal("Failed to scan product", err)
		}
		products = append(products, row.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Internal("Failed to iterate products", err)
	}

	return products, total, nil
}

func orderClause(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC"
	case "price-low":
		return "price ASC"
	case "price-high":
		return "price DESC"
	case "name-asc":
		return "title ASC"
	case "name-desc":
		return "title DESC"
	default: // newest
		return "created_at DESC"
	}
}

func (r *postgresProductRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Product, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM products WHERE user_id = $1`, userID); err != nil {
		return nil, 0, errors.Internal("Failed to count products", err)
	}

	rows, err := r.db.QueryxContext(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, productColumns),
		userID, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list products", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var row productRow
		if err := rows.StructScan(&row); err != nil {
			return nil, 0, errors.Internal("Failed to scan product", err)
		}
		products = append(products, row.toEntity())
	}

	return products, total, rows.Err()
}

func (r *postgresProductRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return errors.Internal("Failed to increment views", err)
	}
	return nil
}

func (r *postgresProductRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *postgresProductRepository) SetSold(ctx context.Context, id string, sold bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_sold = $2, updated_at = NOW() WHERE id = $1`, id, sold)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("Product", nil)
	}
	return nil
}

func (r *postgresProductRepository) Count(ctx context.Context, onlyActive bool) (int64, error) {
	query := `SELECT COUNT(*) FROM products`
	if onlyActive {
		query += ` WHERE is_active = TRUE AND is_sold = FALSE`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, errors.Internal("Failed to count products", err)
	}
	return total, nil
}
