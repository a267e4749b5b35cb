package catalog

import (
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, description, description_large, price, sale_price, on_sale, installments, stock, category, subcategory, image_url, image1_url, image2_url, image3_url, featured, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
	`
	listByCategoryQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY name
	`
	listByCategoryAndSubQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1 AND subcategory = $2
		ORDER BY name
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, description, description_large, price, sale_price, on_sale, installments, stock, category, subcategory, image_url, image1_url, image2_url, image3_url, featured, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())
		RETURNING id, created_at, updated_at
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			description_large = $3,
			price = $4,
			sale_price = $5,
			on_sale = $6,
			installments = $7,
			stock = $8,
			category = $9,
			subcategory = $10,
			image_url = $11,
			image1_url = $12,
			image2_url = $13,
			image3_url = $14,
			featured = $15,
			updated_at = now()
		WHERE id = $16
		RETURNING created_at, updated_at
	`
	deleteProductQuery     = `DELETE FROM products WHERE id = $1`
	categoriesQuery        = `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`
	subcategoriesQuery     = `SELECT DISTINCT subcategory FROM products WHERE category = $1 AND subcategory IS NOT NULL ORDER BY subcategory`
	deleteAllProductsQuery = `DELETE FROM products`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct is the single mapping point between catalog rows and the
// canonical Product shape. The row id maps to Product.ID, nothing else does.
func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.DescriptionLarge,
		&p.Price,
		&p.SalePrice,
		&p.OnSale,
		&p.Installments,
		&p.Stock,
		&p.Category,
		&p.Subcategory,
		&p.ImageURL,
		&p.Image1URL,
		&p.Image2URL,
		&p.Image3URL,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *PostgresRepository) queryProducts(query string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List() ([]Product, error) {
	return r.queryProducts(listProductsQuery)
}

func (r *PostgresRepository) ListByCategory(category string) ([]Product, error) {
	return r.queryProducts(listByCategoryQuery, category)
}

func (r *PostgresRepository) ListByCategoryAndSubcategory(category, subcategory string) ([]Product, error) {
	return r.queryProducts(listByCategoryAndSubQuery, category, subcategory)
}

func (r *PostgresRepository) GetByID(id int64) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog get: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) queryStrings(query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Categories() ([]string, error) {
	return r.queryStrings(categoriesQuery)
}

func (r *PostgresRepository) Subcategories(category string) ([]string, error) {
	return r.queryStrings(subcategoriesQuery, category)
}

func insertArgs(p Product) []any {
	return []any{
		p.Name, p.Description, p.DescriptionLarge,
		p.Price, p.SalePrice, p.OnSale, p.Installments, p.Stock,
		p.Category, p.Subcategory,
		p.ImageURL, p.Image1URL, p.Image2URL, p.Image3URL,
		p.Featured,
	}
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery, insertArgs(p)...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("catalog insert: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int64, p Product) (Product, error) {
	args := append(insertArgs(p), id)
	err := r.db.QueryRow(updateProductQuery, args...).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog update: %w", err)
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int64) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return fmt.Errorf("catalog delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll wipes and reloads the catalog inside one transaction so a
// failed bulk import cannot leave a half-replaced table behind.
func (r *PostgresRepository) ReplaceAll(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("catalog replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteAllProductsQuery); err != nil {
		return fmt.Errorf("catalog replace: %w", err)
	}
	for _, p := range products {
		if _, err := tx.Exec(
			`INSERT INTO products (name, description, description_large, price, sale_price, on_sale, installments, stock, category, subcategory, image_url, image1_url, image2_url, image3_url, featured, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())`,
			insertArgs(p)...,
		); err != nil {
			return fmt.Errorf("catalog replace: %w", err)
		}
	}
	return tx.Commit()
}
