package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, name, category_id, category_name, price, cost_price,
		quantity, min_stock_level, batch_number, expiry_date, manufacturer, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, category_id, category_name, price, cost_price, quantity, min_stock_level, batch_number, expiry_date, manufacturer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.SKU, product.Name, product.CategoryID, product.CategoryName,
		product.Price, product.CostPrice, product.Quantity, product.MinStockLevel,
		product.BatchNumber, product.ExpiryDate, product.Manufacturer, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, sku), "get product by sku")
}

// GetByCompanyAndName obtiene un producto por empresa y nombre (case-insensitive).
// Usado por el import CSV para clasificar filas como "existing".
func (r *ProductRepo) GetByCompanyAndName(companyID, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND LOWER(name) = LOWER($2)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, name), "get product by name")
}

// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE). Solo dentro de una tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock product")
}

// Update actualiza un producto existente. No modifica Quantity ni CostPrice
// (se manejan vía recepciones de stock y ventas).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, category_name = $4, price = $5, min_stock_level = $6,
			batch_number = $7, expiry_date = $8, manufacturer = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.CategoryName, product.Price,
		product.MinStockLevel, product.BatchNumber, product.ExpiryDate, product.Manufacturer, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo las existencias (usado por ventas, reembolsos y recepciones).
func (r *ProductRepo) UpdateQuantity(productID string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (usado por la recepción de stock).
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET cost_price = $2, updated_at = now() WHERE id = $1`,
		productID, cost,
	)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// UpdateBatchInfo actualiza lote y fecha de vencimiento (última recepción).
func (r *ProductRepo) UpdateBatchInfo(productID, batchNumber string, expiryDate *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET batch_number = $2, expiry_date = $3, updated_at = now() WHERE id = $1`,
		productID, batchNumber, expiryDate,
	)
	if err != nil {
		return fmt.Errorf("update product batch: %w", err)
	}
	return nil
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return r.scanAll(rows)
}

// ListAllByCompany lista todos los productos de la empresa (chequeos de stock y auditorías).
func (r *ProductRepo) ListAllByCompany(companyID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return r.scanAll(rows)
}

// ListExpiring lista productos cuya fecha de vencimiento cae dentro de [from, until].
func (r *ProductRepo) ListExpiring(companyID string, from, until time.Time) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND expiry_date IS NOT NULL AND expiry_date >= $2 AND expiry_date <= $3
		ORDER BY expiry_date ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, from, until)
	if err != nil {
		return nil, fmt.Errorf("list expiring products: %w", err)
	}
	return r.scanAll(rows)
}

// ListExpired lista productos ya vencidos a la fecha dada.
func (r *ProductRepo) ListExpired(companyID string, asOf time.Time) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND expiry_date IS NOT NULL AND expiry_date < $2
		ORDER BY expiry_date ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("list expired products: %w", err)
	}
	return r.scanAll(rows)
}

// ListBelowMinStock lista productos en o por debajo de su nivel mínimo (lista de reposición).
func (r *ProductRepo) ListBelowMinStock(companyID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND quantity <= min_stock_level
		ORDER BY quantity ASC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list below min stock: %w", err)
	}
	return r.scanAll(rows)
}

// CountByCategory cuenta productos asociados a una categoría (guard de borrado).
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.CategoryID, &p.CategoryName, &p.Price, &p.CostPrice,
		&p.Quantity, &p.MinStockLevel, &p.BatchNumber, &p.ExpiryDate, &p.Manufacturer, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.CategoryID, &p.CategoryName, &p.Price, &p.CostPrice,
			&p.Quantity, &p.MinStockLevel, &p.BatchNumber, &p.ExpiryDate, &p.Manufacturer, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
