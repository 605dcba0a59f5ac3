package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/shopspring/decimal"
)

type catalogSnapshot struct {
	standard   map[string]domain.Price
	promotions map[domain.PromotionCode]map[string]domain.Price
	// standard prices of the snapshot this one replaced
	previous map[string]domain.Price
}

// SQLCatalog serves product existence and prices from an in-memory snapshot
// of the products and promotion_prices tables. Refresh replaces the snapshot.
type SQLCatalog struct {
	db   *sql.DB
	snap atomic.Pointer[catalogSnapshot]
}

func NewSQLCatalog(db *sql.DB) *SQLCatalog {
	c := &SQLCatalog{db: db}
	c.snap.Store(&catalogSnapshot{
		standard:   map[string]domain.Price{},
		promotions: map[domain.PromotionCode]map[string]domain.Price{},
	})
	return c
}

func scanPrice(raw string) (domain.Price, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return domain.Price{}, err
	}
	return domain.NewPrice(d)
}

// Refresh loads both tables. On error the previous snapshot stays.
func (c *SQLCatalog) Refresh(ctx context.Context) error {
	next := &catalogSnapshot{
		standard:   map[string]domain.Price{},
		promotions: map[domain.PromotionCode]map[string]domain.Price{},
	}

	rows, err := c.db.QueryContext(ctx, `SELECT code, price FROM products`)
	if err != nil {
		return fmt.Errorf("query products: %w", err)
	}
	for rows.Next() {
		var code, raw string
		if err := rows.Scan(&code, &raw); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan product: %w", err)
		}
		p, err := scanPrice(raw)
		if err != nil {
			_ = rows.Close()
			return fmt.Errorf("product %s: %w", code, err)
		}
		next.standard[code] = p
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = c.db.QueryContext(ctx, `SELECT promotion_code, product_code, price FROM promotion_prices`)
	if err != nil {
		return fmt.Errorf("query promotion prices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var promo, code, raw string
		if err := rows.Scan(&promo, &code, &raw); err != nil {
			return fmt.Errorf("scan promotion price: %w", err)
		}
		p, err := scanPrice(raw)
		if err != nil {
			return fmt.Errorf("promotion %s product %s: %w", promo, code, err)
		}
		key := domain.PromotionCode(promo)
		if next.promotions[key] == nil {
			next.promotions[key] = map[string]domain.Price{}
		}
		next.promotions[key][code] = p
	}
	if err := rows.Err(); err != nil {
		return err
	}

	next.previous = c.snap.Load().standard
	c.snap.Store(next)
	return nil
}

// Run refreshes the snapshot every interval until ctx is done.
func (c *SQLCatalog) Run(ctx context.Context, interval time.Duration) {
	l := logging.New("catalog")
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := c.Refresh(ctx); err != nil {
				l.Warn("catalog refresh failed", "error", err)
			}
		}
	}
}

// Lookup returns the standard price of a product, or ErrNotFound.
func (c *SQLCatalog) Lookup(code string) (domain.Price, error) {
	p, ok := c.snap.Load().standard[code]
	if !ok {
		return domain.Price{}, fmt.Errorf("product %s: %w", code, ErrNotFound)
	}
	return p, nil
}

func (c *SQLCatalog) ProductCodeExists(code domain.ProductCode) bool {
	_, err := c.Lookup(code.String())
	return err == nil
}

// StandardPrice is only called for codes that passed ProductCodeExists. A
// product dropped by a refresh in between keeps the price it had in the
// replaced snapshot.
func (c *SQLCatalog) StandardPrice(code domain.ProductCode) domain.Price {
	snap := c.snap.Load()
	if p, ok := snap.standard[code.String()]; ok {
		return p
	}
	if p, ok := snap.previous[code.String()]; ok {
		return p
	}
	logging.New("catalog").Warn("no standard price, pricing at zero", "product_code", code.String())
	return domain.Price{}
}

func (c *SQLCatalog) PromotionPrice(promo domain.PromotionCode, code domain.ProductCode) (domain.Price, bool) {
	p, ok := c.snap.Load().promotions[promo][code.String()]
	return p, ok
}

var (
	_ usecase.ProductCatalog  = (*SQLCatalog)(nil)
	_ usecase.StandardPrices  = (*SQLCatalog)(nil)
	_ usecase.PromotionPrices = (*SQLCatalog)(nil)
)
