package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/event"
	"github.com/rrboots/storefront/pkg/logger"
	"github.com/rrboots/storefront/pkg/metrics"
	"github.com/rrboots/storefront/pkg/orm"
)

// EventSaleCompleted fires after a sale commits, carrying the *models.Sale.
const EventSaleCompleted = "sale.completed"

// SaleLine is one requested item of a checkout.
type SaleLine struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Size      string `json:"size"       validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

// InsufficientStockError reports the first line that cannot be fulfilled.
// Available is the quantity on hand at the moment of the check.
type InsufficientStockError struct {
	ProductID uint
	Product   string
	Size      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q size %s: requested %d, available %d",
		e.Product, e.Size, e.Requested, e.Available)
}

// SaleService records sales and decrements inventory atomically.
type SaleService struct {
	sales *saleWriter
}

func NewSaleService() *SaleService {
	return &SaleService{sales: &saleWriter{}}
}

// Record validates stock for every line, then commits the sale and the
// inventory decrements in a single transaction. The decrement is
// conditional on quantity still covering the request, so two concurrent
// checkouts can never both take the last unit: the loser's UPDATE matches
// zero rows and the whole transaction rolls back with
// InsufficientStockError.
func (s *SaleService) Record(customerName, customerEmail, customerPhone string, lines []SaleLine) (models.Sale, error) {
	if len(lines) == 0 {
		return models.Sale{}, errors.New("sale has no items")
	}

	// Pre-check outside the transaction to reject hopeless requests with a
	// precise error before taking any locks.
	if err := s.precheck(lines); err != nil {
		if ise := (*InsufficientStockError)(nil); errors.As(err, &ise) {
			metrics.SalesRejected.WithLabelValues("stock").Inc()
		}
		return models.Sale{}, err
	}

	var sale models.Sale
	err := orm.DB().Transaction(func(tx *gorm.DB) error {
		committed, err := s.sales.commit(tx, customerName, customerEmail, customerPhone, lines)
		if err != nil {
			return err
		}
		sale = committed
		return nil
	})
	if err != nil {
		if ise := (*InsufficientStockError)(nil); errors.As(err, &ise) {
			metrics.SalesRejected.WithLabelValues("stock").Inc()
		} else {
			metrics.SalesRejected.WithLabelValues("error").Inc()
		}
		return models.Sale{}, err
	}

	metrics.SalesCompleted.Inc()
	for _, item := range sale.Items {
		metrics.InventoryUnitsSold.Add(float64(item.Quantity))
	}

	logger.Info("sale recorded",
		"sale_id", sale.ID,
		"items", len(sale.Items),
		"total", sale.Total.String(),
	)

	event.Fire(EventSaleCompleted, &sale)
	return sale, nil
}

// precheck verifies every line against current stock without locking.
func (s *SaleService) precheck(lines []SaleLine) error {
	for _, line := range lines {
		var product models.Product
		err := orm.DB().
			Model(&models.Product{}).
			Where("id = ?", line.ProductID).
			First(&product)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d not found", line.ProductID)
			}
			return err
		}

		var ps models.ProductSize
		err = orm.DB().
			Model(&models.ProductSize{}).
			Where("product_id = ? AND size = ?", line.ProductID, line.Size).
			First(&ps)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &InsufficientStockError{
				ProductID: line.ProductID,
				Product:   product.Name,
				Size:      line.Size,
				Requested: line.Quantity,
				Available: 0,
			}
		}
		if err != nil {
			return err
		}
		if ps.Quantity < line.Quantity {
			return &InsufficientStockError{
				ProductID: line.ProductID,
				Product:   product.Name,
				Size:      line.Size,
				Requested: line.Quantity,
				Available: ps.Quantity,
			}
		}
	}
	return nil
}

// saleWriter holds the transactional write path, separated so tests can
// drive it against an in-memory database.
type saleWriter struct{}

func (w *saleWriter) commit(tx *gorm.DB, customerName, customerEmail, customerPhone string, lines []SaleLine) (models.Sale, error) {
	total := decimal.Zero
	items := make([]models.SaleItem, 0, len(lines))

	for _, line := range lines {
		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			return models.Sale{}, err
		}

		// Conditional decrement: only succeeds while quantity still covers
		// the request. RowsAffected == 0 means someone got there first.
		res := tx.Model(&models.ProductSize{}).
			Where("product_id = ? AND size = ? AND quantity >= ?",
				line.ProductID, line.Size, line.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
		if res.Error != nil {
			return models.Sale{}, res.Error
		}
		if res.RowsAffected == 0 {
			var ps models.ProductSize
			available := 0
			if err := tx.Where("product_id = ? AND size = ?", line.ProductID, line.Size).
				First(&ps).Error; err == nil {
				available = ps.Quantity
			}
			return models.Sale{}, &InsufficientStockError{
				ProductID: line.ProductID,
				Product:   product.Name,
				Size:      line.Size,
				Requested: line.Quantity,
				Available: available,
			}
		}

		items = append(items, models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	sale := models.Sale{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		CustomerPhone: customerPhone,
		Status:        models.SaleStatusCompleted,
		Total:         total,
		Items:         items,
	}
	if err := tx.Create(&sale).Error; err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}
