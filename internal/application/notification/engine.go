package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// CheckResult resultado de un chequeo individual del motor.
type CheckResult struct {
	Created int
	Err     error
}

// Engine genera alertas de negocio (stock bajo, vencimientos, ventas, clientes)
// y las persiste como notificaciones. Cada emisión pasa por el cache de
// supresión de duplicados; dos corridas dentro de la ventana no duplican
// la misma alerta.
type Engine struct {
	notifRepo   repository.NotificationRepository
	productRepo repository.ProductRepository
	dedup       *DedupCache
	cfg         config.NotifConfig
	log         *logger.Logger
}

// NewEngine construye el motor con su cache de supresión propio.
func NewEngine(
	notifRepo repository.NotificationRepository,
	productRepo repository.ProductRepository,
	cfg config.NotifConfig,
	log *logger.Logger,
) *Engine {
	return &Engine{
		notifRepo:   notifRepo,
		productRepo: productRepo,
		dedup:       NewDedupCache(time.Duration(cfg.DedupMinutes) * time.Minute),
		cfg:         cfg,
		log:         log,
	}
}

// emit persiste la notificación si su clave no está suprimida.
// Retorna true si se creó.
func (e *Engine) emit(companyID, notifType, refID, title, message, priority, category string, data any) (bool, error) {
	key := notifType + ":" + refID
	if !e.dedup.ShouldEmit(key) {
		return false, nil
	}

	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return false, fmt.Errorf("serializar data de notificación: %w", err)
		}
		raw = b
	}

	n := &entity.Notification{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Priority:  priority,
		Category:  category,
		Data:      raw,
		CreatedAt: time.Now(),
	}
	if err := e.notifRepo.Create(n); err != nil {
		return false, err
	}
	e.log.Debug().Str("type", notifType).Str("ref", refID).Msg("notificación creada")
	return true, nil
}

type stockData struct {
	Quantity int `json:"quantity"`
	MinStock int `json:"minStock"`
}

// CheckLowStock recorre todos los productos de la empresa y emite
// OUT_OF_STOCK cuando la cantidad es cero y LOW_STOCK cuando está entre 1 y
// el mínimo. Un producto agotado nunca genera LOW_STOCK.
func (e *Engine) CheckLowStock(companyID string) CheckResult {
	products, err := e.productRepo.ListAllByCompany(companyID)
	if err != nil {
		return CheckResult{Err: err}
	}

	created := 0
	for _, p := range products {
		data := stockData{Quantity: p.Quantity, MinStock: p.MinStockLevel}
		switch {
		case p.IsOutOfStock():
			ok, err := e.emit(companyID, entity.NotifOutOfStock, p.ID,
				"Producto agotado",
				fmt.Sprintf("%s está agotado", p.Name),
				entity.PriorityUrgent, entity.NotifCategoryInventory, data)
			if err != nil {
				return CheckResult{Created: created, Err: err}
			}
			if ok {
				created++
			}
		case p.IsLowStock():
			ok, err := e.emit(companyID, entity.NotifLowStock, p.ID,
				"Stock bajo",
				fmt.Sprintf("%s tiene %d unidades (mínimo %d)", p.Name, p.Quantity, p.MinStockLevel),
				entity.PriorityHigh, entity.NotifCategoryInventory, data)
			if err != nil {
				return CheckResult{Created: created, Err: err}
			}
			if ok {
				created++
			}
		}
	}
	return CheckResult{Created: created}
}

// CheckExpiry emite EXPIRED para productos vencidos y EXPIRING_SOON para los
// que vencen dentro de la ventana configurada. La prioridad escala a HIGH
// cuando faltan pocos días.
func (e *Engine) CheckExpiry(companyID string) CheckResult {
	now := time.Now()
	created := 0

	expired, err := e.productRepo.ListExpired(companyID, now)
	if err != nil {
		return CheckResult{Err: err}
	}
	for _, p := range expired {
		ok, err := e.emit(companyID, entity.NotifExpired, p.ID,
			"Producto vencido",
			fmt.Sprintf("%s venció el %s", p.Name, p.ExpiryDate.Format("02/01/2006")),
			entity.PriorityUrgent, entity.NotifCategoryInventory, nil)
		if err != nil {
			return CheckResult{Created: created, Err: err}
		}
		if ok {
			created++
		}
	}

	until := now.AddDate(0, 0, e.cfg.ExpiryWindowDays)
	expiring, err := e.productRepo.ListExpiring(companyID, now, until)
	if err != nil {
		return CheckResult{Created: created, Err: err}
	}
	for _, p := range expiring {
		daysLeft := int(p.ExpiryDate.Sub(now).Hours() / 24)
		priority := entity.PriorityMedium
		if daysLeft <= e.cfg.ExpiryUrgentDays {
			priority = entity.PriorityHigh
		}
		ok, err := e.emit(companyID, entity.NotifExpiringSoon, p.ID,
			"Producto por vencer",
			fmt.Sprintf("%s vence en %d días (%s)", p.Name, daysLeft, p.ExpiryDate.Format("02/01/2006")),
			priority, entity.NotifCategoryInventory, nil)
		if err != nil {
			return CheckResult{Created: created, Err: err}
		}
		if ok {
			created++
		}
	}
	return CheckResult{Created: created}
}

// CheckReorder emite un REORDER_NEEDED agregado cuando hay productos en o por
// debajo del mínimo.
func (e *Engine) CheckReorder(companyID string) CheckResult {
	products, err := e.productRepo.ListBelowMinStock(companyID)
	if err != nil {
		return CheckResult{Err: err}
	}
	if len(products) == 0 {
		return CheckResult{}
	}
	ok, err := e.emit(companyID, entity.NotifReorderNeeded, companyID,
		"Reposición necesaria",
		fmt.Sprintf("%d productos necesitan reposición", len(products)),
		entity.PriorityMedium, entity.NotifCategoryInventory,
		map[string]int{"count": len(products)})
	if err != nil {
		return CheckResult{Err: err}
	}
	if ok {
		return CheckResult{Created: 1}
	}
	return CheckResult{}
}

// NotifySaleCompleted emite SALE_COMPLETED y, si el total supera el umbral
// configurado, además HIGH_VALUE_SALE.
func (e *Engine) NotifySaleCompleted(companyID string, sale *entity.Sale, items []*entity.SaleItem) error {
	units := 0
	for _, it := range items {
		units += it.Quantity
	}
	if _, err := e.emit(companyID, entity.NotifSaleCompleted, sale.ID,
		"Venta registrada",
		fmt.Sprintf("Venta por $%s (%d unidades)", sale.TotalAmount.StringFixed(0), units),
		entity.PriorityLow, entity.NotifCategorySales,
		map[string]any{"total": sale.TotalAmount, "units": units}); err != nil {
		return err
	}

	threshold := decimal.NewFromInt(int64(e.cfg.HighValueThreshold))
	if sale.TotalAmount.GreaterThan(threshold) {
		if _, err := e.emit(companyID, entity.NotifHighValueSale, sale.ID,
			"Venta de alto valor",
			fmt.Sprintf("Venta por $%s supera el umbral de $%s",
				sale.TotalAmount.StringFixed(0), threshold.StringFixed(0)),
			entity.PriorityHigh, entity.NotifCategorySales, nil); err != nil {
			return err
		}
	}
	return nil
}

// NotifyNewCustomer emite NEW_CUSTOMER al registrar un cliente.
func (e *Engine) NotifyNewCustomer(companyID string, customer *entity.Customer) error {
	_, err := e.emit(companyID, entity.NotifNewCustomer, customer.ID,
		"Nuevo cliente",
		fmt.Sprintf("%s se registró como cliente", customer.Name),
		entity.PriorityLow, entity.NotifCategoryCustomers, nil)
	return err
}

// NotifyRefundProcessed emite REFUND_PROCESSED al reembolsar una venta.
func (e *Engine) NotifyRefundProcessed(companyID string, sale *entity.Sale) error {
	_, err := e.emit(companyID, entity.NotifRefundProcessed, sale.ID,
		"Reembolso procesado",
		fmt.Sprintf("Reembolso de la venta %s por $%s", sale.ID[:8], sale.TotalAmount.StringFixed(0)),
		entity.PriorityMedium, entity.NotifCategorySales, nil)
	return err
}

// NotifySystemEvent emite SYSTEM_EVENT (errores de base de datos, salud del servicio).
func (e *Engine) NotifySystemEvent(companyID, refID, title, message, priority string) error {
	_, err := e.emit(companyID, entity.NotifSystemEvent, refID,
		title, message, priority, entity.NotifCategorySystem, nil)
	return err
}

// RunComprehensiveCheck corre los tres chequeos de inventario en paralelo y
// agrega los resultados. Un sub-chequeo fallido no revierte las notificaciones
// ya creadas por sus hermanos ni se reintenta.
func (e *Engine) RunComprehensiveCheck(ctx context.Context, companyID string) (created, failed int) {
	results := make([]CheckResult, 3)
	g, _ := errgroup.WithContext(ctx)
	checks := []func(string) CheckResult{e.CheckLowStock, e.CheckExpiry, e.CheckReorder}
	for i, check := range checks {
		g.Go(func() error {
			results[i] = check(companyID)
			return nil
		})
	}
	_ = g.Wait() // los sub-chequeos reportan su error en el resultado

	for _, r := range results {
		created += r.Created
		if r.Err != nil {
			failed++
			e.log.Error().Err(r.Err).Str("company_id", companyID).Msg("chequeo de notificaciones falló")
		}
	}
	return created, failed
}
