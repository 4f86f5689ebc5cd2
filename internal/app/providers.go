package app

import (
	"gorm.io/gorm"

	clienthttp "github.com/tair/pos-backoffice/internal/client/delivery/http"
	clientdomain "github.com/tair/pos-backoffice/internal/client/domain"
	clientrepo "github.com/tair/pos-backoffice/internal/client/repository"
	inventoryhttp "github.com/tair/pos-backoffice/internal/inventory/delivery/http"
	inventorydomain "github.com/tair/pos-backoffice/internal/inventory/domain"
	inventoryrepo "github.com/tair/pos-backoffice/internal/inventory/repository"
	inventorycmd "github.com/tair/pos-backoffice/internal/inventory/usecase/command"
	invoicehttp "github.com/tair/pos-backoffice/internal/invoice/delivery/http"
	invoicedomain "github.com/tair/pos-backoffice/internal/invoice/domain"
	invoicerepo "github.com/tair/pos-backoffice/internal/invoice/repository"
	invoicecmd "github.com/tair/pos-backoffice/internal/invoice/usecase/command"
	orderhttp "github.com/tair/pos-backoffice/internal/order/delivery/http"
	orderdomain "github.com/tair/pos-backoffice/internal/order/domain"
	orderrepo "github.com/tair/pos-backoffice/internal/order/repository"
	ordercmd "github.com/tair/pos-backoffice/internal/order/usecase/command"
	producthttp "github.com/tair/pos-backoffice/internal/product/delivery/http"
	productdomain "github.com/tair/pos-backoffice/internal/product/domain"
	productrepo "github.com/tair/pos-backoffice/internal/product/repository"
	reporthttp "github.com/tair/pos-backoffice/internal/report/delivery/http"
	reportdomain "github.com/tair/pos-backoffice/internal/report/domain"
	reportquery "github.com/tair/pos-backoffice/internal/report/usecase/query"
	"github.com/tair/pos-backoffice/pkg/cache"
	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/database"
)

// Handlers holds the HTTP handler of every bounded context
type Handlers struct {
	Client    *clienthttp.ClientHandler
	Product   *producthttp.ProductHandler
	Inventory *inventoryhttp.InventoryHandler
	Order     *orderhttp.OrderHandler
	Invoice   *invoicehttp.InvoiceHandler
	Report    *reporthttp.ReportHandler
}

// NewHandlers groups the context handlers
func NewHandlers(
	client *clienthttp.ClientHandler,
	product *producthttp.ProductHandler,
	inventory *inventoryhttp.InventoryHandler,
	order *orderhttp.OrderHandler,
	invoice *invoicehttp.InvoiceHandler,
	report *reporthttp.ReportHandler,
) *Handlers {
	return &Handlers{
		Client:    client,
		Product:   product,
		Inventory: inventory,
		Order:     order,
		Invoice:   invoice,
		Report:    report,
	}
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientdomain.Client{},
		&productdomain.Product{},
		&inventorydomain.Inventory{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
	)
}

func ProvideTransactor(db *gorm.DB) database.Transactor {
	return database.NewGormTransactor(db)
}

func ProvideInventoryConfig(cfg *config.Config) config.InventoryConfig {
	return cfg.Inventory
}

// Repositories

func ProvideClientRepository(db *gorm.DB) clientdomain.ClientRepository {
	return clientrepo.NewGormClientRepository(db)
}

func ProvideProductRepository(db *gorm.DB) productdomain.ProductRepository {
	return productrepo.NewGormProductRepository(db)
}

func ProvideInventoryRepository(db *gorm.DB) inventorydomain.InventoryRepository {
	return inventoryrepo.NewTracingInventoryRepository(inventoryrepo.NewGormInventoryRepository(db))
}

func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepo.NewTracingOrderRepository(orderrepo.NewGormOrderRepository(db))
}

func ProvideInvoiceRepository(db *gorm.DB) invoicedomain.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(db)
}

// Cross-context ports

func ProvideProductCounter(repo productdomain.ProductRepository) clientdomain.ProductCounter {
	return repo
}

func ProvideProductCatalog(repo productdomain.ProductRepository) ordercmd.ProductCatalog {
	return repo
}

func ProvideStockLedger(ledger *inventorycmd.Ledger) ordercmd.StockLedger {
	return ledger
}

func ProvideOrderReader(repo orderdomain.OrderRepository) invoicecmd.OrderReader {
	return repo
}

func ProvideStatusUpdater(h *ordercmd.UpdateStatusHandler) invoicecmd.StatusUpdater {
	return h
}

func ProvideCacheInvalidator(c *cache.Cache) invoicecmd.CacheInvalidator {
	return c
}

func ProvideInvoiceSource(repo invoicedomain.InvoiceRepository) reportdomain.InvoiceSource {
	return repo
}

func ProvideReportCache(c *cache.Cache) reportquery.ReportCache {
	return c
}
