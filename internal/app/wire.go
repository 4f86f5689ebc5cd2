//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	clienthttp "github.com/tair/pos-backoffice/internal/client/delivery/http"
	clientcmd "github.com/tair/pos-backoffice/internal/client/usecase/command"
	clientquery "github.com/tair/pos-backoffice/internal/client/usecase/query"
	inventoryhttp "github.com/tair/pos-backoffice/internal/inventory/delivery/http"
	inventorycmd "github.com/tair/pos-backoffice/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/pos-backoffice/internal/inventory/usecase/query"
	invoicehttp "github.com/tair/pos-backoffice/internal/invoice/delivery/http"
	invoicecmd "github.com/tair/pos-backoffice/internal/invoice/usecase/command"
	invoicequery "github.com/tair/pos-backoffice/internal/invoice/usecase/query"
	orderhttp "github.com/tair/pos-backoffice/internal/order/delivery/http"
	ordercmd "github.com/tair/pos-backoffice/internal/order/usecase/command"
	orderquery "github.com/tair/pos-backoffice/internal/order/usecase/query"
	producthttp "github.com/tair/pos-backoffice/internal/product/delivery/http"
	productcmd "github.com/tair/pos-backoffice/internal/product/usecase/command"
	productquery "github.com/tair/pos-backoffice/internal/product/usecase/query"
	reporthttp "github.com/tair/pos-backoffice/internal/report/delivery/http"
	reportquery "github.com/tair/pos-backoffice/internal/report/usecase/query"
	"github.com/tair/pos-backoffice/kafka"
	"github.com/tair/pos-backoffice/pkg/cache"
	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/storage"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideTransactor,
	ProvideClientRepository,
	ProvideProductRepository,
	ProvideInventoryRepository,
	ProvideOrderRepository,
	ProvideInvoiceRepository,
	ProvideProductCounter,
	ProvideProductCatalog,
	ProvideOrderReader,
	ProvideInvoiceSource,
)

var ClientSet = wire.NewSet(
	clientcmd.NewCreateClientHandler,
	clientcmd.NewUpdateClientHandler,
	clientcmd.NewSetClientActiveHandler,
	clientquery.NewGetClientHandler,
	clientquery.NewListClientsHandler,
	clienthttp.NewClientHandler,
)

var ProductSet = wire.NewSet(
	productcmd.NewCreateProductHandler,
	productcmd.NewUpdateProductHandler,
	productcmd.NewDeleteProductHandler,
	productquery.NewGetProductHandler,
	productquery.NewListProductsHandler,
	producthttp.NewProductHandler,
)

var InventorySet = wire.NewSet(
	ProvideInventoryConfig,
	inventorycmd.NewLedger,
	ProvideStockLedger,
	inventorycmd.NewSetQuantityHandler,
	inventoryquery.NewGetInventoryHandler,
	inventoryquery.NewListInventoryHandler,
	inventoryhttp.NewInventoryHandler,
)

var OrderSet = wire.NewSet(
	ordercmd.NewCreateOrderHandler,
	ordercmd.NewUpdateOrderHandler,
	ordercmd.NewCancelOrderHandler,
	ordercmd.NewUpdateStatusHandler,
	ProvideStatusUpdater,
	orderquery.NewGetOrderHandler,
	orderquery.NewListOrdersHandler,
	orderquery.NewOrdersByDateRangeHandler,
	orderhttp.NewOrderHandler,
)

var InvoiceSet = wire.NewSet(
	ProvideCacheInvalidator,
	invoicecmd.NewGenerateInvoiceHandler,
	invoicecmd.NewGenerateInvoicePdfHandler,
	invoicequery.NewGetInvoiceByOrderHandler,
	invoicehttp.NewInvoiceHandler,
)

var ReportSet = wire.NewSet(
	ProvideReportCache,
	reportquery.NewDaySalesHandler,
	reporthttp.NewReportHandler,
)

// InitializeHandlers builds every HTTP handler with its dependencies
func InitializeHandlers(
	db *gorm.DB,
	cfg *config.Config,
	publisher kafka.EventPublisher,
	reports *cache.Cache,
	store storage.ObjectStore,
	renderer invoicecmd.Renderer,
) (*Handlers, error) {
	wire.Build(
		RepositorySet,
		ClientSet,
		ProductSet,
		InventorySet,
		OrderSet,
		InvoiceSet,
		ReportSet,
		NewHandlers,
	)
	return nil, nil
}
