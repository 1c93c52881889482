package product

import (
	"database/sql"

	"go.uber.org/zap"

	"bikeshop/internal/events"
	"bikeshop/internal/product/controller"
	"bikeshop/internal/product/repository"
	"bikeshop/internal/product/service"
)

func NewModule(db *sql.DB, hub *events.Hub, logger *zap.Logger) *controller.ProductsController {
	repo := repository.NewMySQLProductsRepository(db)
	svc := service.NewProductsService(repo, logger)
	return controller.NewProductsController(svc, hub, logger)
}
