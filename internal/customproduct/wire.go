package customproduct

import (
	"database/sql"

	"go.uber.org/zap"

	"bikeshop/internal/compat"
	"bikeshop/internal/customproduct/controller"
	"bikeshop/internal/customproduct/repository"
	"bikeshop/internal/customproduct/usecase"
	"bikeshop/internal/events"
	partrepo "bikeshop/internal/part/repository"
	partsvc "bikeshop/internal/part/service"
)

func NewModule(db *sql.DB, hub *events.Hub, logger *zap.Logger) *controller.CustomProductsController {
	repo := repository.NewMySQLCustomProductsRepository(db)
	parts := partsvc.NewPartsService(partrepo.NewMySQLPartsRepository(db), logger)
	validator := compat.NewValidator()
	uc := usecase.NewCustomProductsUseCase(repo, parts, validator, logger)
	return controller.NewCustomProductsController(uc, hub, logger)
}
