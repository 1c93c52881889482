package part

import (
	"database/sql"

	"go.uber.org/zap"

	"bikeshop/internal/events"
	"bikeshop/internal/part/controller"
	"bikeshop/internal/part/repository"
	"bikeshop/internal/part/service"
)

func NewModule(db *sql.DB, hub *events.Hub, logger *zap.Logger) *controller.PartsController {
	repo := repository.NewMySQLPartsRepository(db)
	svc := service.NewPartsService(repo, logger)
	return controller.NewPartsController(svc, hub, logger)
}
