package migration

import (
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.CallerModel{},
		&models.CallerStateModel{},
		&models.LeadModel{},
		&models.AssignmentModel{},
		&models.RRPointerModel{},
		&models.DailyCounterModel{},
	}
}
