package controllers_fx

import (
	"go.uber.org/fx"

	"dreamoracle/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewDreamController),
	fx.Provide(controllers.NewInterpretationController),
	fx.Provide(controllers.NewCreditsController),
	fx.Provide(controllers.NewSymbolController),
	fx.Provide(controllers.NewAnalyticsController),
	fx.Provide(controllers.NewExportController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewPaymentController))
