package promotion

import (
	"github.com/redbarber/pos/internal/promotion/repository"
	"github.com/redbarber/pos/internal/promotion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("promotion.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
