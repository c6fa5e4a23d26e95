package catalog

import (
	"github.com/redbarber/pos/internal/catalog/repository"
	"github.com/redbarber/pos/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
