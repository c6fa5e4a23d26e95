package appointment

import (
	"github.com/redbarber/pos/internal/appointment/repository"
	"github.com/redbarber/pos/internal/appointment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("appointment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
