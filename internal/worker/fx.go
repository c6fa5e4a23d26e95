package worker

import (
	"github.com/redbarber/pos/internal/worker/repository"
	"github.com/redbarber/pos/internal/worker/service"
	"go.uber.org/fx"
)

var Module = fx.Module("worker.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
