//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/config"
)

// InitializeDependencies creates all dependencies using Wire.
func InitializeDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, func(), error) {
	wire.Build(
		AppSet,
		wire.Struct(new(Dependencies), "*"),
	)
	return nil, nil, nil
}
