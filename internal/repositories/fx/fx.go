package fx

import (
	"github.com/Nico-ST/SvenSwipe/internal/repositories/history"
	"go.uber.org/fx"
)

var Module = fx.Options(
	history.Module,
)
