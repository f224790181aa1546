package profile

import "go.uber.org/fx"

// Module provides the profile service to Fx.
var Module = fx.Provide(NewService)
