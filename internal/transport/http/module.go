package http

import (
	"go.uber.org/fx"

	menutransport "github.com/bitbites/canteen/internal/transport/http/menu"
	ordertransport "github.com/bitbites/canteen/internal/transport/http/order"
	profiletransport "github.com/bitbites/canteen/internal/transport/http/profile"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	ordertransport.Module,
	menutransport.Module,
	profiletransport.Module,
)
