package components

import (
	"roadready/internal/handler"
	"roadready/internal/handler/api"
	"roadready/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewUserHandler,
		api.NewCarHandler,
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewReviewHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	user *api.UserHandler,
	car *api.CarHandler,
	reservation *api.ReservationHandler,
	payment *api.PaymentHandler,
	review *api.ReviewHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		User:        user,
		Car:         car,
		Reservation: reservation,
		Payment:     payment,
		Review:      review,
	}
}

func NewMiddlewares(auth *middleware.AuthMiddleware, logger *middleware.Logger, limiter *middleware.RateLimiter) handler.Middlewares {
	return handler.Middlewares{Auth: auth, Logger: logger, RateLimit: limiter}
}
