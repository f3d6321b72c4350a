package http

import "github.com/labstack/echo/v4"

// Handler defines HTTP route registration interface.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// HandlerGroup registers several handlers as one.
type HandlerGroup []Handler

func (g HandlerGroup) RegisterRoutes(e *echo.Echo) {
	for _, h := range g {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
}

// Handlers combines handlers into a single Handler.
func Handlers(hs ...Handler) Handler { return HandlerGroup(hs) }
