package handlers

import "github.com/labstack/echo/v4"

// RegisterHandlers 绑定所有路由， userAuth 只用在公告相关的路由上
func RegisterHandlers(e *echo.Echo, a *App, userAuth echo.MiddlewareFunc) {
	e.HTTPErrorHandler = a.ErrorHandler

	e.GET("/api/healthz", a.HealthCheck)

	auth := e.Group("/api/auth")
	auth.POST("/register", a.AuthRegister)
	auth.POST("/login", a.AuthLogin)

	notices := e.Group("/api/notices", userAuth)
	notices.POST("", a.NoticeCreate)
	notices.GET("", a.NoticeList)
	notices.GET("/:id", a.NoticeGet)
	notices.PUT("/:id", a.NoticeUpdate)
	notices.DELETE("/:id", a.NoticeDelete)
}
