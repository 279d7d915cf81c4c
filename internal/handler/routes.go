package handler

import (
	"github.com/arkhew/moneta/moneta-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, auth middleware.Authenticator, accountHandler *AccountHandler, monthHandler *MonthHandler, categoryHandler *CategoryHandler, expenseHandler *ExpenseHandler, dashboardHandler *DashboardHandler, settingsHandler *SettingsHandler, sessionHandler *SessionHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(auth.Authenticate())

	// Account routes
	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Month routes
	months := api.Group("/months")
	months.GET("/current", monthHandler.GetCurrent)
	months.PUT("/current", monthHandler.SelectCurrent)
	months.PUT("/current/salary", monthHandler.SetSalary)
	months.GET("/:key", monthHandler.GetByKey)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.Create)
	expenses.GET("", expenseHandler.List)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.Summary)

	// Settings routes
	settings := api.Group("/settings")
	settings.GET("", settingsHandler.Get)
	settings.PUT("", settingsHandler.Update)

	// Session routes
	session := api.Group("/session")
	session.POST("/reset", sessionHandler.Reset)

	// WebSocket endpoint (origin-checked, outside the API group)
	e.GET("/ws", wsHandler.HandleWS)
}
