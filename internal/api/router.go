package api

import (
	"net/http"

	"disaster-response/internal/api/middleware"
	"disaster-response/internal/models"
	"disaster-response/internal/modules/chatbot"
	"disaster-response/internal/modules/delivery"
	"disaster-response/internal/modules/inventory"
	"disaster-response/internal/modules/predictapi"
	"disaster-response/internal/modules/sos"
	"disaster-response/internal/modules/users"
	"disaster-response/internal/notify"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	userHandler *users.Handler,
	sosHandler *sos.Handler,
	inventoryHandler *inventory.Handler,
	deliveryHandler *delivery.Handler,
	predictHandler *predictapi.Handler,
	chatbotHandler *chatbot.Handler,
	notifyHandler *notify.Handler,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)
	volunteerOnly := middleware.RoleRequired(models.RoleVolunteer)
	userOnly := middleware.RoleRequired(models.RoleUser)

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Disaster Response Coordination API"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
	}

	// --- User (Reporter) Routes ---
	sosGroup := e.Group("/sos", authMiddleware, userOnly)
	{
		sosGroup.POST("", sosHandler.CreateSos)
		sosGroup.GET("", sosHandler.ListMySos)
	}
	e.POST("/predict", predictHandler.PredictRisk, authMiddleware, userOnly)

	chatbotGroup := e.Group("/chatbot", authMiddleware, userOnly)
	{
		chatbotGroup.POST("", chatbotHandler.Chat)
		chatbotGroup.GET("", chatbotHandler.History)
	}

	// --- Shared Routes ---
	e.GET("/resources", inventoryHandler.ListResources, authMiddleware)

	// --- Volunteer Routes ---
	volunteerGroup := e.Group("/volunteer", authMiddleware, volunteerOnly)
	{
		volunteerGroup.GET("/sos", sosHandler.ListVolunteerSos)
		volunteerGroup.POST("/sos/:sosId/resolve", sosHandler.ResolveSos)
		volunteerGroup.GET("/resources", inventoryHandler.ListInStock)
		volunteerGroup.POST("/deliveries", deliveryHandler.RequestDelivery)
		volunteerGroup.GET("/deliveries", deliveryHandler.ListMyDeliveries)
		volunteerGroup.PUT("/deliveries/:deliveryId", deliveryHandler.UpdateDelivery)
	}

	// --- Admin Routes ---
	adminGroup := e.Group("/admin", authMiddleware, adminOnly)
	{
		adminGroup.GET("/sos", sosHandler.ListAllSos)
		adminGroup.POST("/sos/:sosId/assign", sosHandler.AssignSos)
		adminGroup.POST("/resources", inventoryHandler.AddResource)
		adminGroup.PUT("/resources/:resourceId", inventoryHandler.UpdateResource)
		adminGroup.GET("/deliveries", deliveryHandler.ListPendingDeliveries)
	}

	// --- Real-time Notifications ---
	e.GET("/ws/notifications", notifyHandler.Subscribe, authMiddleware,
		middleware.RoleRequired(models.RoleAdmin, models.RoleVolunteer))
}
