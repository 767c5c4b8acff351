package handler

import (
	"github.com/ecommerce/backoffice/internal/interfaces/http/middleware"
	"github.com/ecommerce/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ReportRoutes creates the route group for sales report downloads. The
// filtered export is restricted to administrators.
func ReportRoutes(handler *ReportHandler, authMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("reports", "/reports")
	group.Use(authMiddleware)

	group.GET("/export/pdf", handler.ExportTemplatePDF)

	admin := group.Group("admin", "/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/report", handler.ExportSalesReport)

	return group
}

// SystemRoutes creates the route group for public system information
func SystemRoutes(handler *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "/system")
	group.GET("/info", handler.GetSystemInfo)
	return group
}
