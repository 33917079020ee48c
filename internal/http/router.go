package http

import (
	"github.com/gin-gonic/gin"

	"github.com/KalyaKKK/tugas5-jda/internal/http/controller"
	"github.com/KalyaKKK/tugas5-jda/internal/http/middleware"
	"github.com/KalyaKKK/tugas5-jda/internal/web"
)

func InitRouter(server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.Logger())
	server.Use(middleware.CORS())

	server.GET("/health", ctr.Ping)

	// Product endpoints
	products := server.Group("/products")
	{
		products.GET("", productCtr.ListProducts)
		products.POST("", productCtr.CreateProduct)
		products.GET("/:id", productCtr.GetProduct)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	// Embedded catalog UI
	server.GET("/", web.Index)
	server.StaticFS("/static", web.Static())

	return server
}
