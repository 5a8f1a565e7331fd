package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strumworks/guitarshop/internal/httpx"
	"github.com/strumworks/guitarshop/internal/shop"
)

func newRouter(st *shop.Store) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World!"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// auth
	r.POST("/signup", signupHandler(st))
	r.POST("/login", loginHandler(st))
	r.POST("/admin/login", adminLoginHandler(st))

	// admin catalog + dashboard
	r.GET("/admin/stats", adminStatsHandler(st))
	r.GET("/admin/products", listProductsHandler(st))
	r.POST("/admin/products", createProductHandler(st))
	r.PUT("/admin/products/:id", updateProductHandler(st))
	r.DELETE("/admin/products/:id", deleteProductHandler(st))
	r.PUT("/admin/products/:id/soldout", soldOutHandler(st))

	// public catalog
	r.GET("/products", listProductsHandler(st))
	r.GET("/products/:id", getProductHandler(st))
	r.GET("/products/category/:category", productsByCategoryHandler(st))

	// orders
	r.POST("/checkout", checkoutHandler(st))
	r.GET("/orders/:user_id", userOrdersHandler(st))

	// Deprecated alias surface kept for the legacy frontend; delegates to
	// the same store as /admin/products.
	r.GET("/list-items", listProductsHandler(st))
	r.POST("/create-item", createItemHandler(st))
	r.PUT("/update-item/:id", updateItemHandler(st))
	r.DELETE("/delete-item/:id", deleteItemHandler(st))

	return r
}
