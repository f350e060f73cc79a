// Package storefrontserver exposes the storefront administration use cases over HTTP.
package storefrontserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/storefront-admin/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Public routes skip the session gate.
	Public bool
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	AuthAPI     AuthAPI
	ClientAPI   ClientAPI
	CatalogAPI  CatalogAPI
	CartAPI     CartAPI
	PurchaseAPI PurchaseAPI
	// Logger receives internal failures; slog.Default when nil.
	Logger *slog.Logger
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(withResponder(apierrors.NewResponder(handleFunctions.Logger, authErrorMapper)))
	gate := handleFunctions.AuthAPI.RequireSession()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if !route.Public {
			handlers = append([]gin.HandlerFunc{gate}, handlers...)
		}
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without one.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "Healthz",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: Healthz,
			Public:      true,
		},
		{
			Name:        "Login",
			Method:      http.MethodPost,
			Pattern:     "/v1/login",
			HandlerFunc: handleFunctions.AuthAPI.Login,
			Public:      true,
		},
		{
			Name:        "Logout",
			Method:      http.MethodPost,
			Pattern:     "/v1/logout",
			HandlerFunc: handleFunctions.AuthAPI.Logout,
		},
		{
			Name:        "ListClients",
			Method:      http.MethodGet,
			Pattern:     "/v1/clients",
			HandlerFunc: handleFunctions.ClientAPI.ListClients,
		},
		{
			Name:        "CreateClient",
			Method:      http.MethodPost,
			Pattern:     "/v1/clients",
			HandlerFunc: handleFunctions.ClientAPI.CreateClient,
		},
		{
			Name:        "GetClient",
			Method:      http.MethodGet,
			Pattern:     "/v1/clients/:clientId",
			HandlerFunc: handleFunctions.ClientAPI.GetClient,
		},
		{
			Name:        "UpdateClient",
			Method:      http.MethodPut,
			Pattern:     "/v1/clients/:clientId",
			HandlerFunc: handleFunctions.ClientAPI.UpdateClient,
		},
		{
			Name:        "DeleteClient",
			Method:      http.MethodDelete,
			Pattern:     "/v1/clients/:clientId",
			HandlerFunc: handleFunctions.ClientAPI.DeleteClient,
		},
		{
			Name:        "ListCatalog",
			Method:      http.MethodGet,
			Pattern:     "/v1/catalog",
			HandlerFunc: handleFunctions.CatalogAPI.ListCatalog,
		},
		{
			Name:        "ViewCart",
			Method:      http.MethodGet,
			Pattern:     "/v1/cart",
			HandlerFunc: handleFunctions.CartAPI.ViewCart,
		},
		{
			Name:        "ClearCart",
			Method:      http.MethodDelete,
			Pattern:     "/v1/cart",
			HandlerFunc: handleFunctions.CartAPI.ClearCart,
		},
		{
			Name:        "AddToCart",
			Method:      http.MethodPost,
			Pattern:     "/v1/cart/items",
			HandlerFunc: handleFunctions.CartAPI.AddToCart,
		},
		{
			Name:        "RemoveFromCart",
			Method:      http.MethodDelete,
			Pattern:     "/v1/cart/items/:itemId",
			HandlerFunc: handleFunctions.CartAPI.RemoveFromCart,
		},
		{
			Name:        "Checkout",
			Method:      http.MethodPost,
			Pattern:     "/v1/clients/:clientId/checkout",
			HandlerFunc: handleFunctions.PurchaseAPI.Checkout,
		},
		{
			Name:        "ListPurchases",
			Method:      http.MethodGet,
			Pattern:     "/v1/clients/:clientId/purchases",
			HandlerFunc: handleFunctions.PurchaseAPI.ListPurchases,
		},
		{
			Name:        "ListCheckouts",
			Method:      http.MethodGet,
			Pattern:     "/v1/clients/:clientId/checkouts",
			HandlerFunc: handleFunctions.PurchaseAPI.ListCheckouts,
		},
		{
			Name:        "BuildReport",
			Method:      http.MethodGet,
			Pattern:     "/v1/clients/:clientId/report",
			HandlerFunc: handleFunctions.PurchaseAPI.BuildReport,
		},
	}
}

// Healthz reports process liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
