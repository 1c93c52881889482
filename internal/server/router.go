package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	custctrl "bikeshop/internal/customproduct/controller"
	"bikeshop/internal/events"
	partctrl "bikeshop/internal/part/controller"
	prodctrl "bikeshop/internal/product/controller"
)

func NewRouter(
	parts *partctrl.PartsController,
	products *prodctrl.ProductsController,
	customProducts *custctrl.CustomProductsController,
	hub *events.Hub,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/parts", func(r chi.Router) {
			r.Get("/", parts.HandleListParts)
			r.Get("/options", parts.HandlePartOptions)
			r.Post("/", parts.HandleCreatePart)
			r.Get("/{id}", parts.HandleGetPart)
			r.Put("/{id}", parts.HandleUpdatePart)
			r.Patch("/{id}", parts.HandlePatchPart)
			r.Delete("/{id}", parts.HandleDeletePart)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.HandleListProducts)
			r.Post("/", products.HandleCreateProduct)
			r.Get("/{id}", products.HandleGetProduct)
			r.Put("/{id}", products.HandleUpdateProduct)
			r.Delete("/{id}", products.HandleDeleteProduct)
		})

		r.Route("/custom-products", func(r chi.Router) {
			r.Get("/", customProducts.HandleList)
			r.Post("/", customProducts.HandleCreate)
			r.Get("/{id}", customProducts.HandleGet)
			r.Put("/{id}", customProducts.HandleUpdate)
			r.Post("/{id}/parts", customProducts.HandleAttachPart)
			r.Patch("/{id}/parts", customProducts.HandleReplaceParts)
			r.Delete("/{id}", customProducts.HandleDelete)
		})
	})

	r.Get("/ws", hub.HandleWS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("route not found", zap.String("path", r.URL.Path))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"route not found"}`))
	})

	return r
}
