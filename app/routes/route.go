package routes

import (
	"github.com/Rakhulsr/go-catalog-api/app/handlers"
	"github.com/Rakhulsr/go-catalog-api/app/middlewares"
	"github.com/Rakhulsr/go-catalog-api/app/storage"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, files storage.FileStore) *mux.Router {
	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)

	h := handlers.NewHandler(db, files)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/categories", h.ListCategories).Methods("GET")
	api.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	api.HandleFunc("/categories/{identifier}", h.ShowCategory).Methods("GET")
	api.HandleFunc("/categories/{id:[0-9]+}", h.UpdateCategory).Methods("PUT", "PATCH")
	api.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods("DELETE")

	api.HandleFunc("/sub-categories", h.ListSubCategories).Methods("GET")
	api.HandleFunc("/sub-categories", h.CreateSubCategory).Methods("POST")
	api.HandleFunc("/sub-categories/{identifier}", h.ShowSubCategory).Methods("GET")
	api.HandleFunc("/sub-categories/{id:[0-9]+}", h.UpdateSubCategory).Methods("PUT", "PATCH")
	api.HandleFunc("/sub-categories/{id:[0-9]+}", h.DeleteSubCategory).Methods("DELETE")

	api.HandleFunc("/products", h.ListProducts).Methods("GET")
	api.HandleFunc("/products", h.CreateProduct).Methods("POST")
	api.HandleFunc("/products/{identifier}", h.ShowProduct).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}", h.UpdateProduct).Methods("PUT", "PATCH")
	api.HandleFunc("/products/{id:[0-9]+}", h.DeleteProduct).Methods("DELETE")

	return router
}
