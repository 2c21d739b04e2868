package controllers

import (
	"errors"
	"net/http"
	"strings"
	"swiperank/internal/catalog"
	"swiperank/internal/providers"
	"swiperank/internal/services"
)

type CollectionsController struct {
	logger      providers.Logger
	collections services.CollectionServiceInterface
	catalog     catalog.CatalogServiceInterface
}

type createCollectionRequest struct {
	User      string `json:"u"`
	Name      string `json:"name"`
	ProductID string `json:"product_id"`
}

type addItemRequest struct {
	User         string `json:"u"`
	CollectionID string `json:"collection_id"`
	ProductID    string `json:"product_id"`
}

type addItemResponse struct {
	Added bool `json:"added"`
}

type removeResponse struct {
	Removed bool `json:"removed"`
}

func NewCollectionsController(logger providers.Logger, collections services.CollectionServiceInterface, catalogService catalog.CatalogServiceInterface) *CollectionsController {
	return &CollectionsController{logger: logger, collections: collections, catalog: catalogService}
}

func (cc *CollectionsController) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cc.collections.ListCollections(r.Context(), getUser(r)))
}

func (cc *CollectionsController) Create(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	product, ok := cc.catalog.Get(req.ProductID)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	c, err := cc.collections.CreateCollection(r.Context(), bodyUser(req.User), req.Name, product)
	if err != nil {
		cc.logger.Errorf(providers.TypePost, "Failed to create collection: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (cc *CollectionsController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, ok := cc.catalog.Get(req.ProductID); !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	added, err := cc.collections.AddToCollection(r.Context(), bodyUser(req.User), req.CollectionID, req.ProductID)
	if errors.Is(err, services.ErrCollectionNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, addItemResponse{Added: added})
}

func (cc *CollectionsController) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	removed := cc.collections.RemoveCollection(r.Context(), getUser(r), id)
	writeJSON(w, http.StatusOK, removeResponse{Removed: removed})
}
