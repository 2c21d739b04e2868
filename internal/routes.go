package internal

import (
	"net/http"
	"swiperank/internal/controllers"
	"swiperank/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, profileController *controllers.ProfileController, collectionsController *controllers.CollectionsController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/feed", http.HandlerFunc(apiController.Feed))
	routers.Post("/swipe", http.HandlerFunc(apiController.Swipe))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	routers.Get("/history", http.HandlerFunc(apiController.History))
	routers.Get("/recommendations", http.HandlerFunc(apiController.Recommendations))

	routers.Get("/profile", http.HandlerFunc(profileController.Get))
	routers.Post("/profile", http.HandlerFunc(profileController.Save))

	routers.Get("/collections", http.HandlerFunc(collectionsController.List))
	routers.Post("/collections", http.HandlerFunc(collectionsController.Create))
	routers.Delete("/collections", http.HandlerFunc(collectionsController.Remove))
	routers.Post("/collections/items", http.HandlerFunc(collectionsController.AddItem))
	return routers
}
