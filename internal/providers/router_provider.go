package providers

import (
	"net/http"
	"swiperank/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Delete(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) Delete(url string, handler http.Handler) {
	rp.add(http.MethodDelete, url, handler)
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Method:  method,
		Handler: handler,
	})
}

// GetRoutes returns one route per URL. Handlers registered for several
// methods on the same URL are merged into a single method dispatcher.
func (rp *RouterProvider) GetRoutes() []structures.Route {
	order := make([]string, 0, len(rp.routes))
	byURL := make(map[string]map[string]http.Handler)
	for _, r := range rp.routes {
		if _, ok := byURL[r.Url]; !ok {
			byURL[r.Url] = make(map[string]http.Handler)
			order = append(order, r.Url)
		}
		byURL[r.Url][r.Method] = r.Handler
	}

	routes := make([]structures.Route, 0, len(order))
	for _, url := range order {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: methodHandler(byURL[url]),
		})
	}
	return routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
