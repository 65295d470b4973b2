package gateway

import (
	"net/http"

	"ProductAPI/internal/auth"
	"ProductAPI/internal/catalog"
	"ProductAPI/pkg/kit"
)

// Rules is the dispatch table, evaluated top to bottom.
func Rules(users *auth.Server, products *catalog.Server) []kit.Rule {
	return []kit.Rule{
		{Method: http.MethodPost, Pattern: "/users/sign_up", Handler: users.SignUp},
		{Method: http.MethodPost, Pattern: "/users/sign_in", Handler: users.SignIn},
		{Method: http.MethodDelete, Pattern: "/users/sign_out", Handler: users.SignOut},

		{Method: http.MethodGet, Pattern: "/products", Handler: products.Index},
		{Method: http.MethodGet, Pattern: "/products/{id}", Handler: products.Show},
		{Method: http.MethodPost, Pattern: "/products", Handler: products.Create},
		{Method: http.MethodDelete, Pattern: "/products/{id}", Handler: products.Delete},
	}
}
