package graphql

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productimport.GO/api"
	graphqlpkg "productimport.GO/graphql"
	"productimport.GO/graphqlserver"
)

func init() {
	api.RegisterModule(RegisterGraphQLRoutes)
}

// RegisterGraphQLRoutes adds POST /api/graphql, the read side of imports.
func RegisterGraphQLRoutes(apiGroup *echo.Group, db *gorm.DB) {
	schema, err := graphqlserver.NewSchema(db)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	h := storeContextMiddleware(graphqlserver.Handler(schema))
	apiGroup.POST("/graphql", echo.WrapHandler(h))
}

func storeContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := graphqlpkg.WithStoreID(r.Context(), graphqlpkg.GetStoreID(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
