// Package graphql mounts the read-only GraphQL endpoint.
package graphql

import (
	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	graphqlpkg "github.com/iasolb/EdgewaterInventoryManager/graphql"
	"github.com/iasolb/EdgewaterInventoryManager/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

func RegisterGraphQLRoutes(e *echo.Echo, d *api.Deps) {
	schema, err := graphqlserver.NewSchema(d.Farm, d.Sessions)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	RegisterGraphQLRoutesWithSchema(e, schema)
}

// RegisterGraphQLRoutesWithSchema registers /graphql with a prepared schema.
func RegisterGraphQLRoutesWithSchema(e *echo.Echo, schema *graphql.Schema) {
	h := graphqlpkg.SessionMiddleware(graphqlserver.Handler(schema))
	e.POST("/graphql", echo.WrapHandler(h))
	e.GET("/graphql", echo.WrapHandler(h))
}
