package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/iasolb/EdgewaterInventoryManager/core/cache"
	"github.com/iasolb/EdgewaterInventoryManager/graphql"
	"github.com/iasolb/EdgewaterInventoryManager/graphql/resolvers"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	Farm     *farm.Service
	Sessions *cache.Sessions
}

// Query returns the query resolver.
func (r *RootResolver) Query() *resolvers.QueryResolver {
	return resolvers.NewQueryResolver(r.Farm, r.Sessions)
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(svc *farm.Service, sessions *cache.Sessions) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{Farm: svc, Sessions: sessions}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
