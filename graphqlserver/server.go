package graphqlserver

import (
	"context"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"productimport.GO/graphql"
	"productimport.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go. A resolver is created per field
// with the store context of the request.
type RootResolver struct {
	DB *gorm.DB
}

// ImportRunArgs matches the importRun query arguments.
type ImportRunArgs struct {
	RunID      string
	FailedOnly *bool
}

func (r *RootResolver) ImportRun(ctx context.Context, args ImportRunArgs) (*resolvers.ImportRun, error) {
	res := resolvers.NewResolver(r.DB, graphql.StoreIDFromContext(ctx))
	return res.ImportRun(ctx, args.RunID, args.FailedOnly != nil && *args.FailedOnly)
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	Sku string
}

func (r *RootResolver) Product(ctx context.Context, args ProductArgs) (*resolvers.ImportedProduct, error) {
	res := resolvers.NewResolver(r.DB, graphql.StoreIDFromContext(ctx))
	return res.Product(ctx, args.Sku)
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
