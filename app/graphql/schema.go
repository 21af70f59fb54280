// Package graphql exposes a read-only catalogue query endpoint at
// /api/graphql. It covers the same data as the REST catalogue routes;
// mutations stay REST-only so the inventory transaction path has a single
// entry point.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/repositories"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/pkg/response"
)

var productSizeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductSize",
	Fields: graphql.Fields{
		"size":     &graphql.Field{Type: graphql.String},
		"quantity": &graphql.Field{Type: graphql.Int},
	},
})

var brandType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Brand",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.Int},
		"name": &graphql.Field{Type: graphql.String},
		"slug": &graphql.Field{Type: graphql.String},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.Int},
		"name": &graphql.Field{Type: graphql.String},
		"slug": &graphql.Field{Type: graphql.String},
		"sizes": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				category, ok := p.Source.(models.Category)
				if !ok {
					return nil, nil
				}
				labels := make([]string, 0, len(category.Sizes))
				for _, s := range category.Sizes {
					labels = append(labels, s.Label)
				}
				return labels, nil
			},
		},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"imageUrl": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Product).ImageURL, nil
			},
		},
		"gender": &graphql.Field{Type: graphql.String},
		"price": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Product).Price.StringFixed(2), nil
			},
		},
		"sizes": &graphql.Field{
			Type: graphql.NewList(productSizeType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Product).Sizes, nil
			},
		},
		"brand": &graphql.Field{
			Type: brandType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Product).Brand, nil
			},
		},
		"category": &graphql.Field{
			Type: categoryType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Product).Category, nil
			},
		},
	},
})

// NewSchema builds the read-only catalogue schema.
func NewSchema() (graphql.Schema, error) {
	catalog := services.NewCatalogService()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"size":     &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"gender":   &graphql.ArgumentConfig{Type: graphql.String},
					"brand":    &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.ProductFilter{}
					if v, ok := p.Args["size"].(string); ok {
						filter.Size = v
					}
					if v, ok := p.Args["category"].(string); ok {
						filter.CategorySlug = v
					}
					if v, ok := p.Args["gender"].(string); ok {
						filter.Gender = v
					}
					if v, ok := p.Args["brand"].(int); ok {
						filter.BrandID = uint(v)
					}
					return catalog.Products(filter)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return catalog.Product(uint(id))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Categories()
				},
			},
			"brands": &graphql.Field{
				Type: graphql.NewList(brandType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Brands()
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

// Handler serves POSTed GraphQL queries against the catalogue schema.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}
