package controllers

import (
	"encoding/json"
	"net/http"

	gql "github.com/graphql-go/graphql"

	"autoparts/app/models"
	"autoparts/app/repositories"
	"autoparts/app/services"
	"autoparts/pkg/graphql"
	"autoparts/pkg/response"
)

// GraphQLController serves a read-only catalogue view at /api/graphql.
// Mutations stay on the REST side where auth and validation live.
type GraphQLController struct {
	schema gql.Schema
}

func NewGraphQLController() *GraphQLController {
	catalog := services.NewCatalogService()

	productType := gql.NewObject(gql.ObjectConfig{
		Name: "Product",
		Fields: gql.Fields{
			"id": &gql.Field{Type: gql.Int, Resolve: func(p gql.ResolveParams) (interface{}, error) {
				return int(p.Source.(models.Product).ID), nil
			}},
			"name":        &gql.Field{Type: gql.String},
			"description": &gql.Field{Type: gql.String},
			"price":       &gql.Field{Type: gql.Float},
			"stock":       &gql.Field{Type: gql.Int},
			"category":    &gql.Field{Type: gql.String},
			"brand":       &gql.Field{Type: gql.String},
			"sku":         &gql.Field{Type: gql.String},
			"image": &gql.Field{Type: gql.String, Resolve: func(p gql.ResolveParams) (interface{}, error) {
				return catalog.ImageURL(p.Source.(models.Product).Image), nil
			}},
		},
	})

	metaType := gql.NewObject(gql.ObjectConfig{
		Name: "CatalogMeta",
		Fields: gql.Fields{
			"categories": &gql.Field{Type: gql.NewList(gql.String)},
			"brands":     &gql.Field{Type: gql.NewList(gql.String)},
		},
	})

	rootQuery := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"products": &gql.Field{
				Type: gql.NewList(productType),
				Args: gql.FieldConfigArgument{
					"search":   &gql.ArgumentConfig{Type: gql.String},
					"category": &gql.ArgumentConfig{Type: gql.String},
					"brand":    &gql.ArgumentConfig{Type: gql.String},
					"page":     &gql.ArgumentConfig{Type: gql.Int},
					"limit":    &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					f := repositories.ProductFilter{}
					if s, ok := p.Args["search"].(string); ok {
						f.Search = s
					}
					if s, ok := p.Args["category"].(string); ok {
						f.Category = s
					}
					if s, ok := p.Args["brand"].(string); ok {
						f.Brand = s
					}
					if n, ok := p.Args["page"].(int); ok {
						f.Page = n
					}
					if n, ok := p.Args["limit"].(int); ok {
						f.Limit = n
					}
					products, _, err := catalog.List(f)
					return products, err
				},
			},
			"product": &gql.Field{
				Type: productType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := catalog.Get(uint(id), false)
					if err != nil {
						return nil, err
					}
					return product, nil
				},
			},
			"meta": &gql.Field{
				Type: metaType,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return catalog.Meta()
				},
			},
		},
	})

	schema, err := graphql.NewSchema(rootQuery)
	if err != nil {
		// Schema construction only fails on a programming error.
		panic(err)
	}

	return &GraphQLController{schema: schema}
}

// Query handles POST /api/graphql.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Query == "" {
		response.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	result := gql.Do(gql.Params{
		Schema:         c.schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
