package graph

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/order"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
)

// Dependencies is everything the schema needs: the mutation services and the
// repositories backing the listing queries.
type Dependencies struct {
	Customers       customer.Repository
	Products        product.Repository
	Orders          order.Repository
	CustomerService *customer.Service
	ProductService  *product.Service
	OrderService    *order.Service
}

// NewSchema builds the executable CRM schema: three listing queries and four
// mutations, all delegating to the domain layer.
func NewSchema(deps Dependencies) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allCustomers": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(customerType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cs, err := deps.Customers.List(p.Context)
					if err != nil {
						return nil, errors.Wrap(err, "list customers")
					}
					return toCustomers(cs), nil
				},
			},
			"allProducts": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(productType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ps, err := deps.Products.List(p.Context)
					if err != nil {
						return nil, errors.Wrap(err, "list products")
					}
					return toProducts(ps), nil
				},
			},
			"allOrders": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(orderType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					os, err := deps.Orders.List(p.Context)
					if err != nil {
						return nil, errors.Wrap(err, "list orders")
					}
					return toOrders(os), nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := customerRequestFromArgs(p.Args["input"])
					c, err := deps.CustomerService.Create(p.Context, req)
					if err != nil {
						return nil, mapDomainError(err)
					}
					return map[string]interface{}{
						"customer": toCustomer(*c),
						"message":  "Customer created successfully",
					}, nil
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreateCustomersPayload,
				Args: graphql.FieldConfigArgument{
					"inputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInputType))),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["inputs"].([]interface{})
					reqs := make([]customer.CreateRequest, len(raw))
					for i, item := range raw {
						reqs[i] = customerRequestFromArgs(item)
					}

					created, errs := deps.CustomerService.BulkCreate(p.Context, reqs)
					if errs == nil {
						errs = []string{}
					}
					return map[string]interface{}{
						"customers": toCustomers(created),
						"errors":    errs,
					}, nil
				},
			},
			"createProduct": &graphql.Field{
				Type: createProductPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pr, err := deps.ProductService.Create(p.Context, productRequestFromArgs(p.Args["input"]))
					if err != nil {
						return nil, mapDomainError(err)
					}
					return map[string]interface{}{"product": toProduct(*pr)}, nil
				},
			},
			"createOrder": &graphql.Field{
				Type: createOrderPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o, err := deps.OrderService.Create(p.Context, orderRequestFromArgs(p.Args["input"]))
					if err != nil {
						return nil, mapDomainError(err)
					}
					return map[string]interface{}{"order": toOrder(*o)}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// customerRequestFromArgs converts a resolved CustomerInput argument map to a
// domain request. Missing optional fields stay zero-valued.
func customerRequestFromArgs(arg interface{}) customer.CreateRequest {
	input, _ := arg.(map[string]interface{})
	req := customer.CreateRequest{}
	if v, ok := input["name"].(string); ok {
		req.Name = v
	}
	if v, ok := input["email"].(string); ok {
		req.Email = v
	}
	if v, ok := input["phone"].(string); ok {
		req.Phone = v
	}
	return req
}

func productRequestFromArgs(arg interface{}) product.CreateRequest {
	input, _ := arg.(map[string]interface{})
	req := product.CreateRequest{}
	if v, ok := input["name"].(string); ok {
		req.Name = v
	}
	if v, ok := input["price"].(decimal.Decimal); ok {
		req.Price = v
	}
	if v, ok := input["stock"].(int); ok {
		stock := v
		req.Stock = &stock
	}
	return req
}

func orderRequestFromArgs(arg interface{}) order.CreateRequest {
	input, _ := arg.(map[string]interface{})
	req := order.CreateRequest{}
	if v, ok := input["customerId"].(string); ok {
		req.CustomerID = v
	}
	if raw, ok := input["productIds"].([]interface{}); ok {
		req.ProductIDs = make([]string, 0, len(raw))
		for _, id := range raw {
			if s, ok := id.(string); ok {
				req.ProductIDs = append(req.ProductIDs, s)
			}
		}
	}
	if v, ok := input["orderDate"].(time.Time); ok {
		t := v
		req.OrderDate = &t
	}
	return req
}
