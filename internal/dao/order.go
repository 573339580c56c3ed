package dao

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	allOrdersQuery = `query allOrders($skip: Int!, $limit: Int!) {
  orders(skip: $skip, limit: $limit) {
    _id fechaOperacion tiendaID productoID cantidad monto
  }
}`

	ordersCountQuery = `query { ordersCount }`
)

// OrderService pages through the order service.
type OrderService struct {
	gql *GraphQLClient
}

// NewOrderService returns an order service over gql.
func NewOrderService(gql *GraphQLClient) *OrderService {
	return &OrderService{gql: gql}
}

// FetchPage returns one page of orders. The page carries no total.
func (s *OrderService) FetchPage(ctx context.Context, pageIndex, pageSize int) (Page[Order], error) {
	if err := CheckPage(pageIndex, pageSize); err != nil {
		return Page[Order]{}, err
	}

	data, err := s.gql.Do(ctx, allOrdersQuery, map[string]any{
		"skip":  pageIndex * pageSize,
		"limit": pageSize,
	})
	if err != nil {
		return Page[Order]{}, fmt.Errorf("fetch orders page %d: %w", pageIndex, err)
	}

	oo, err := decodeAll(data.Get("orders"), orderFromJSON)
	if err != nil {
		return Page[Order]{}, fmt.Errorf("decode orders page %d: %w", pageIndex, err)
	}

	return Page[Order]{Items: oo}, nil
}

// Count returns the number of orders. The service reports it as a string.
func (s *OrderService) Count(ctx context.Context) (int64, error) {
	data, err := s.gql.Do(ctx, ordersCountQuery, nil)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}

	raw := strings.TrimSpace(data.Get("ordersCount").String())
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad orders count %q", ErrRemote, raw)
	}

	return n, nil
}

func orderFromJSON(r gjson.Result) Order {
	return Order{
		ID:            r.Get("_id").Int(),
		OperationDate: r.Get("fechaOperacion").String(),
		StoreID:       r.Get("tiendaID").String(),
		ProductID:     r.Get("productoID").String(),
		Quantity:      r.Get("cantidad").String(),
		Amount:        r.Get("monto").String(),
	}
}
