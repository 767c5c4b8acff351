package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/sales"
)

// JSONSaleSource reads sale records from a JSON array. Money fields are kept
// as json.Number so no precision is lost before they are parsed as decimals.
// Records are decoded field by field: a field of the wrong type is left
// empty and the record is still returned.
type JSONSaleSource struct {
	open func() (io.ReadCloser, error)
	name string
}

// NewJSONFileSource reads sales from the file at path on every FindAll
func NewJSONFileSource(path string) *JSONSaleSource {
	return &JSONSaleSource{
		open: func() (io.ReadCloser, error) { return os.Open(path) },
		name: path,
	}
}

// NewJSONSource reads sales from r once. Subsequent FindAll calls see an
// exhausted reader and return no records.
func NewJSONSource(r io.Reader) *JSONSaleSource {
	return &JSONSaleSource{
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
		name: "reader",
	}
}

// FindAll decodes the whole array. Only a document that is not a JSON array
// is an error.
func (s *JSONSaleSource) FindAll(ctx context.Context) ([]sales.Sale, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open sales %s: %w", s.name, err)
	}
	defer rc.Close()

	var raw []json.RawMessage
	if err := json.NewDecoder(rc).Decode(&raw); err != nil {
		if err == io.EOF {
			return []sales.Sale{}, nil
		}
		return nil, fmt.Errorf("decode sales %s: %w", s.name, err)
	}

	records := make([]sales.Sale, 0, len(raw))
	for _, msg := range raw {
		records = append(records, decodeSale(msg))
	}
	return records, nil
}

// jsonObject is one JSON object split into its raw members
type jsonObject map[string]json.RawMessage

func parseObject(msg json.RawMessage) (jsonObject, bool) {
	var obj jsonObject
	if err := json.Unmarshal(msg, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// field decodes one member into T. Missing, null and mistyped members
// report false.
func field[T any](obj jsonObject, key string) (T, bool) {
	var v T
	msg, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return v, false
	}
	if err := json.Unmarshal(msg, &v); err != nil {
		return v, false
	}
	return v, true
}

// money keeps numbers as json.Number and anything else as decoded
func money(obj jsonObject, key string) any {
	msg, ok := obj[key]
	if !ok {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func decodeSale(msg json.RawMessage) sales.Sale {
	obj, ok := parseObject(msg)
	if !ok {
		return sales.Sale{}
	}

	var sale sales.Sale
	sale.ID, _ = field[int64](obj, "id")
	sale.CreatedAt, _ = field[time.Time](obj, "created_at")
	sale.Status, _ = field[string](obj, "status")
	sale.TotalAmount = money(obj, "total_amount")
	sale.Total = money(obj, "total")

	if c, ok := field[json.RawMessage](obj, "customer"); ok {
		sale.Customer = decodeCustomer(c)
	}
	if p, ok := field[json.RawMessage](obj, "product"); ok {
		sale.Product = decodeProduct(p)
	}
	if q, ok := field[int](obj, "quantity"); ok {
		sale.Quantity = &q
	}
	if items, ok := field[[]json.RawMessage](obj, "details"); ok {
		sale.Details = make([]sales.LineItem, 0, len(items))
		for _, item := range items {
			sale.Details = append(sale.Details, decodeLineItem(item))
		}
	}
	return sale
}

func decodeCustomer(msg json.RawMessage) *sales.Customer {
	obj, ok := parseObject(msg)
	if !ok {
		return nil
	}
	var c sales.Customer
	c.FirstName, _ = field[string](obj, "first_name")
	c.LastName, _ = field[string](obj, "last_name")
	c.Email, _ = field[string](obj, "email")
	return &c
}

func decodeProduct(msg json.RawMessage) *sales.Product {
	obj, ok := parseObject(msg)
	if !ok {
		return nil
	}
	name, _ := field[string](obj, "name")
	return &sales.Product{Name: name}
}

func decodeLineItem(msg json.RawMessage) sales.LineItem {
	obj, ok := parseObject(msg)
	if !ok {
		return sales.LineItem{}
	}
	var item sales.LineItem
	if p, ok := field[json.RawMessage](obj, "product"); ok {
		item.Product = decodeProduct(p)
	}
	item.Quantity, _ = field[int](obj, "quantity")
	return item
}

var _ sales.SaleReader = (*JSONSaleSource)(nil)
