package magento

import (
	"fmt"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
)

// entityFields lists the filterable columns of each listing
var entityFields = map[integration.EntityType][]query.Field{
	integration.EntityOrders: {
		query.NewField("increment_id", query.TypeString),
		query.NewField("order_id", query.TypeInteger),
		query.NewField("customer_id", query.TypeInteger),
		query.NewField("customer_email", query.TypeString),
		query.NewField("status", query.TypeString),
		query.NewField("state", query.TypeString),
		query.NewField("grand_total", query.TypeDecimal),
		query.NewField("order_currency_code", query.TypeString),
		query.NewField("created_at", query.TypeDate),
		query.NewField("updated_at", query.TypeDate),
	},
	integration.EntityShipments: {
		query.NewField("increment_id", query.TypeString),
		query.NewField("order_id", query.TypeInteger),
		query.NewField("total_qty", query.TypeDecimal),
		query.NewField("is_active", query.TypeBoolean),
		query.NewField("created_at", query.TypeDate),
	},
	integration.EntityInvoices: {
		query.NewField("increment_id", query.TypeString),
		query.NewField("order_id", query.TypeInteger),
		query.NewField("state", query.TypeString),
		query.NewField("grand_total", query.TypeDecimal),
		query.NewField("is_active", query.TypeBoolean),
		query.NewField("created_at", query.TypeDate),
	},
}

// MetadataKeys lists the queryable entity types
func MetadataKeys() []integration.EntityType {
	return []integration.EntityType{
		integration.EntityOrders,
		integration.EntityShipments,
		integration.EntityInvoices,
	}
}

// Metadata returns the queryable fields of an entity type
func Metadata(entity integration.EntityType) ([]query.Field, error) {
	fields, ok := entityFields[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", integration.ErrUnknownEntity, entity)
	}
	out := make([]query.Field, len(fields))
	copy(out, fields)
	return out, nil
}

// LookupField returns the declared field of an entity by name
func LookupField(entity integration.EntityType, name string) (query.Field, bool) {
	for _, f := range entityFields[entity] {
		if f.Name == name {
			return f, true
		}
	}
	return query.Field{}, false
}
