package magento

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/connector/internal/domain/integration"
	"github.com/erp/connector/internal/domain/query"
)

func TestMetadata(t *testing.T) {
	for _, entity := range MetadataKeys() {
		fields, err := Metadata(entity)
		require.NoError(t, err, entity)
		assert.NotEmpty(t, fields, entity)
	}

	_, err := Metadata(integration.EntityStockItems)
	assert.ErrorIs(t, err, integration.ErrUnknownEntity)

	fields, err := Metadata(integration.EntityOrders)
	require.NoError(t, err)
	fields[0] = query.NewField("changed", query.TypeString)
	again, _ := Metadata(integration.EntityOrders)
	assert.Equal(t, "increment_id", again[0].Name)
}

func TestLookupField(t *testing.T) {
	tests := []struct {
		entity integration.EntityType
		name   string
		want   query.FieldType
		found  bool
	}{
		{integration.EntityOrders, "grand_total", query.TypeDecimal, true},
		{integration.EntityShipments, "is_active", query.TypeBoolean, true},
		{integration.EntityInvoices, "created_at", query.TypeDate, true},
		{integration.EntityOrders, "is_active", query.TypeString, false},
		{integration.EntityStockItems, "qty", query.TypeString, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.entity)+"/"+tt.name, func(t *testing.T) {
			f, ok := LookupField(tt.entity, tt.name)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, f.Type)
			}
		})
	}
}
