package persistence

import (
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/partner"
	"github.com/retail-inventory/backend/internal/domain/retail"
)

// Models returns every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&retail.Retail{},
		&retail.Subscription{},
		&retail.User{},
		&catalog.Classification{},
		&catalog.Product{},
		&partner.Supplier{},
		&inventory.Location{},
		&inventory.InventoryRecord{},
		&inventory.Movement{},
	}
}
