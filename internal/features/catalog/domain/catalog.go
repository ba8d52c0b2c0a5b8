package domain

import "banner-service/internal/core/entity"

// Kind names a catalog entity type that banners can reference.
type Kind string

const (
	KindAsset      Kind = "Asset"
	KindProduct    Kind = "Product"
	KindCollection Kind = "Collection"
)

// Entity is implemented by every catalog record.
type Entity interface {
	Kind() Kind
	EntityID() entity.ID
}

// Asset is an uploaded media file. Banners only read it.
type Asset struct {
	entity.Base
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Source   string `json:"source"`
	Preview  string `json:"preview"`
}

func (Asset) TableName() string { return "asset" }
func (Asset) Kind() Kind        { return KindAsset }

// Product is a sellable item of the storefront.
type Product struct {
	entity.Base
	Name    string `json:"name"`
	Slug    string `json:"slug" gorm:"index"`
	Enabled bool   `json:"enabled"`
}

func (Product) TableName() string { return "product" }
func (Product) Kind() Kind        { return KindProduct }

// Collection groups products for navigation.
type Collection struct {
	entity.Base
	Name string `json:"name"`
	Slug string `json:"slug" gorm:"index"`
}

func (Collection) TableName() string { return "collection" }
func (Collection) Kind() Kind        { return KindCollection }

// Models lists the catalog tables for local migrations.
func Models() []interface{} {
	return []interface{}{&Asset{}, &Product{}, &Collection{}}
}
