package domain

import (
	"banner-service/internal/core/entity"
	catalog "banner-service/internal/features/catalog/domain"
)

// TargetKind tells which association arm a section uses.
type TargetKind string

const (
	TargetNone         TargetKind = ""
	TargetProduct      TargetKind = "product"
	TargetCollection   TargetKind = "collection"
	TargetExternalLink TargetKind = "externalLink"
)

// SectionTarget is where a section sends the shopper. Only the field that
// matches Kind is meaningful.
type SectionTarget struct {
	Kind TargetKind
	ID   entity.ID
	URL  string
}

func ProductTarget(id entity.ID) SectionTarget {
	return SectionTarget{Kind: TargetProduct, ID: id}
}

func CollectionTarget(id entity.ID) SectionTarget {
	return SectionTarget{Kind: TargetCollection, ID: id}
}

func ExternalLinkTarget(url string) SectionTarget {
	return SectionTarget{Kind: TargetExternalLink, URL: url}
}

// IsZero reports whether no arm is set.
func (t SectionTarget) IsZero() bool {
	return t.Kind == TargetNone
}

// CatalogKind returns the catalog entity the target must resolve to.
// External links need no lookup.
func (t SectionTarget) CatalogKind() (catalog.Kind, bool) {
	switch t.Kind {
	case TargetProduct:
		return catalog.KindProduct, true
	case TargetCollection:
		return catalog.KindCollection, true
	default:
		return "", false
	}
}
