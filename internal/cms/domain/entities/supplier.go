package entities

import (
	"errors"
	"slices"
	"time"
)

// Ошибки домена поставщиков.
var (
	ErrSupplierNotFound        = errors.New("supplier not found")
	ErrSupplierProductNotFound = errors.New("supplier product not found")
)

// Идентификаторы категорий, от которых зависит видимость полей формы поставщика.
const (
	CategoryCIF  = "59cdc1f8-2282-4a2c-83f4-53a124107876"
	CategorySCPI = "c3ad1f0e-af17-4425-b1cf-4ec3da2f9877"
)

// PlaceholderSupplierID используется в запросе связи, когда у поставщика еще нет идентификатора.
const PlaceholderSupplierID = "cccccccc-ee82-4aec-8626-fd2ca1baa30c"

// fondProductIDs - продукты, для которых отображается поле "fond".
var fondProductIDs = []string{
	"46c9b876-9b9b-4779-b8ff-e4af9d56914e", // dettes privées obligatoires
	"2b78beef-9304-4ea2-aa2a-22ab551a22ae", // capital investissement
	"8fbcc7b1-6c44-45f5-af85-bb500ab4166c", // éligibles assurances vies
	"6871100f-d1ae-4326-93f9-d4f5117243ab", // 150 0B TER
	"42369074-6134-4d77-8a91-46f9a2efb1c4", // private equity
}

// Supplier представляет поставщика финансовых продуктов.
type Supplier struct {
	ID               string
	Name             string
	Selection        bool
	Epargne          bool
	Enveloppe        string
	Fond             string
	OtherInformation string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SupplierProduct - продукт поставщика.
type SupplierProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductAssociation - продукт, связанный с поставщиком, и его категория.
type ProductAssociation struct {
	ProductID    string
	ProductName  string
	CategoryID   string
	CategoryName string
}

// FieldVisibility описывает видимость зависимых полей формы поставщика.
type FieldVisibility struct {
	OtherInformation bool `json:"other_information"`
	Enveloppe        bool `json:"enveloppe"`
	Fond             bool `json:"fond"`
}

// ResolveVisibility вычисляет видимость полей по связанному продукту.
// Без идентификатора поставщика видимость не меняется, и ok равно false.
func ResolveVisibility(hasSupplierID bool, assoc *ProductAssociation) (FieldVisibility, bool) {
	if !hasSupplierID {
		return FieldVisibility{}, false
	}
	if assoc == nil {
		return FieldVisibility{}, true
	}
	return FieldVisibility{
		OtherInformation: assoc.CategoryID == CategorySCPI,
		Enveloppe:        assoc.CategoryID == CategoryCIF,
		Fond:             assoc.ProductID != "" && slices.Contains(fondProductIDs, assoc.ProductID),
	}, true
}

// SupplierFilter - активный фильтр списка поставщиков.
type SupplierFilter string

// Фильтры списка поставщиков.
const (
	FilterAll       SupplierFilter = "all"
	FilterSCPI      SupplierFilter = "scpi"
	FilterEpargne   SupplierFilter = "epargne"
	FilterSelection SupplierFilter = "selection"
)

// ParseSupplierFilter выбирает один активный фильтр: selection, затем epargne, затем scpi.
func ParseSupplierFilter(selection, epargne, category string) SupplierFilter {
	switch {
	case selection == "true":
		return FilterSelection
	case epargne == "true":
		return FilterEpargne
	case category == "scpi":
		return FilterSCPI
	default:
		return FilterAll
	}
}

// Label возвращает подпись фильтра для панели управления.
func (f SupplierFilter) Label() string {
	switch f {
	case FilterSCPI:
		return "Fournisseurs SCPI"
	case FilterEpargne:
		return "Fournisseurs Épargne"
	case FilterSelection:
		return "Notre sélection"
	default:
		return "Tous les fournisseurs"
	}
}
