package models

// Kind is the closed set of entity types managed by the catalog.
type Kind int

const (
	KindGender Kind = iota + 1
	KindCategory
	KindDetailCategory
	KindPromotion
	KindTrademark
	KindProduct
)

var kindNames = map[Kind]string{
	KindGender:         "Gender",
	KindCategory:       "Category",
	KindDetailCategory: "DetailCategory",
	KindPromotion:      "Promotion",
	KindTrademark:      "Trademark",
	KindProduct:        "Product",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}
