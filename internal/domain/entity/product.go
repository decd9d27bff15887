package entity

import (
	"strings"
	"time"
)

const (
	ListingTypeOffering   = "NABIZIM" // seller offers an item
	ListingTypeRequesting = "SHANIM"  // buyer looks for an item

	CategoryAirsoftWeapons    = "AIRSOFT_WEAPONS"
	CategoryMilitaryEquipment = "MILITARY_EQUIPMENT"
	CategoryOther             = "OTHER"

	ConditionNew           = "NEW"
	ConditionLightDamage   = "LIGHT_DAMAGE"
	ConditionMajorDamage   = "MAJOR_DAMAGE"
	ConditionNonFunctional = "NON_FUNCTIONAL"

	customConditionPrefix = "custom-"
	maxCustomConditionLen = 20
)

type Product struct {
	ID          string  `json:"id" db:"id"`
	UserID      string  `json:"user_id" db:"user_id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
	ListingType string  `json:"listing_type" db:"listing_type"`
	Category    string  `json:"category" db:"category"`
	Subcategory string  `json:"subcategory,omitempty" db:"subcategory"`
	Condition   string  `json:"condition" db:"condition"`

	MainImage string   `json:"main_image" db:"main_image"`
	Images    []string `json:"images"`

	Location  string `json:"location" db:"location"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	IsSold    bool   `json:"is_sold" db:"is_sold"`
	ViewCount int    `json:"view_count" db:"view_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func ValidListingType(t string) bool {
	return t == ListingTypeOffering || t == ListingTypeRequesting
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryAirsoftWeapons, CategoryMilitaryEquipment, CategoryOther:
		return true
	}
	return false
}

// ValidCondition accepts either the fixed enum or a "custom-<text>" value with
// the text capped at 20 characters.
func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionLightDamage, ConditionMajorDamage, ConditionNonFunctional:
		return true
	}
	if strings.HasPrefix(c, customConditionPrefix) {
		custom := strings.TrimPrefix(c, customConditionPrefix)
		return custom != "" && len(custom) <= maxCustomConditionLen
	}
	return false
}

// NormalizeMainImage enforces the invariant that MainImage references one of
// Images, falling back to the first image.
func (p *Product) NormalizeMainImage() {
	if len(p.Images) == 0 {
		p.MainImage = ""
		return
	}
	for _, img := range p.Images {
		if img == p.MainImage {
			return
		}
	}
	p.MainImage = p.Images[0]
}
