package openfoodfacts

import (
	"regexp"
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

// Package-level compiled regex patterns for field extraction
var (
	// Matches an integer volume with a recognized unit, e.g. "500 ml", "1 L".
	// Integer-only: a decimal quantity like "1.5 L" matches only the
	// trailing "5 L". Known limitation, kept for compatibility.
	volumePattern = regexp.MustCompile(`(?i)(\d+)\s*(ml|cl|liters?|l|kg|g)\b`)
)

// categoryRule maps a keyword set to a category; rules are tested in
// order and the first match wins.
type categoryRule struct {
	keywords []string
	category domain.Category
}

var categoryRules = []categoryRule{
	{[]string{"water", "eau"}, domain.CategoryWater},
	{[]string{"tea", "thé"}, domain.CategoryTea},
	{[]string{"coffee", "café"}, domain.CategoryCoffee},
	{[]string{"soda", "soft drink"}, domain.CategorySoda},
}

// MapToProductRecord converts an upstream envelope product to our domain
// ProductRecord model
func MapToProductRecord(barcode string, product *envelopeProduct) *domain.ProductRecord {
	name := product.ProductName
	if name == "" {
		name = domain.UnknownProductName
	}

	volume, ok := ExtractVolume(product.Quantity)
	if !ok {
		volume = domain.UnknownVolume
	}

	return &domain.ProductRecord{
		Barcode:    barcode,
		Name:       name,
		VolumeText: volume,
		ImageURL:   product.ImageURL,
		Category:   ClassifyCategory(product.Categories, product.GenericName),
		Keywords:   product.Keywords,
	}
}

// ExtractVolume extracts the first numeric volume with unit from free
// text. Returns false when the text contains no recognizable volume.
func ExtractVolume(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	match := volumePattern.FindString(text)
	if match == "" {
		return "", false
	}

	return match, true
}

// ClassifyCategory classifies a product into the beverage taxonomy from
// its categories and generic-name free text. First matching rule wins;
// no match yields CategoryUnknown.
func ClassifyCategory(categories, genericName string) domain.Category {
	haystack := strings.ToLower(categories + " " + genericName)

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(haystack, keyword) {
				return rule.category
			}
		}
	}

	return domain.CategoryUnknown
}
