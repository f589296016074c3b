package creative

import (
	"adforge/internal/domain"
)

// ProductBrief is the semantic input distilled from brand, product and
// request-supplied fallbacks. It has no lifecycle of its own.
type ProductBrief struct {
	ProductName        string   `json:"productName"`
	ProductDescription string   `json:"productDescription"`
	ProductPrice       string   `json:"productPrice,omitempty"`
	Benefits           []string `json:"benefits"`
	Objections         []string `json:"objections"`
	Reviews            []string `json:"reviews"`
	BrandName          string   `json:"brandName"`
	TargetAudience     string   `json:"targetAudience"`
	Tonality           []string `json:"tonality"`
	USPs               []string `json:"usps"`
	NoGos              []string `json:"noGos"`
	Industry           string   `json:"industry"`
}

// GenerationConfig is the request configuration half of the fingerprint.
type GenerationConfig struct {
	Platform domain.Platform `json:"platform"`
	Goal     domain.Goal     `json:"goal"`
	Style    domain.Style    `json:"style"`
	Duration int             `json:"duration"`
	Language string          `json:"language"`
}

// BuildBrief assembles the brief from stored brand/product context, falling
// back to request-supplied product fields when no product is linked.
func BuildBrief(brand *domain.Brand, product *domain.Product, input *domain.GenerationInput) ProductBrief {
	brief := ProductBrief{
		BrandName:      brand.Name,
		TargetAudience: brand.TargetAudience,
		Tonality:       brand.Tonality,
		USPs:           brand.USPs,
		NoGos:          brand.NoGos,
		Industry:       brand.Industry,
	}
	if product != nil {
		brief.ProductName = product.Name
		brief.ProductDescription = product.Description
		brief.ProductPrice = product.Price
		brief.Benefits = product.Benefits
		brief.Objections = product.Objections
		brief.Reviews = product.Reviews
	}
	if input != nil {
		if brief.ProductName == "" {
			brief.ProductName = input.ProductName
		}
		if brief.ProductDescription == "" {
			brief.ProductDescription = input.ProductDescription
		}
		if brief.ProductPrice == "" {
			brief.ProductPrice = input.ProductPrice
		}
		if len(brief.Benefits) == 0 {
			brief.Benefits = input.ProductBenefits
		}
		if len(brief.Objections) == 0 {
			brief.Objections = input.ProductObjections
		}
	}
	return brief
}

// ConfigFromGeneration copies the stored configuration of a generation.
func ConfigFromGeneration(g *domain.Generation) GenerationConfig {
	return GenerationConfig{
		Platform: g.Platform,
		Goal:     g.Goal,
		Style:    g.Style,
		Duration: g.Duration,
		Language: g.Language,
	}
}
