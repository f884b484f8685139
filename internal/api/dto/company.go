package dto

// ComparableCompany is one peer in a comparable-companies result, ranked by
// similarity to the reference company.
type ComparableCompany struct {
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	Sector             string  `json:"sector"`
	CurrentPrice       float64 `json:"current_price"`
	Volume             int64   `json:"volume"`
	PriceChangePercent float64 `json:"price_change_percent"`
	SimilarityScore    float64 `json:"similarity_score"`
}

// ComparableCompaniesResponse is the body of GET /companies/:symbol/comparable.
type ComparableCompaniesResponse struct {
	ReferenceCompany    string              `json:"reference_company"`
	ReferenceSector     string              `json:"reference_sector"`
	ReferencePrice      *float64            `json:"reference_price"`
	ComparableCompanies []ComparableCompany `json:"comparable_companies"`
}

// CompanyComparison is one side of a pairwise company comparison.
type CompanyComparison struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	StartPrice   float64 `json:"start_price"`
	CurrentPrice float64 `json:"current_price"`
	Performance  float64 `json:"performance"`
	AvgVolume    int64   `json:"avg_volume"`
}

// CompareCompaniesResponse is the body of
// GET /companies/:symbol/compare-with/:peer.
type CompareCompaniesResponse struct {
	Period     string             `json:"period"`
	Company1   CompanyComparison  `json:"company1"`
	Company2   CompanyComparison  `json:"company2"`
	Comparison ComparisonVerdict  `json:"comparison"`
}

// ComparisonVerdict summarizes the pairwise comparison.
type ComparisonVerdict struct {
	PerformanceDifference   float64 `json:"performance_difference"`
	BetterPerformer         string  `json:"better_performer"`
	VolumeDifferencePercent float64 `json:"volume_difference_percent"`
	SameSector              bool    `json:"same_sector"`
}
