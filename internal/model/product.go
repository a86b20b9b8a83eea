package model

// Product is an immutable catalog entry. Catalog data is static
// configuration; the core only reads it.
type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Benefits           []string `json:"benefits"`
	UseCases           []string `json:"use_cases"`
	SetupPrice         string   `json:"setup_price"`
	MonthlyPrice       string   `json:"monthly_price"`
	PriceDescriptor    string   `json:"price"`
	ImplementationTime string   `json:"implementation_time"`
}
