package dto

type AssetCatalogEntry struct {
	AssetRef string `json:"asset_ref"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Native   bool   `json:"native"`
}

type ListAssetsQuery struct{}

type ListAssetsOutput struct {
	Assets []AssetCatalogEntry `json:"assets"`
}
