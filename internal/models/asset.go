package models

import "time"

type Asset struct {
	ID                string    `json:"id"`
	ProductName       string    `json:"productName"`
	ProductType       string    `json:"productType"`
	ProductImage      string    `json:"productImage,omitempty"`
	ProductQuantity   int       `json:"productQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	HREmail           string    `json:"hrEmail"`
	CompanyName       string    `json:"companyName,omitempty"`
	DateAdded         time.Time `json:"dateAdded"`
}

// AssetFilter narrows GetAssetsFiltered. Empty fields are ignored.
type AssetFilter struct {
	HREmail string
	Search  string
	Limit   int
	Offset  int
}
