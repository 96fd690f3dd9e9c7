package dto

type GetDepositAddressQuery struct {
	Salt string
}

type DepositAddressResource struct {
	Salt      string `json:"salt"`
	Address   string `json:"address"`
	Activated bool   `json:"activated"`
}

type GetDepositAddressQRQuery struct {
	Salt string
	Size int
}

type DepositAddressQROutput struct {
	PNG     []byte
	Address string
}
