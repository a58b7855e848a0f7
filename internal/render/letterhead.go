package render

// Letterhead is the issuing company's fixed print identity.
type Letterhead struct {
	CompanyName string
	Address     string
	Phones      string
	Email       string
	Tagline     string
	GSTIN       string
	PAN         string
	StateName   string
	StateCode   string

	Bank BankDetails

	// UPIHandle and PayeeName feed the payment QR code.
	UPIHandle string
	PayeeName string

	ChequeFavouring string
	FooterNote      string
}

// BankDetails are printed in the left column next to the totals.
type BankDetails struct {
	Name      string
	AccountNo string
	Branch    string
	IFSC      string
}
