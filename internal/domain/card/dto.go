package card

import "strings"

// GenerateRequest carries the submitted profile fields. Every field is
// optional; an absent full name is stored as the empty string rather
// than rejected.
type GenerateRequest struct {
	FullName    string `form:"fullName" json:"full_name"`
	Role        string `form:"role" json:"role"`
	Description string `form:"description" json:"description"`
	PhoneNumber string `form:"phoneNumber" json:"phone_number"`
	Email       string `form:"email" json:"email"`
	Website     string `form:"website" json:"website"`
	Company     string `form:"company" json:"company"`
	Address     string `form:"address" json:"address"`
	City        string `form:"city" json:"city"`
	State       string `form:"state" json:"state"`
	Zip         string `form:"zip" json:"zip"`
	Country     string `form:"country" json:"country"`
	LinkedIn    string `form:"linkedin" json:"linkedin"`
	BgColor     string `form:"bgColor" json:"bg_color"`
}

// toCard builds the provisional record. The display name is the only
// transformed field: it is stored upper-cased.
func (r GenerateRequest) toCard() *Card {
	return &Card{
		FullName:    strings.ToUpper(r.FullName),
		Role:        r.Role,
		Description: r.Description,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Website:     r.Website,
		Company:     r.Company,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		Zip:         r.Zip,
		Country:     r.Country,
		LinkedIn:    r.LinkedIn,
		BgColor:     r.BgColor,
	}
}

// GenerateResult is what a successful run hands back to the caller:
// the raw rendered code image for inline preview and the stored
// copy's URL for download.
type GenerateResult struct {
	Card        *Card
	Preview     []byte
	DownloadURL string
}
