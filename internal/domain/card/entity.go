package card

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card is a stored contact card. A card is provisional until its QR
// code image has been stored and linked (QRCodeURL set), and complete
// afterwards; no other states exist. The identifier is assigned by the
// store at creation and never changes.
type Card struct {
	ID string `gorm:"column:id;primaryKey" json:"id"`

	FullName    string `gorm:"column:full_name" json:"full_name"`
	Role        string `gorm:"column:role" json:"role"`
	Description string `gorm:"column:description" json:"description"`
	PhoneNumber string `gorm:"column:phone_number" json:"phone_number"`
	Email       string `gorm:"column:email" json:"email"`
	Website     string `gorm:"column:website" json:"website"`
	Company     string `gorm:"column:company" json:"company"`
	Address     string `gorm:"column:address" json:"address"`
	City        string `gorm:"column:city" json:"city"`
	State       string `gorm:"column:state" json:"state"`
	Zip         string `gorm:"column:zip" json:"zip"`
	Country     string `gorm:"column:country" json:"country"`
	LinkedIn    string `gorm:"column:linkedin" json:"linkedin"`
	BgColor     string `gorm:"column:bg_color" json:"bg_color"`

	ImageURL  string `gorm:"column:image_url" json:"image_url"`
	QRCodeURL string `gorm:"column:qr_code_url" json:"qr_code_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Card) TableName() string { return "cards" }

// BeforeCreate assigns the store-generated identifier.
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsComplete reports whether the linkage phase has finished.
func (c *Card) IsComplete() bool { return c.QRCodeURL != "" }
