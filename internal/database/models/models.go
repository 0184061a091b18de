package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleMember
}

type Country string

const (
	CountryGlobal  Country = "global"
	CountryIndia   Country = "india"
	CountryAmerica Country = "america"
)

func (c Country) Valid() bool {
	return c == CountryGlobal || c == CountryIndia || c == CountryAmerica
}

type OrderStatus string

const (
	StatusCart       OrderStatus = "cart"
	StatusPlaced     OrderStatus = "placed"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCart, StatusPlaced, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type StringArray []string

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = []string{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("failed to scan StringArray: %v", value)
	}
}

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type User struct {
	ID            string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string  `gorm:"type:varchar(100);not null" json:"name"`
	Email         string  `gorm:"uniqueIndex;not null" json:"email"`
	Password      string  `gorm:"not null" json:"-"`
	Role          Role    `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	Country       Country `gorm:"type:varchar(16);not null;default:'india'" json:"country"`
	PaymentMethod string  `gorm:"type:varchar(64)" json:"paymentMethod,omitempty"`

	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Restaurant struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	ImageURL    string  `gorm:"type:varchar(256)" json:"imageUrl,omitempty"`
	Address     string  `gorm:"type:varchar(256)" json:"address,omitempty"`
	Country     Country `gorm:"type:varchar(16);not null;default:'global';index" json:"country"`

	MenuItems []MenuItem `gorm:"foreignKey:RestaurantID" json:"menuItems,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type MenuItem struct {
	ID          string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:varchar(256)" json:"imageUrl,omitempty"`
	IsAvailable bool            `gorm:"not null;default:true" json:"isAvailable"`
	Categories  StringArray     `gorm:"type:text" json:"categories"`

	RestaurantID string      `gorm:"type:varchar(36);index;not null" json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type Order struct {
	ID            string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Status        OrderStatus     `gorm:"type:varchar(16);not null;default:'cart';index" json:"status"`
	PaymentMethod string          `gorm:"type:varchar(64)" json:"paymentMethod,omitempty"`
	PaymentID     string          `gorm:"type:varchar(64)" json:"paymentId,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`

	UserID string `gorm:"type:varchar(36);index;not null" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID                  string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID             string          `gorm:"type:varchar(36);index;not null" json:"orderId"`
	MenuItemID          string          `gorm:"type:varchar(36);not null" json:"menuItemId"`
	MenuItem            *MenuItem       `gorm:"foreignKey:MenuItemID" json:"menuItem,omitempty"`
	Quantity            int             `gorm:"not null" json:"quantity"`
	PriceAtOrder        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"priceAtOrder"`
	SpecialInstructions string          `gorm:"type:text" json:"specialInstructions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// LineTotal is priceAtOrder x quantity as an exact decimal.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
