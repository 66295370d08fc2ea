package models

// Collection names as they exist in the store.
const (
	UsersCollection  = "users"
	OrdersCollection = "orders"
)

// User is a customer who can own orders. The store assigns ID on insert and it
// never changes afterwards.
type User struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name        string `gorm:"column:nombre;size:255;not null"   json:"name"`
	Description string `gorm:"column:descripcion;type:text"      json:"description"`
}

func (User) TableName() string { return UsersCollection }
