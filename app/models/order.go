package models

import "math"

// Order is a dish requested on behalf of a user.
//
// UserID is a weak reference: nothing guarantees the user still exists, and
// deleting a user leaves its orders untouched. Zero means no owner was chosen.
type Order struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"             json:"id"`
	Dish        string `gorm:"column:plato;size:255;not null"       json:"dish"`
	Description string `gorm:"column:descripcion;type:text"         json:"description"`
	UserID      uint   `gorm:"column:usuarioId;index:usuarioId"     json:"user_id"`
}

func (Order) TableName() string { return OrdersCollection }

// MaxID is the largest id an engine can hold; ids are signed 64-bit integers
// on disk and anything above this would not read back into a uint.
const MaxID uint64 = math.MaxInt64

// OwnerRef returns id when it can be stored, or 0 (no owner) otherwise.
func OwnerRef(id uint) uint {
	if uint64(id) > MaxID {
		return 0
	}
	return id
}

// OwnerColumn is the indexed column that holds Order.UserID.
const OwnerColumn = "usuarioId"
