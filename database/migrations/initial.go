package migrations

import (
	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20250101000001_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(models.UsersCollection)
}

// -------- 0002: orders (non-unique index on usuarioId) --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(models.OrdersCollection)
}
