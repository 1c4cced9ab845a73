package domain

import (
	"strconv"
	"time"
)

// CREATE TABLE public.suppliers (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL,
//     email       TEXT,
//     phone       TEXT,
//     website     TEXT,
//     status      TEXT DEFAULT 'active',
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Supplier struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Email     string    `gorm:"column:email;type:text" json:"email"`
	Phone     string    `gorm:"column:phone;type:text" json:"phone"`
	Website   string    `gorm:"column:website;type:text" json:"website"`
	Status    string    `gorm:"column:status;type:text;default:active" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

func (s Supplier) Comparable() ComparableRecord {
	return ComparableRecord{
		ID:      strconv.FormatUint(s.ID, 10),
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Website: s.Website,
	}
}
