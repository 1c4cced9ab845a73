package domain

import (
	"strconv"
	"time"
)

// CREATE TABLE public.customers (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     full_name   TEXT NOT NULL,
//     email       TEXT,
//     phone       TEXT,
//     website     TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Customer struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"column:full_name;type:text;not null" json:"full_name"`
	Email     string    `gorm:"column:email;type:text" json:"email"`
	Phone     string    `gorm:"column:phone;type:text" json:"phone"`
	Website   string    `gorm:"column:website;type:text" json:"website"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c Customer) Comparable() ComparableRecord {
	return ComparableRecord{
		ID:      strconv.FormatUint(c.ID, 10),
		Name:    c.FullName,
		Email:   c.Email,
		Phone:   c.Phone,
		Website: c.Website,
	}
}

func (c Customer) Candidate() StructuredCandidate {
	return StructuredCandidate{
		ID:    strconv.FormatUint(c.ID, 10),
		Name:  c.FullName,
		Phone: c.Phone,
		Email: c.Email,
	}
}
