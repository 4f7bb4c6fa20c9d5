package models

import (
	"strings"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDirektur    Role = "direktur"
	RoleSekretariat Role = "sekretariat" // registrasi & arsip surat
	RoleStaf        Role = "staf"        // penerima disposisi, konseptor surat keluar
)

// GroupRHSAccess adalah nama grup yang membuka akses ke surat
// berklasifikasi RHS (rahasia).
const GroupRHSAccess = "RHS_ACCESS"

type Group struct {
	gorm.Model
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Group) TableName() string {
	return "groups"
}

type User struct {
	gorm.Model
	Username     string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	FirstName    string  `gorm:"type:varchar(100)"`
	LastName     string  `gorm:"type:varchar(100)"`
	Email        string  `gorm:"type:varchar(191);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Role         Role    `gorm:"type:varchar(20);not null;index"`
	Jabatan      string  `gorm:"type:varchar(150)"`
	Groups       []Group `gorm:"many2many:user_groups;"`
}

func (User) TableName() string {
	return "users"
}

// --- Helper Methods ---

func (u *User) IsAdmin() bool       { return u.Role == RoleAdmin }
func (u *User) IsDirektur() bool    { return u.Role == RoleDirektur }
func (u *User) IsSekretariat() bool { return u.Role == RoleSekretariat }
func (u *User) IsStaf() bool        { return u.Role == RoleStaf }

// IsElevated menandai role yang boleh bertindak atas nama assignee lain
// (tandai baca/selesai disposisi orang lain).
func (u *User) IsElevated() bool {
	return u.Role == RoleAdmin || u.Role == RoleDirektur
}

// FullName menggabungkan nama depan dan belakang, fallback ke username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// HasGroup mengecek keanggotaan grup; Groups harus sudah di-preload.
func (u *User) HasGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDirektur, RoleSekretariat, RoleStaf:
		return true
	default:
		return false
	}
}
