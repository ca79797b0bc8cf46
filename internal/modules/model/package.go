package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGroupName is the label of the group auto-created the first time a
// user saves a destination without having any group yet.
const DefaultGroupName = "My Package"

// PackageGroup is a named collection of saved destinations belonging to one
// user. Groups are never shared across users.
type PackageGroup struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:ix_package_groups_user_id" json:"user_id"`
	Name   string    `gorm:"type:text;not null" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// PackageGroup <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// PackageGroup <-> PackageMembership
	Memberships []PackageMembership `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (PackageGroup) TableName() string { return "package_groups" }

// PackageMembership associates a destination with a user's package group.
// A (user, destination) pair appears at most once regardless of group;
// uq_package_membership_user_dest enforces it.
type PackageMembership struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_package_membership_user_dest,priority:1" json:"user_id"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_package_membership_user_dest,priority:2" json:"destination_id"`
	GroupID       uuid.UUID `gorm:"type:uuid;not null;index:ix_package_memberships_group_id" json:"group_id"`
	Label         string    `gorm:"type:text;not null;default:''" json:"label,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// PackageMembership <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// PackageMembership <-> Destination
	Destination *Destination `gorm:"foreignKey:DestinationID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"destination,omitempty"`
}

func (PackageMembership) TableName() string { return "package_memberships" }
