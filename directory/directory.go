// Package directory backs the scheduling desk's member and trainer lookups
// with the studio database.
package directory

import (
	"github.com/emrekoc/pilates_studio/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberDirectory struct {
	db *gorm.DB
}

func NewMemberDirectory(db *gorm.DB) *MemberDirectory {
	return &MemberDirectory{db: db}
}

// MemberExists reports whether an active member with the given id exists.
// Frozen and expired members cannot be booked into classes.
func (d *MemberDirectory) MemberExists(id string) (bool, error) {
	memberID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var count int64
	err = d.db.Model(&models.Member{}).
		Where("id = ? AND status = ?", memberID, "active").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type TrainerDirectory struct {
	db *gorm.DB
}

func NewTrainerDirectory(db *gorm.DB) *TrainerDirectory {
	return &TrainerDirectory{db: db}
}

func (d *TrainerDirectory) TrainerExists(id string) (bool, error) {
	trainerID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var count int64
	err = d.db.Model(&models.Trainer{}).
		Where("id = ? AND is_active = ?", trainerID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
