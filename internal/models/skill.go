package models

import (
	"strings"

	"gorm.io/gorm"
)

// UserSkill is the searchable copy of User.Skills, one lower-cased row per skill.
type UserSkill struct {
	UserID uint   `gorm:"primaryKey"`
	Skill  string `gorm:"primaryKey;size:100"`
}

// AfterCreate indexes the skills a user was created with.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if len(u.Skills) == 0 {
		return nil
	}
	return ReplaceSkills(tx.Session(&gorm.Session{NewDB: true}), u.ID, u.Skills)
}

// ReplaceSkills rewrites the user_skills rows of userID to match skills.
func ReplaceSkills(tx *gorm.DB, userID uint, skills []string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&UserSkill{}).Error; err != nil {
		return err
	}

	seen := make(map[string]bool, len(skills))
	rows := make([]UserSkill, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		rows = append(rows, UserSkill{UserID: userID, Skill: s})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
