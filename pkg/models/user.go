package models

import "time"

// User is a User node in the knowledge graph.
type User struct {
	UID            string     `json:"uid"`
	Account        string     `json:"account"`
	PasswordHash   string     `json:"-"`
	Email          string     `json:"email"`
	AvatarURL      string     `json:"avatar_url"`
	StreakDays     int        `json:"streak_days"`
	TotalStudyDays int        `json:"total_study_days"`
	LastCheckin    *time.Time `json:"last_checkin,omitempty"`
	StudyGoal      int        `json:"study_goal"`
	ThemeColor     string     `json:"theme_color"`
	ReminderTime   string     `json:"reminder_time"` // "HH:MM"
	TelegramChatID int64      `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      time.Time  `json:"last_login"`
}

// UserStats is the live learning snapshot returned by GetUserStats.
// MasteredWords is counted from MASTERED edges on every call, not cached.
type UserStats struct {
	StreakDays     int    `json:"streak_days"`
	TotalStudyDays int    `json:"total_study_days"`
	MasteredWords  int    `json:"mastered_words"`
	ThemeColor     string `json:"theme_color"`
	ReminderTime   string `json:"reminder_time"`
	StudyGoal      int    `json:"study_goal"`
}

// SettingsUpdate carries a partial settings change. Nil fields are left
// untouched; there are no sentinel values.
type SettingsUpdate struct {
	ThemeColor   *string `json:"theme_color,omitempty"`
	ReminderTime *string `json:"reminder_time,omitempty"`
	StudyGoal    *int    `json:"study_goal,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (s SettingsUpdate) IsEmpty() bool {
	return s.ThemeColor == nil && s.ReminderTime == nil && s.StudyGoal == nil
}

// CheckInResult is the post-update streak state returned by a check-in.
type CheckInResult struct {
	StreakDays     int `json:"streak_days"`
	TotalStudyDays int `json:"total_study_days"`
}
