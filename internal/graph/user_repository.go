package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/example/wordwise/pkg/models"
)

const timeLayout = time.RFC3339Nano

// Defaults applied to every new user.
const (
	defaultThemeColor   = "#4A90E2"
	defaultReminderTime = "08:00"
)

// UserRepository handles graph operations on User nodes.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new User node with zeroed learning state and default
// settings, returning its uid. A duplicate account yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, account, passwordHash, email, avatarURL string) (string, error) {
	uid := uuid.NewString()
	now := time.Now().UTC().Format(timeLayout)

	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {account: $account})
			RETURN u.uid
			LIMIT 1
		`, map[string]any{"account": account})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return nil, ErrConflict
		}

		res, err = tx.Run(ctx, `
			CREATE (u:User {
				uid: $uid,
				account: $account,
				password: $password,
				email: $email,
				avatar_url: $avatar_url,
				streak_days: 0,
				total_study_days: 0,
				study_goal: 0,
				theme_color: $theme_color,
				reminder_time: $reminder_time,
				created_at: $now,
				last_login: $now
			})
			RETURN u.uid
		`, map[string]any{
			"uid":           uid,
			"account":       account,
			"password":      passwordHash,
			"email":         email,
			"avatar_url":    avatarURL,
			"theme_color":   defaultThemeColor,
			"reminder_time": defaultReminderTime,
			"now":           now,
		})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		// The unique constraint is the backstop for two racing registrations.
		if isConstraintViolation(err) {
			return "", ErrConflict
		}
		return "", fmt.Errorf("graph: create user: %w", err)
	}
	return uid, nil
}

const (
	getUserByAccountQuery = `
		MATCH (u:User {account: $value})
		RETURN u
	`
	getUserByUIDQuery = `
		MATCH (u:User {uid: $value})
		RETURN u
	`
)

// GetByAccount returns the user registered under account, including the
// password hash for credential checks.
func (r *UserRepository) GetByAccount(ctx context.Context, account string) (*models.User, error) {
	return r.getUser(ctx, getUserByAccountQuery, "account", account)
}

// GetByID returns the user with the given uid.
func (r *UserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	return r.getUser(ctx, getUserByUIDQuery, "uid", uid)
}

func (r *UserRepository) getUser(ctx context.Context, cypher, field, value string) (*models.User, error) {
	session := r.store.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"value": value})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrNotFound
		}
		node, ok := res.Record().Get("u")
		if !ok {
			return nil, ErrNotFound
		}
		user := userFromNode(node.(neo4j.Node))
		return &user, nil
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("graph: get user by %s: %w", field, err)
	}
	return result.(*models.User), nil
}

// UpdateSettings applies a partial settings change; nil fields are untouched.
func (r *UserRepository) UpdateSettings(ctx context.Context, uid string, update models.SettingsUpdate) error {
	props := map[string]any{}
	if update.ThemeColor != nil {
		props["theme_color"] = *update.ThemeColor
	}
	if update.ReminderTime != nil {
		props["reminder_time"] = *update.ReminderTime
	}
	if update.StudyGoal != nil {
		props["study_goal"] = int64(*update.StudyGoal)
	}
	if len(props) == 0 {
		return nil
	}
	return r.setProps(ctx, uid, props)
}

// UpdateProfile merges the given profile properties (email, avatar_url,
// telegram_chat_id, last_login) onto the user node.
func (r *UserRepository) UpdateProfile(ctx context.Context, uid string, props map[string]any) error {
	allowed := map[string]bool{
		"email": true, "avatar_url": true, "telegram_chat_id": true, "last_login": true,
	}
	filtered := map[string]any{}
	for k, v := range props {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return r.setProps(ctx, uid, filtered)
}

func (r *UserRepository) setProps(ctx context.Context, uid string, props map[string]any) error {
	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})
			SET u += $props
			RETURN u.uid
		`, map[string]any{"uid": uid, "props": props})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	if err != nil {
		if err == ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("graph: update user: %w", err)
	}
	return nil
}

// CheckIn records a study day: total_study_days always grows by one, the
// streak follows AdvanceStreak, last_checkin moves to now. The leading SET
// takes the node's write lock, so two concurrent check-ins for the same user
// serialize and neither increment is lost.
func (r *UserRepository) CheckIn(ctx context.Context, uid string) (models.CheckInResult, error) {
	now := time.Now().UTC()

	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})
			SET u.checkin_seq = coalesce(u.checkin_seq, 0) + 1
			RETURN u.last_checkin AS last, u.streak_days AS streak, u.total_study_days AS total
		`, map[string]any{"uid": uid})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrNotFound
		}
		rec := res.Record()

		prev, hasPrev := recordTime(rec, "last")
		streak := int(recordInt(rec, "streak"))
		total := int(recordInt(rec, "total"))

		streak = AdvanceStreak(prev, hasPrev, now, streak)
		total++

		res, err = tx.Run(ctx, `
			MATCH (u:User {uid: $uid})
			SET u.streak_days = $streak,
			    u.total_study_days = $total,
			    u.last_checkin = $now
		`, map[string]any{
			"uid":    uid,
			"streak": int64(streak),
			"total":  int64(total),
			"now":    now.Format(timeLayout),
		})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return models.CheckInResult{StreakDays: streak, TotalStudyDays: total}, nil
	})
	if err != nil {
		if err == ErrNotFound {
			return models.CheckInResult{}, ErrNotFound
		}
		return models.CheckInResult{}, fmt.Errorf("graph: check in: %w", err)
	}
	return result.(models.CheckInResult), nil
}

// Stats returns the user's learning snapshot. The mastered count is computed
// from MASTERED edges on every call.
func (r *UserRepository) Stats(ctx context.Context, uid string) (models.UserStats, error) {
	session := r.store.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})
			OPTIONAL MATCH (u)-[:MASTERED]->(w:Word)
			RETURN u.streak_days AS streak,
			       u.total_study_days AS total,
			       count(w) AS mastered,
			       u.theme_color AS theme,
			       u.reminder_time AS reminder,
			       coalesce(u.study_goal, 0) AS goal
		`, map[string]any{"uid": uid})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrNotFound
		}
		rec := res.Record()
		return models.UserStats{
			StreakDays:     int(recordInt(rec, "streak")),
			TotalStudyDays: int(recordInt(rec, "total")),
			MasteredWords:  int(recordInt(rec, "mastered")),
			ThemeColor:     recordString(rec, "theme"),
			ReminderTime:   recordString(rec, "reminder"),
			StudyGoal:      int(recordInt(rec, "goal")),
		}, nil
	})
	if err != nil {
		if err == ErrNotFound {
			return models.UserStats{}, ErrNotFound
		}
		return models.UserStats{}, fmt.Errorf("graph: user stats: %w", err)
	}
	return result.(models.UserStats), nil
}

// ForReminder returns users whose reminder_time falls within the given hour
// and who have a Telegram chat bound.
func (r *UserRepository) ForReminder(ctx context.Context, hour int) ([]models.User, error) {
	session := r.store.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User)
			WHERE u.reminder_time STARTS WITH $prefix
			  AND coalesce(u.telegram_chat_id, 0) <> 0
			RETURN u
		`, map[string]any{"prefix": fmt.Sprintf("%02d:", hour)})
		if err != nil {
			return nil, err
		}
		var users []models.User
		for res.Next(ctx) {
			if node, ok := res.Record().Get("u"); ok {
				users = append(users, userFromNode(node.(neo4j.Node)))
			}
		}
		return users, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("graph: users for reminder: %w", err)
	}
	return result.([]models.User), nil
}

func userFromNode(node neo4j.Node) models.User {
	u := models.User{
		UID:            propString(node, "uid"),
		Account:        propString(node, "account"),
		PasswordHash:   propString(node, "password"),
		Email:          propString(node, "email"),
		AvatarURL:      propString(node, "avatar_url"),
		StreakDays:     int(propInt(node, "streak_days")),
		TotalStudyDays: int(propInt(node, "total_study_days")),
		StudyGoal:      int(propInt(node, "study_goal")),
		ThemeColor:     propString(node, "theme_color"),
		ReminderTime:   propString(node, "reminder_time"),
		TelegramChatID: propInt(node, "telegram_chat_id"),
	}
	if t, ok := parseTime(node.Props["last_checkin"]); ok {
		u.LastCheckin = &t
	}
	if t, ok := parseTime(node.Props["created_at"]); ok {
		u.CreatedAt = t
	}
	if t, ok := parseTime(node.Props["last_login"]); ok {
		u.LastLogin = t
	}
	return u
}

func propString(node neo4j.Node, key string) string {
	if v, ok := node.Props[key].(string); ok {
		return v
	}
	return ""
}

func propInt(node neo4j.Node, key string) int64 {
	if v, ok := node.Props[key].(int64); ok {
		return v
	}
	return 0
}

func parseTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func recordInt(rec *neo4j.Record, key string) int64 {
	if v, ok := rec.Get(key); ok {
		if n, ok := v.(int64); ok {
			return n
		}
	}
	return 0
}

func recordString(rec *neo4j.Record, key string) string {
	if v, ok := rec.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func recordTime(rec *neo4j.Record, key string) (time.Time, bool) {
	v, ok := rec.Get(key)
	if !ok {
		return time.Time{}, false
	}
	return parseTime(v)
}
