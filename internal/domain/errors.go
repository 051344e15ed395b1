package domain

import "errors"

// Domain errors.
var (
	ErrGoalNotFound          = errors.New("goal not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrQuickTaskNotFound     = errors.New("quick task not found")
	ErrSideQuestNotFound     = errors.New("side quest not found")
	ErrEmptyTitle            = errors.New("title cannot be empty")
	ErrInvalidClock          = errors.New("invalid time of day (expected HH:MM)")
	ErrInvalidDate           = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrInvalidBucket         = errors.New("invalid quick task bucket (expected today or tomorrow)")
	ErrIncompletePlan        = errors.New("weekly plan must define all seven weekdays")
	ErrFeatureLocked         = errors.New("feature is not unlocked yet")
	ErrUnlockNotDue          = errors.New("next task unlock is not due yet")
	ErrAlreadyUnlocked       = errors.New("goal is already on today's list")
	ErrNoCandidates          = errors.New("no goal is eligible for unlock today")
	ErrRestDay               = errors.New("goal has a rest day today")
	ErrStaleTask             = errors.New("task belongs to another day")
	ErrSideQuestLimit        = errors.New("side quest limit reached")
	ErrSideQuestLocked       = errors.New("side quests unlock after all of today's tasks are done")
	ErrAlreadySideQuest      = errors.New("goal is already a side quest")
	ErrInvalidWeight         = errors.New("weight out of range")
	ErrInvalidSleep          = errors.New("invalid sleep entry")
	ErrInvalidBackup         = errors.New("invalid backup")
	ErrCorruptState          = errors.New("stored state is corrupt")
	ErrVocabularyUnavailable = errors.New("vocabulary data unavailable")
	ErrWordNotFound          = errors.New("word not found")
	ErrThemeNotFound         = errors.New("theme not found")
	ErrUnsupportedLanguage   = errors.New("unsupported language")
	ErrUnknownStore          = errors.New("unknown store backend")
	ErrConfigExists          = errors.New("config file already exists")
	ErrSnapshotNotFound      = errors.New("snapshot not found")
	ErrSnapshotsUnsupported  = errors.New("store backend does not keep snapshots")
	ErrMigrationConflict     = errors.New("destination store holds different data")
	ErrSameStore             = errors.New("source and destination store are the same")
	ErrEmptyFile             = errors.New("file is empty")
	ErrNoGoalsInFile         = errors.New("no goals found in file")
)
