package tui

import "github.com/runoshun/steps/internal/engine"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTodayLoaded is sent when today's view has been derived.
type MsgTodayLoaded struct {
	View engine.TodayView
}

func (MsgTodayLoaded) sealed() {}

// MsgActionDone is sent when an action changed the day. The view is
// reloaded afterwards.
type MsgActionDone struct {
	Notice string
}

func (MsgActionDone) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
