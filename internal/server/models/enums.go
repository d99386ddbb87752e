// Package models defines the persisted records of the hang service and the
// derived, read-only views assembled from them.
package models

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/letshang/internal/common"
)

type HangType string

const (
	HangTypeCoffee  HangType = "coffee"
	HangTypeOutdoor HangType = "outdoor"
	HangTypeGames   HangType = "games"
	HangTypeSocial  HangType = "social"
)

// ParseHangType maps an empty string to HangTypeSocial.
func ParseHangType(s string) (HangType, error) {
	switch t := HangType(strings.TrimSpace(s)); t {
	case "":
		return HangTypeSocial, nil
	case HangTypeCoffee, HangTypeOutdoor, HangTypeGames, HangTypeSocial:
		return t, nil
	default:
		return "", common.ErrorInvalidType
	}
}

type HangStatus string

const (
	HangStatusActive    HangStatus = "active"
	HangStatusCancelled HangStatus = "cancelled"
	HangStatusCompleted HangStatus = "completed"
)

func ParseHangStatus(s string) (HangStatus, error) {
	switch st := HangStatus(s); st {
	case HangStatusActive, HangStatusCancelled, HangStatusCompleted:
		return st, nil
	default:
		return "", common.ErrorInvalidStatus
	}
}

// Terminal reports whether no further transition is possible.
func (s HangStatus) Terminal() bool {
	return s == HangStatusCancelled || s == HangStatusCompleted
}

// CanTransitionTo encodes the one-way lifecycle: active -> cancelled | completed.
func (s HangStatus) CanTransitionTo(to HangStatus) bool {
	return s == HangStatusActive && to.Terminal()
}

type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPMaybe    RSVPStatus = "maybe"
	RSVPNotGoing RSVPStatus = "not-going"
)

func ParseRSVPStatus(s string) (RSVPStatus, error) {
	switch st := RSVPStatus(s); st {
	case RSVPGoing, RSVPMaybe, RSVPNotGoing:
		return st, nil
	default:
		return "", common.ErrorInvalidStatus
	}
}

type SuggestionType string

const (
	SuggestionTime     SuggestionType = "time"
	SuggestionLocation SuggestionType = "location"
	SuggestionGeneral  SuggestionType = "general"
)

// ParseSuggestionType maps an empty string to SuggestionGeneral.
func ParseSuggestionType(s string) (SuggestionType, error) {
	switch t := SuggestionType(strings.TrimSpace(s)); t {
	case "":
		return SuggestionGeneral, nil
	case SuggestionTime, SuggestionLocation, SuggestionGeneral:
		return t, nil
	default:
		return "", common.ErrorInvalidType
	}
}

// ParseMaxAttendees reads a capacity as typed into a form. Anything that is
// not a positive integer yields common.DefaultMaxAttendees.
func ParseMaxAttendees(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return common.DefaultMaxAttendees
	}
	return n
}
