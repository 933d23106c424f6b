package core

import (
	"fmt"
	"strings"
)

// ViewKind selects which subset of the conversation a subject can see.
type ViewKind int

const (
	// AllInvolved shows messages the subject sent, received, or that were
	// broadcast to everyone.
	AllInvolved ViewKind = iota
	// SentByMe shows only messages the subject sent.
	SentByMe
	// SentToMe shows only messages explicitly addressed to the subject.
	SentToMe
	// SystemAndMe shows system messages plus the subject's own messages.
	SystemAndMe
	// ConversationPairs groups the subject's exchanges into request/response
	// units so windowing can count whole pairs.
	ConversationPairs
)

// String returns the canonical configuration name of the view kind.
func (k ViewKind) String() string {
	switch k {
	case AllInvolved:
		return "all_involved"
	case SentByMe:
		return "sent_by_me"
	case SentToMe:
		return "sent_to_me"
	case SystemAndMe:
		return "system_and_me"
	case ConversationPairs:
		return "conversation_pairs"
	default:
		return "unknown"
	}
}

// ParseViewKind resolves a configuration string to a ViewKind.
func ParseViewKind(name string) (ViewKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "all_involved":
		return AllInvolved, nil
	case "sent_by_me":
		return SentByMe, nil
	case "sent_to_me":
		return SentToMe, nil
	case "system_and_me":
		return SystemAndMe, nil
	case "conversation_pairs":
		return ConversationPairs, nil
	default:
		return 0, &ConfigError{Field: "view", Reason: fmt.Sprintf("unknown view kind %q", name)}
	}
}

// ViewSpec names a view kind and the subject whose perspective it takes.
type ViewSpec struct {
	Kind      ViewKind `json:"kind"`
	SubjectID string   `json:"subject_id"`
}

// Unit selects how window limits are counted.
type Unit int

const (
	// UnitMessages counts individual messages.
	UnitMessages Unit = iota
	// UnitPairs counts request/response exchanges. Outside the
	// ConversationPairs view it is tolerated as "exchange count", i.e. two
	// messages per unit.
	UnitPairs
)

// String returns the canonical configuration name of the unit.
func (u Unit) String() string {
	switch u {
	case UnitMessages:
		return "messages"
	case UnitPairs:
		return "pairs"
	default:
		return "unknown"
	}
}

// Settings is the complete, immutable memory configuration applied to one
// job's view of the conversation. The zero MaxUnits means unlimited.
type Settings struct {
	View           ViewSpec `json:"view"`
	MaxUnits       int      `json:"max_units,omitempty"`
	Unit           Unit     `json:"unit"`
	PreserveSystem bool     `json:"preserve_system"`
}

// Validate checks structural consistency. It is called at binding time so
// invalid combinations fail the job before any agent is invoked; view builds
// never validate.
func (s Settings) Validate() error {
	if s.MaxUnits < 0 {
		return &ConfigError{Field: "max_units", Reason: "must be unset or a positive integer"}
	}
	if s.View.Kind < AllInvolved || s.View.Kind > ConversationPairs {
		return &ConfigError{Field: "view", Reason: fmt.Sprintf("unknown view kind %d", s.View.Kind)}
	}
	if s.Unit != UnitMessages && s.Unit != UnitPairs {
		return &ConfigError{Field: "unit", Reason: fmt.Sprintf("unknown unit %d", s.Unit)}
	}
	return nil
}

// Windowless returns a copy of the settings with the window limit removed.
// The filter and system preservation stay in effect.
func (s Settings) Windowless() Settings {
	s.MaxUnits = 0
	return s
}

// CacheKey returns a stable string identifying the settings for view caching.
func (s Settings) CacheKey() string {
	return fmt.Sprintf("%s:%s:%d:%s:%t", s.View.Kind, s.View.SubjectID, s.MaxUnits, s.Unit, s.PreserveSystem)
}

// Profile is a named, predefined memory configuration. Profiles form a
// closed set resolved to immutable Settings values; they are configuration
// shorthand, not behavior of their own.
type Profile int

const (
	// ProfileFull sees everything the subject is involved in, unlimited.
	ProfileFull Profile = iota
	// ProfileFocused sees involved messages windowed to the 20 most recent
	// exchanges, keeping system instructions.
	ProfileFocused
	// ProfileMinimal sees system messages plus the subject's own 5 most
	// recent messages.
	ProfileMinimal
	// ProfileGoldfish sees only the 2 most recent request/response pairs and
	// drops system instructions, for unbiased fresh judgments.
	ProfileGoldfish
)

// String returns the canonical configuration name of the profile.
func (p Profile) String() string {
	switch p {
	case ProfileFull:
		return "full"
	case ProfileFocused:
		return "focused"
	case ProfileMinimal:
		return "minimal"
	case ProfileGoldfish:
		return "goldfish"
	default:
		return "unknown"
	}
}

// ParseProfile resolves a configuration string to a Profile. Unknown names
// surface ErrUnknownProfile before any agent call.
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "full":
		return ProfileFull, nil
	case "focused":
		return ProfileFocused, nil
	case "minimal":
		return ProfileMinimal, nil
	case "goldfish":
		return ProfileGoldfish, nil
	default:
		return 0, &ConfigError{Field: "profile", Reason: fmt.Sprintf("unknown profile %q", name), Err: ErrUnknownProfile}
	}
}

// Settings resolves the profile to its concrete configuration for a subject.
func (p Profile) Settings(subjectID string) Settings {
	switch p {
	case ProfileFocused:
		return Settings{
			View:           ViewSpec{Kind: AllInvolved, SubjectID: subjectID},
			MaxUnits:       20,
			Unit:           UnitPairs,
			PreserveSystem: true,
		}
	case ProfileMinimal:
		return Settings{
			View:           ViewSpec{Kind: SystemAndMe, SubjectID: subjectID},
			MaxUnits:       5,
			Unit:           UnitMessages,
			PreserveSystem: true,
		}
	case ProfileGoldfish:
		return Settings{
			View:           ViewSpec{Kind: ConversationPairs, SubjectID: subjectID},
			MaxUnits:       2,
			Unit:           UnitPairs,
			PreserveSystem: false,
		}
	default:
		return Settings{
			View:           ViewSpec{Kind: AllInvolved, SubjectID: subjectID},
			Unit:           UnitMessages,
			PreserveSystem: true,
		}
	}
}
