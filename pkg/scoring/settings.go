// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package scoring

const (
	DefaultBestOf             = 3
	DefaultTiebreakAt         = 6
	DefaultFinalSetTiebreak   = true
	DefaultFinalSetTiebreakTo = 10
	DefaultNoAd               = false
)

// SettingsOverrides carries caller-supplied settings. A nil field keeps the default.
type SettingsOverrides struct {
	BestOf             *int  `json:"bestOf,omitempty" yaml:"bestOf,omitempty"`
	TiebreakAt         *int  `json:"tiebreakAt,omitempty" yaml:"tiebreakAt,omitempty"`
	FinalSetTiebreak   *bool `json:"finalSetTiebreak,omitempty" yaml:"finalSetTiebreak,omitempty"`
	FinalSetTiebreakTo *int  `json:"finalSetTiebreakTo,omitempty" yaml:"finalSetTiebreakTo,omitempty"`
	NoAd               *bool `json:"noAd,omitempty" yaml:"noAd,omitempty"`
}

// DefaultSettings returns the conventional best-of-three format with a
// ten-point match tiebreak in the deciding set.
func DefaultSettings() Settings {
	return Settings{
		BestOf:             DefaultBestOf,
		TiebreakAt:         DefaultTiebreakAt,
		FinalSetTiebreak:   DefaultFinalSetTiebreak,
		FinalSetTiebreakTo: DefaultFinalSetTiebreakTo,
		NoAd:               DefaultNoAd,
	}
}

// MergeSettings applies overrides on top of DefaultSettings.
func MergeSettings(o SettingsOverrides) Settings {
	return o.ApplyTo(DefaultSettings())
}

// ApplyTo returns base with every non-nil override applied.
func (o SettingsOverrides) ApplyTo(base Settings) Settings {
	if o.BestOf != nil {
		base.BestOf = *o.BestOf
	}
	if o.TiebreakAt != nil {
		base.TiebreakAt = *o.TiebreakAt
	}
	if o.FinalSetTiebreak != nil {
		base.FinalSetTiebreak = *o.FinalSetTiebreak
	}
	if o.FinalSetTiebreakTo != nil {
		base.FinalSetTiebreakTo = *o.FinalSetTiebreakTo
	}
	if o.NoAd != nil {
		base.NoAd = *o.NoAd
	}
	return base
}

// Merge layers other on top of o; fields set in other win.
func (o SettingsOverrides) Merge(other SettingsOverrides) SettingsOverrides {
	if other.BestOf != nil {
		o.BestOf = other.BestOf
	}
	if other.TiebreakAt != nil {
		o.TiebreakAt = other.TiebreakAt
	}
	if other.FinalSetTiebreak != nil {
		o.FinalSetTiebreak = other.FinalSetTiebreak
	}
	if other.FinalSetTiebreakTo != nil {
		o.FinalSetTiebreakTo = other.FinalSetTiebreakTo
	}
	if other.NoAd != nil {
		o.NoAd = other.NoAd
	}
	return o
}

// CreateInitialState starts a match: one empty set, an ordinary game at
// love-all, firstServer to serve and no history.
func CreateInitialState(overrides SettingsOverrides, firstServer Player) MatchState {
	return MatchState{
		Settings:    MergeSettings(overrides),
		Sets:        []Set{{}},
		CurrentGame: CurrentGame{Mode: ModeRegular},
		Server:      firstServer,
		Status:      StatusInProgress,
	}
}
