package project

import (
	"errors"
	"fmt"
)

var (
	ErrProjectCompleted  = errors.New("project is completed and cannot change status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrAlreadyInProgress = errors.New("project is already in progress")
	ErrUnknownStatus     = errors.New("unknown project status")
)

// MemberEffect describes what a transition does to the availability of the
// project's assigned team.
type MemberEffect int

const (
	MemberEffectNone MemberEffect = iota
	// MemberEffectReserve marks every team member unavailable.
	MemberEffectReserve
	// MemberEffectRelease marks every team member available again.
	MemberEffectRelease
)

// Transition is a validated status change.
type Transition struct {
	From         Status
	To           Status
	RequiresTeam bool
	Members      MemberEffect
}

// Plan validates from -> to. The only legal moves are
// not_started -> on_going and on_going -> completed; completed is terminal.
func Plan(from, to Status) (Transition, error) {
	if _, ok := ParseStatus(string(to)); !ok {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	switch from {
	case StatusCompleted:
		return Transition{}, ErrProjectCompleted
	case StatusNotStarted:
		if to == StatusOnGoing {
			return Transition{From: from, To: to, RequiresTeam: true, Members: MemberEffectReserve}, nil
		}
	case StatusOnGoing:
		if to == StatusCompleted {
			return Transition{From: from, To: to, Members: MemberEffectRelease}, nil
		}
		if to == StatusOnGoing {
			return Transition{}, ErrAlreadyInProgress
		}
	default:
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	return Transition{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// CanRecommend reports whether a new team may be formed for a project in
// status s. Projects already in progress cannot be re-formed.
func CanRecommend(s Status) error {
	if s == StatusOnGoing {
		return ErrAlreadyInProgress
	}
	return nil
}
