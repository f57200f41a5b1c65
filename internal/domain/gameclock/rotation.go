package gameclock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/stormcast/internal/domain/model"
)

// Mode selects how the schedule maps onto wall-clock time.
type Mode string

const (
	// ModeStatic uses each storm's own GameStart/GameEnd.
	ModeStatic Mode = "static"
	// ModeDaily plays schedule[k mod n] on day k since the epoch.
	ModeDaily Mode = "daily"
	// ModeWeekly plays schedule[k mod n] in week k since the epoch.
	ModeWeekly Mode = "weekly"
)

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown rotation mode")

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStatic, ModeDaily, ModeWeekly:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Period is the slot length of a rotating mode, zero for static.
func (m Mode) Period() time.Duration {
	switch m {
	case ModeDaily:
		return 24 * time.Hour
	case ModeWeekly:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

// Rotation picks the storm in play without persisted state.
type Rotation struct {
	mode     Mode
	epoch    time.Time
	schedule []model.StormSchedule
}

// NewRotation builds a rotation over schedule.
func NewRotation(schedule []model.StormSchedule, mode Mode, epoch time.Time) (*Rotation, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	return &Rotation{mode: mode, epoch: epoch, schedule: schedule}, nil
}

// Mode returns the rotation mode.
func (r *Rotation) Mode() Mode { return r.mode }

// Schedule returns the loaded storms as stored.
func (r *Rotation) Schedule() []model.StormSchedule { return r.schedule }

// Lookup finds a storm by id in the loaded schedule.
func (r *Rotation) Lookup(stormID string) (model.StormSchedule, bool) {
	for _, s := range r.schedule {
		if s.ID == stormID {
			return s, true
		}
	}
	return model.StormSchedule{}, false
}

// Current returns the storm in play at now with its game window
// materialized for rotating modes.
func (r *Rotation) Current(now time.Time) (model.StormSchedule, bool) {
	if len(r.schedule) == 0 {
		return model.StormSchedule{}, false
	}
	if r.mode == ModeStatic {
		return ActiveStorm(r.schedule, now)
	}
	return r.slot(r.slotIndex(now)), true
}

// Candidates returns storms that may have a closing boundary in (from, to].
func (r *Rotation) Candidates(from, to time.Time) []model.StormSchedule {
	if len(r.schedule) == 0 || to.Before(from) {
		return nil
	}
	if r.mode == ModeStatic {
		return r.schedule
	}
	var out []model.StormSchedule
	for k := r.slotIndex(from.Add(-GameSpan)); k <= r.slotIndex(to); k++ {
		out = append(out, r.slot(k))
	}
	return out
}

func (r *Rotation) slotIndex(t time.Time) int64 {
	period := r.mode.Period()
	d := t.Sub(r.epoch)
	k := int64(d / period)
	if d%period < 0 {
		k--
	}
	return k
}

func (r *Rotation) slot(k int64) model.StormSchedule {
	n := int64(len(r.schedule))
	s := r.schedule[((k%n)+n)%n]
	period := r.mode.Period()
	s.GameStart = r.epoch.Add(time.Duration(k) * period)
	s.GameEnd = s.GameStart.Add(period)
	return s
}
