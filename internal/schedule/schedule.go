// Package schedule loads the storm schedule the game rotates through.
package schedule

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/stormcast/internal/domain/gameclock"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
)

// Source values reported in Status.
const (
	SourceFile    = "file"
	SourceBuiltin = "builtin"
)

type document struct {
	Storms []model.StormSchedule `yaml:"storms"`
}

// Status describes where the loaded schedule came from.
type Status struct {
	Source   string `json:"source"`
	Path     string `json:"path,omitempty"`
	Storms   int    `json:"storms"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

// Load reads and validates a YAML schedule file.
func Load(path string) ([]model.StormSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML schedule document.
func Parse(data []byte) ([]model.StormSchedule, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	if err := Validate(doc.Storms); err != nil {
		return nil, err
	}
	return doc.Storms, nil
}

// LoadOrFallback loads path, or the built-in schedule when path is empty
// or unusable. A fallback caused by a failure is marked degraded.
func LoadOrFallback(ctx context.Context, path string) ([]model.StormSchedule, Status) {
	if path == "" {
		storms := Builtin()
		return storms, Status{Source: SourceBuiltin, Storms: len(storms)}
	}

	storms, err := Load(path)
	if err == nil {
		return storms, Status{Source: SourceFile, Path: path, Storms: len(storms)}
	}

	logger.Get().Named("schedule").Error(ctx, "schedule load failed, using built-in schedule",
		logger.String("path", path),
		logger.Error(err),
	)
	storms = Builtin()
	return storms, Status{
		Source:   SourceBuiltin,
		Path:     path,
		Storms:   len(storms),
		Degraded: true,
		Error:    err.Error(),
	}
}

// Validate checks ids, windows and checkpoint ordering.
func Validate(storms []model.StormSchedule) error {
	ids := make(map[string]struct{}, len(storms))
	for i, s := range storms {
		if s.ID == "" {
			return fmt.Errorf("%w: storm %d has no id", ErrInvalidSchedule, i)
		}
		if _, dup := ids[s.ID]; dup {
			return fmt.Errorf("%w: duplicate storm id %q", ErrInvalidSchedule, s.ID)
		}
		ids[s.ID] = struct{}{}

		if !s.GameEnd.After(s.GameStart) {
			return fmt.Errorf("%w: storm %q ends before it starts", ErrInvalidSchedule, s.ID)
		}
		if err := validateCheckpoints(s); err != nil {
			return err
		}
	}
	return nil
}

func validateCheckpoints(s model.StormSchedule) error {
	if len(s.Checkpoints) == 0 {
		return nil
	}
	if s.Checkpoints[0].Kind != model.KindBase {
		return fmt.Errorf("%w: storm %q must start with a base checkpoint", ErrInvalidSchedule, s.ID)
	}
	for i, c := range s.Checkpoints {
		if math.Abs(c.Lat) > 90 {
			return fmt.Errorf("%w: storm %q checkpoint %d latitude %v out of range", ErrInvalidSchedule, s.ID, i, c.Lat)
		}
		if i == 0 {
			continue
		}
		if c.Kind != model.KindPrediction {
			return fmt.Errorf("%w: storm %q has more than one base checkpoint", ErrInvalidSchedule, s.ID)
		}
		if i-1 >= len(gameclock.Labels) || c.Label != gameclock.Labels[i-1] {
			return fmt.Errorf("%w: storm %q checkpoint %d has label %q, want %s",
				ErrInvalidSchedule, s.ID, i, c.Label, expected(i-1))
		}
	}
	return nil
}

func expected(i int) string {
	if i < len(gameclock.Labels) {
		return fmt.Sprintf("%q", gameclock.Labels[i])
	}
	return "no more than four prediction checkpoints"
}
