// Package config loads the YAML roster definition and layers environment
// variable overrides and struct-tag validation on top of it, producing a
// fully resolved Config ready for the roster package to consume.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/reinka/oncall-scheduler/pkg/roster"
)

// rawConfig mirrors the YAML document shape exactly, before any semantic
// resolution (date parsing, timezone loading, weekday-token translation).
type rawConfig struct {
	Team        []string        `yaml:"team" validate:"required,min=1"`
	Schedule    rawSchedule     `yaml:"schedule" validate:"required"`
	Roles       rawRoles        `yaml:"roles" validate:"required,min=1,dive"`
	Constraints rawConstraints  `yaml:"constraints" validate:"required"`
	Rules       rawRules        `yaml:"rules"`
	Solver      rawSolver       `yaml:"solver" validate:"required"`
	Files       rawFiles        `yaml:"files" validate:"required"`
}

type rawSchedule struct {
	StartDate     string `yaml:"start_date" validate:"required"`
	NumBlocks     int    `yaml:"num_blocks" validate:"required,min=1"`
	WeeksPerBlock int    `yaml:"weeks_per_block" validate:"required,min=1"`
	Timezone      string `yaml:"timezone" validate:"required"`
}

type rawRole struct {
	ID       string             `validate:"required"`
	Name     string             `yaml:"name" validate:"required"`
	Schedule []rawScheduleEntry `yaml:"schedule" validate:"required,min=1,dive"`
}

// rawRoles decodes the roles mapping RoleId -> {name, schedule} while
// keeping document order: emission order must be "roles in the order they
// appear in the config", which a plain map[string]... would lose.
type rawRoles []rawRole

func (r *rawRoles) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("roles: expected a mapping of role id to definition")
	}
	out := make(rawRoles, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var role rawRole
		if err := node.Content[i+1].Decode(&role); err != nil {
			return fmt.Errorf("roles.%s: %w", node.Content[i].Value, err)
		}
		role.ID = node.Content[i].Value
		out = append(out, role)
	}
	*r = out
	return nil
}

type rawScheduleEntry struct {
	Days      []string `yaml:"days" validate:"required,min=1"`
	StartTime string   `yaml:"start_time" validate:"required"`
	EndTime   string   `yaml:"end_time" validate:"required"`
	SpanDays  int      `yaml:"span_days"`
}

type rawConstraints struct {
	MaxShiftsPerEngineer   int    `yaml:"max_shifts_per_engineer" validate:"required,min=1"`
	MaxWeekendsPerEngineer int    `yaml:"max_weekends_per_engineer"`
	WeekendRole            string `yaml:"weekend_role"`
}

type rawRules struct {
	RosterCompleteness bool `yaml:"roster_completeness"`
	RoleSeparation     bool `yaml:"role_separation"`
	Availability       bool `yaml:"availability"`
	NoConsecutiveWeeks bool `yaml:"no_consecutive_weeks"`
	MaxWorkload        bool `yaml:"max_workload"`
	WeekendLimit       bool `yaml:"weekend_limit"`
}

type rawSolver struct {
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"required,min=1"`
}

type rawFiles struct {
	AvailabilityCSV string `yaml:"availability_csv"`
	ScheduleCSV     string `yaml:"schedule_csv" validate:"required"`
	ICalOutput      string `yaml:"ical_output"`
	SlackWebhookURL string `yaml:"slack_webhook_url"`
}

// Overrides captures the environment-variable layer applied on top of the
// YAML document. Every field is optional; a zero value leaves the
// YAML-provided value untouched.
type Overrides struct {
	SolverSeed           int64  `env:"ROSTER_SOLVER_SEED" envDefault:"1"`
	SolverTimeoutSeconds int    `env:"ROSTER_SOLVER_TIMEOUT_SECONDS"`
	LogLevel             string `env:"ROSTER_LOG_LEVEL" envDefault:"info"`
	LogFormat            string `env:"ROSTER_LOG_FORMAT" envDefault:"json"`
	SlackWebhookURL      string `env:"ROSTER_SLACK_WEBHOOK_URL"`
}

// Files holds every path the generate/validate commands read from or write
// to.
type Files struct {
	AvailabilityCSV string
	ScheduleCSV     string
	ICalOutput      string
	SlackWebhookURL string
}

// SolverConfig holds the resolved solver knobs.
type SolverConfig struct {
	Seed    int64
	Timeout time.Duration
}

// Config is the fully resolved roster definition: YAML plus env overrides,
// with every date, timezone, and weekday token already translated into the
// roster package's domain types.
type Config struct {
	Team        roster.Team
	Roles       []roster.Role
	Schedule    roster.ScheduleConfig
	Rules       roster.Rules
	Constraints roster.Constraints
	Solver      SolverConfig
	Files       Files
	Location    *time.Location
	LogLevel    string
	LogFormat   string
}

// Load reads path, unmarshals and validates the YAML document, applies
// environment overrides, and resolves it into a Config. All failures are
// ConfigErrors or IOErrors; Load never returns a partially resolved Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapIOError("reading config file", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, wrapConfigError("parsing config yaml", err)
	}

	if err := validator.New().Struct(raw); err != nil {
		return nil, wrapConfigError("validating config structure", err)
	}

	loc, err := time.LoadLocation(raw.Schedule.Timezone)
	if err != nil {
		return nil, wrapConfigError(fmt.Sprintf("schedule.timezone %q", raw.Schedule.Timezone), err)
	}

	startDate, err := time.ParseInLocation("2006-01-02", raw.Schedule.StartDate, loc)
	if err != nil {
		return nil, wrapConfigError(fmt.Sprintf("schedule.start_date %q", raw.Schedule.StartDate), err)
	}

	roles, err := resolveRoles(raw.Roles)
	if err != nil {
		return nil, err
	}

	var overrides Overrides
	if err := env.Parse(&overrides); err != nil {
		return nil, wrapConfigError("parsing environment overrides", err)
	}

	timeout := time.Duration(raw.Solver.TimeoutSeconds) * time.Second
	if overrides.SolverTimeoutSeconds > 0 {
		timeout = time.Duration(overrides.SolverTimeoutSeconds) * time.Second
	}

	slackWebhook := raw.Files.SlackWebhookURL
	if overrides.SlackWebhookURL != "" {
		slackWebhook = overrides.SlackWebhookURL
	}

	cfg := &Config{
		Team:  toTeam(raw.Team),
		Roles: roles,
		Schedule: roster.ScheduleConfig{
			StartDate:     startDate,
			NumBlocks:     raw.Schedule.NumBlocks,
			WeeksPerBlock: raw.Schedule.WeeksPerBlock,
		},
		Rules: roster.Rules{
			RosterCompleteness: raw.Rules.RosterCompleteness,
			RoleSeparation:     raw.Rules.RoleSeparation,
			Availability:       raw.Rules.Availability,
			NoConsecutiveWeeks: raw.Rules.NoConsecutiveWeeks,
			MaxWorkload:        raw.Rules.MaxWorkload,
			WeekendLimit:       raw.Rules.WeekendLimit,
		},
		Constraints: roster.Constraints{
			MaxShiftsPerEngineer:   raw.Constraints.MaxShiftsPerEngineer,
			MaxWeekendsPerEngineer: raw.Constraints.MaxWeekendsPerEngineer,
			WeekendRole:            roster.RoleId(raw.Constraints.WeekendRole),
		},
		Solver: SolverConfig{
			Seed:    overrides.SolverSeed,
			Timeout: timeout,
		},
		Files: Files{
			AvailabilityCSV: raw.Files.AvailabilityCSV,
			ScheduleCSV:     raw.Files.ScheduleCSV,
			ICalOutput:      raw.Files.ICalOutput,
			SlackWebhookURL: slackWebhook,
		},
		Location:  loc,
		LogLevel:  overrides.LogLevel,
		LogFormat: overrides.LogFormat,
	}
	return cfg, nil
}

func toTeam(names []string) roster.Team {
	team := make(roster.Team, len(names))
	for i, n := range names {
		team[i] = roster.Engineer(n)
	}
	return team
}

func resolveRoles(raw []rawRole) ([]roster.Role, error) {
	roles := make([]roster.Role, 0, len(raw))
	for _, rr := range raw {
		entries := make([]roster.ScheduleEntry, 0, len(rr.Schedule))
		for _, re := range rr.Schedule {
			days := make([]time.Weekday, 0, len(re.Days))
			for _, token := range re.Days {
				d, err := roster.ParseWeekday(token)
				if err != nil {
					return nil, wrapConfigError(fmt.Sprintf("roles.%s.schedule.days", rr.ID), err)
				}
				days = append(days, d)
			}

			start, err := parseTimeOfDay(re.StartTime)
			if err != nil {
				return nil, wrapConfigError(fmt.Sprintf("roles.%s.schedule.start_time %q", rr.ID, re.StartTime), err)
			}
			end, err := parseTimeOfDay(re.EndTime)
			if err != nil {
				return nil, wrapConfigError(fmt.Sprintf("roles.%s.schedule.end_time %q", rr.ID, re.EndTime), err)
			}

			spanDays := re.SpanDays
			if spanDays == 0 {
				spanDays = 1
			}
			if spanDays < 1 {
				return nil, wrapConfigError(fmt.Sprintf("roles.%s.schedule.span_days", rr.ID), fmt.Errorf("must be >= 1, got %d", spanDays))
			}

			entries = append(entries, roster.ScheduleEntry{
				Days:      days,
				StartTime: start,
				EndTime:   end,
				SpanDays:  spanDays,
			})
		}

		roles = append(roles, roster.Role{
			ID:       roster.RoleId(rr.ID),
			Name:     rr.Name,
			Schedule: entries,
		})
	}
	return roles, nil
}

func parseTimeOfDay(s string) (roster.TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return roster.TimeOfDay{}, err
	}
	return roster.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func wrapConfigError(msg string, err error) error {
	return roster.WrapError(roster.KindConfig, msg, err)
}

func wrapIOError(msg string, err error) error {
	return roster.WrapError(roster.KindIO, msg, err)
}
