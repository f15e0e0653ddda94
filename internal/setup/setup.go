// Package setup runs the interactive preferences wizard behind
// `chartdesk setup`.
package setup

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui/overlay"
)

// Options holds the CLI flags for chartdesk setup.
type Options struct {
	Clean bool // ignore existing config, start with factory defaults
}

// answers is the form state. Durations are edited as text.
type answers struct {
	Layout        string
	DebounceMs    string
	GraceMs       string
	NavFile       string
	History       bool
	Telemetry     bool
	WriteDefaults bool
}

func answersFrom(cfg *config.Config) answers {
	return answers{
		Layout:     cfg.Layout().String(),
		DebounceMs: strconv.Itoa(int(cfg.ResizeDebounce().Milliseconds())),
		GraceMs:    strconv.Itoa(int(cfg.HoverGrace().Milliseconds())),
		NavFile:    cfg.NavigationFile,
		History:    cfg.IsHistoryEnabled(),
		Telemetry:  cfg.IsTelemetryEnabled(),
	}
}

func validateMs(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number of milliseconds")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// apply writes the answers onto cfg.
func (a answers) apply(cfg *config.Config) error {
	mode, err := nav.ParseLayoutMode(a.Layout)
	if err != nil {
		return err
	}
	debounce, err := strconv.Atoi(strings.TrimSpace(a.DebounceMs))
	if err != nil {
		return fmt.Errorf("resize debounce: %w", err)
	}
	grace, err := strconv.Atoi(strings.TrimSpace(a.GraceMs))
	if err != nil {
		return fmt.Errorf("hover grace: %w", err)
	}
	cfg.DefaultLayout = mode.String()
	cfg.ResizeDebounceMs = debounce
	cfg.HoverGraceMs = &grace
	cfg.NavigationFile = strings.TrimSpace(a.NavFile)
	history, telemetry := a.History, a.Telemetry
	cfg.HistoryEnabled = &history
	cfg.TelemetryEnabled = &telemetry
	return nil
}

func newForm(a *answers, navMissing bool) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("which navigation layout should chartdesk start in?").
				Options(
					huh.NewOption("sidebar", nav.ModeSidebar.String()),
					huh.NewOption("top bar", nav.ModeTopBar.String()),
				).
				Value(&a.Layout),
			huh.NewInput().
				Title("resize debounce (ms)").
				Description("delay before the top bar re-fits its entries after a resize").
				Validate(validateMs).
				Value(&a.DebounceMs),
			huh.NewInput().
				Title("dropdown close grace (ms)").
				Description("how long a dropdown stays open after the pointer leaves it").
				Validate(validateMs).
				Value(&a.GraceMs),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("navigation file").
				Description("leave empty for ~/.config/chartdesk/navigation.toml").
				Value(&a.NavFile),
			huh.NewConfirm().
				Title("record navigation history?").
				Value(&a.History),
			huh.NewConfirm().
				Title("send crash reports?").
				Value(&a.Telemetry),
		),
	}
	if navMissing {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("no navigation file yet. write the default entries?").
				Value(&a.WriteDefaults),
		))
	}
	return huh.NewForm(groups...).WithTheme(overlay.ThemeRosePine())
}

// Run executes the chartdesk setup workflow.
func Run(opts Options) error {
	cfg := config.DefaultConfig()
	if !opts.Clean {
		cfg = config.LoadConfig()
	}

	a := answersFrom(cfg)
	navPath, err := cfg.NavigationPath()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(navPath)
	navMissing := errors.Is(statErr, os.ErrNotExist)
	a.WriteDefaults = navMissing

	if err := newForm(&a, navMissing).Run(); err != nil {
		return fmt.Errorf("wizard: %w", err)
	}
	return write(a, cfg)
}

// write persists the answers: config.json, and the default navigation file
// when requested.
func write(a answers, cfg *config.Config) error {
	if err := a.apply(cfg); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Println("wrote config")

	if !a.WriteDefaults {
		return nil
	}
	navPath, err := cfg.NavigationPath()
	if err != nil {
		return err
	}
	if err := config.SaveNavigationTo(config.DefaultNavigation(), navPath); err != nil {
		return fmt.Errorf("write navigation: %w", err)
	}
	fmt.Printf("wrote %s\n", navPath)
	return nil
}
