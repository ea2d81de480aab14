package opener

import (
	"fmt"
	"os/exec"

	"github.com/pders01/hnews/internal/config"
	"github.com/pders01/hnews/internal/validation"
)

// Launcher opens links in an external program.
type Launcher struct {
	registry  *Registry
	preferred string
	validator *validation.URLValidator
	start     func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewRegistry()
	if err != nil {
		// Fall back to no definitions; Command then runs names bare
		registry = &Registry{
			openers:  map[string]Definition{},
			order:    map[string][]string{},
			lookPath: exec.LookPath,
		}
	}

	return &Launcher{
		registry:  registry,
		preferred: cfg.Opener.Command,
		validator: validation.NewLinkValidator(),
		start:     startDetached,
	}
}

// Open validates link and hands it to the resolved opener without waiting
// for it to exit.
func (l *Launcher) Open(link string) error {
	normalized, err := l.validator.ValidateAndNormalize(link)
	if err != nil {
		return err
	}

	name := l.registry.Resolve(l.preferred)
	if name == "" {
		return fmt.Errorf("no application found to open URL")
	}

	cmd, err := l.registry.Command(name, normalized)
	if err != nil {
		return err
	}

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
