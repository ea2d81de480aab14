package opener

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

//go:embed openers.toml
var openersTOML []byte

// Definition describes how an opener program is invoked.
type Definition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args,omitempty"`
}

// File is the layout of openers.toml.
type File struct {
	Order   map[string][]string   `toml:"order"`
	Openers map[string]Definition `toml:"openers"`
}

// Registry holds opener definitions and the per-platform lookup order.
type Registry struct {
	openers  map[string]Definition
	order    map[string][]string
	goos     string
	lookPath func(string) (string, error)
}

// NewRegistry loads the embedded definitions and merges
// ~/.config/hnews/openers.toml over them when present.
func NewRegistry() (*Registry, error) {
	r, err := parseRegistry(openersTOML)
	if err != nil {
		return nil, err
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".config", "hnews", "openers.toml")); err == nil {
			if err := r.Merge(data); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func parseRegistry(data []byte) (*Registry, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing openers.toml: %w", err)
	}
	r := &Registry{
		openers:  map[string]Definition{},
		order:    map[string][]string{},
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
	}
	r.apply(f)
	return r, nil
}

// Merge overlays definitions from a TOML document. Named openers and
// platform orders replace the existing ones.
func (r *Registry) Merge(data []byte) error {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing user openers: %w", err)
	}
	r.apply(f)
	return nil
}

func (r *Registry) apply(f File) {
	for name, def := range f.Openers {
		r.openers[name] = def
	}
	for goos, names := range f.Order {
		r.order[goos] = names
	}
}

// Definition returns the opener named name.
func (r *Registry) Definition(name string) (Definition, bool) {
	def, ok := r.openers[name]
	return def, ok
}

// Resolve returns preferred when it is installed, otherwise the first
// installed opener in the platform order. Empty when nothing is found.
func (r *Registry) Resolve(preferred string) string {
	if preferred != "" {
		if _, err := r.lookPath(preferred); err == nil {
			return preferred
		}
	}
	for _, name := range r.order[r.goos] {
		if _, err := r.lookPath(name); err == nil {
			return name
		}
	}
	return ""
}

// Command builds the invocation of opener name for link. Unknown names are
// run with the link as their only argument.
func (r *Registry) Command(name, link string) (*exec.Cmd, error) {
	def, ok := r.openers[name]
	if !ok {
		return exec.Command(name, link), nil
	}

	supported := false
	for _, p := range def.Platforms {
		if p == r.goos {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("%s not supported on %s", name, r.goos)
	}

	args := append(append([]string(nil), def.Args...), link)
	return exec.Command(name, args...), nil
}
