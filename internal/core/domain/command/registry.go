package command

import (
	"eggbot/internal/core/domain"
	"eggbot/internal/core/port"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// table is a name→command mapping that remembers insertion order.
type table struct {
	keys     []string
	commands map[string]port.Command
}

func newTable() *table {
	return &table{commands: make(map[string]port.Command)}
}

func (t *table) set(key string, cmd port.Command) {
	if _, ok := t.commands[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.commands[key] = cmd
}

func (t *table) get(key string) (port.Command, bool) {
	cmd, ok := t.commands[key]
	return cmd, ok
}

func (t *table) delete(key string) {
	if _, ok := t.commands[key]; !ok {
		return
	}
	delete(t.commands, key)
	t.keys = slices.DeleteFunc(t.keys, func(k string) bool { return k == key })
}

// Registry holds the primary, sub-command and alias tables.
type Registry struct {
	mu          sync.RWMutex
	commands    *table
	subCommands *table
	aliases     *table
}

func NewRegistry() *Registry {
	return &Registry{
		commands:    newTable(),
		subCommands: newTable(),
		aliases:     newTable(),
	}
}

// Add places cmd into the primary or sub-command table and indexes its
// aliases. A name or alias already present in any table is rejected and
// nothing is inserted.
func (r *Registry) Add(cmd port.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.add(cmd)
}

func (r *Registry) add(cmd port.Command) error {
	help := cmd.Definition().Help
	name := strings.ToLower(help.Name)
	if name == "" {
		return fmt.Errorf("%w: empty command name", domain.ErrNameCollision)
	}

	keys := make([]string, 0, len(help.Aliases)+1)
	keys = append(keys, name)
	for _, alias := range help.Aliases {
		keys = append(keys, strings.ToLower(alias))
	}

	for i, key := range keys {
		if slices.Contains(keys[:i], key) || r.lookup(key) != nil {
			return fmt.Errorf("%w: %q (command %q)", domain.ErrNameCollision, key, name)
		}
	}

	if cmd.Definition().Conf.IsSubCommand {
		r.subCommands.set(name, cmd)
	} else {
		r.commands.set(name, cmd)
	}

	for _, alias := range keys[1:] {
		r.aliases.set(alias, cmd)
	}

	log.Info().Str("command", name).Strs("aliases", keys[1:]).
		Bool("subCommand", cmd.Definition().Conf.IsSubCommand).Msg("adding command to registry")

	return nil
}

func (r *Registry) lookup(name string) port.Command {
	if cmd, ok := r.commands.get(name); ok {
		return cmd
	}
	if cmd, ok := r.subCommands.get(name); ok {
		return cmd
	}
	if cmd, ok := r.aliases.get(name); ok {
		return cmd
	}

	return nil
}

// Get returns the first match across the primary, sub-command and alias tables.
func (r *Registry) Get(name string) (port.Command, error) {
	log.Debug().Str("command", name).Msg("fetching command from registry")

	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd := r.lookup(strings.ToLower(name))
	if cmd == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, name)
	}

	return cmd, nil
}

// AllNames concatenates the keys of the primary, sub-command and alias tables.
func (r *Registry) AllNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands.keys)+len(r.subCommands.keys)+len(r.aliases.keys))
	names = append(names, r.commands.keys...)
	names = append(names, r.subCommands.keys...)
	names = append(names, r.aliases.keys...)

	return names
}

// Remove unregisters the command stored under name and every alias pointing
// to it. Removing by alias is not supported.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.remove(strings.ToLower(name)) == nil {
		return fmt.Errorf("%w: %s", domain.ErrCommandNotFound, name)
	}

	return nil
}

// remove returns the removed command, or nil when name is not registered.
func (r *Registry) remove(name string) port.Command {
	cmd, ok := r.commands.get(name)
	if ok {
		r.commands.delete(name)
	} else if cmd, ok = r.subCommands.get(name); ok {
		r.subCommands.delete(name)
	} else {
		return nil
	}

	for _, alias := range slices.Clone(r.aliases.keys) {
		if owner, _ := r.aliases.get(alias); owner == cmd {
			r.aliases.delete(alias)
		}
	}

	log.Info().Str("command", name).Msg("removed command from registry")

	return cmd
}

// Reload replaces a previously registered command of the same name in one
// step. When cmd cannot be added the previous command is put back.
func (r *Registry) Reload(cmd port.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.remove(strings.ToLower(cmd.Definition().Help.Name))

	err := r.add(cmd)
	if err != nil && previous != nil {
		if restoreErr := r.add(previous); restoreErr != nil {
			log.Err(restoreErr).Str("command", previous.Definition().Help.Name).Msg("failed to restore command")
		}
	}

	return err
}

// Commands returns the primary commands in registration order.
func (r *Registry) Commands() []port.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]port.Command, 0, len(r.commands.keys))
	for _, key := range r.commands.keys {
		list = append(list, r.commands.commands[key])
	}

	return list
}

// SubCommandsOf returns the sub-commands registered as "<parent>-<name>".
func (r *Registry) SubCommandsOf(parent string) []port.Command {
	prefix := strings.ToLower(parent) + "-"

	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []port.Command
	for _, key := range r.subCommands.keys {
		if strings.HasPrefix(key, prefix) {
			list = append(list, r.subCommands.commands[key])
		}
	}

	return list
}
