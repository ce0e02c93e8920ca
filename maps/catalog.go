// Package maps implements the game-day map tracking commands.
package maps

import (
	"bucket-chan/commands"
	"bucket-chan/contract"
	"bucket-chan/domain"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	hostingNotice = "This formatted message is for gameday hosting convenience."
	addUsage      = "Invalid format: !add <map> <url>"
)

// Catalog owns the list of suggested maps. The registry only routes to it.
type Catalog struct {
	repository contract.IMapRepository
	log        *slog.Logger
	now        func() time.Time
}

func NewCatalog(repository contract.IMapRepository, log *slog.Logger) *Catalog {
	return &Catalog{repository: repository, log: log, now: time.Now}
}

// Register wires !maps, !add and !addmap into registry.
func (c *Catalog) Register(registry *commands.Registry) error {
	add := commands.Reply(c.Add)
	for pattern, handler := range map[string]commands.Handler{
		"!maps":   commands.Action(c.List),
		"!add":    add,
		"!addmap": add,
	} {
		if err := registry.Register(pattern, handler); err != nil {
			return err
		}
	}
	return nil
}

// Add handles "!add <map> <url>".
func (c *Catalog) Add(tokens []string) string {
	if len(tokens) != 3 {
		return addUsage
	}
	name, url := tokens[1], tokens[2]
	err := c.repository.Add(domain.MapEntry{
		ID:      uuid.New(),
		Name:    name,
		URL:     url,
		AddedAt: c.now(),
	})
	if err != nil {
		c.log.Error("Unable to store map", "map", name, "error", err)
		return fmt.Sprintf("Unable to add %s", name)
	}
	c.log.Info("Map added", "map", name, "url", url)
	return "Added " + name
}

// List handles "!maps": the names go to the room, the names with their
// urls go privately to whoever asked.
func (c *Catalog) List(_ []string, responder commands.Responder) {
	entries, err := c.repository.List()
	if err != nil {
		c.log.Error("Unable to list maps", "error", err)
		responder.SendPublic("Unable to list maps right now")
		return
	}

	names := lo.Map(entries, func(e domain.MapEntry, _ int) string { return e.Name })
	responder.SendPublic("Maps: " + strings.Join(names, ", "))

	responder.SendPrivate(hostingNotice)
	responder.SendPrivate(strings.Join(lo.Map(entries, func(e domain.MapEntry, _ int) string {
		return e.Name + " : " + e.URL
	}), " | "))
}
