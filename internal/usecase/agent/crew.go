package agent

import (
	"strings"

	"marketing-crew/internal/domain/entity"
)

// Crew is the set of agents working one stage. Delegation tools read it at
// call time, so members added later are still reachable.
type Crew struct {
	members []*Agent
}

func NewCrew() *Crew {
	return &Crew{}
}

func (c *Crew) add(a *Agent) {
	c.members = append(c.members, a)
}

func (c *Crew) Members() []*Agent {
	return append([]*Agent(nil), c.members...)
}

func (c *Crew) Get(role entity.Role) (*Agent, bool) {
	for _, m := range c.members {
		if m.Role() == role {
			return m, true
		}
	}
	return nil, false
}

// Coworkers returns every member except the given role.
func (c *Crew) Coworkers(self entity.Role) []*Agent {
	result := make([]*Agent, 0, len(c.members))
	for _, m := range c.members {
		if m.Role() != self {
			result = append(result, m)
		}
	}
	return result
}

// find matches a coworker name the way a model tends to write it: any case,
// stray quotes or spaces.
func (c *Crew) find(self entity.Role, name string) (*Agent, bool) {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	for _, m := range c.Coworkers(self) {
		if strings.EqualFold(string(m.Role()), name) {
			return m, true
		}
	}
	return nil, false
}
