package client

import "strings"

// Capabilities is the set of operation groups a backend serves.
type Capabilities uint8

const (
	CapProjectBlueprints Capabilities = 1 << iota
	CapCatalog
	CapCallerBlueprints
	CapInteractions
)

// CoreCapabilities is assumed for a backend that cannot report its own.
const CoreCapabilities = CapProjectBlueprints | CapCatalog

var capabilityNames = []struct {
	cap  Capabilities
	name string
}{
	{CapProjectBlueprints, "project_blueprints"},
	{CapCatalog, "catalog"},
	{CapCallerBlueprints, "caller_blueprints"},
	{CapInteractions, "interactions"},
}

func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

func (c Capabilities) Names() []string {
	names := []string{}
	for _, n := range capabilityNames {
		if c.Has(n.cap) {
			names = append(names, n.name)
		}
	}
	return names
}

func (c Capabilities) String() string {
	return strings.Join(c.Names(), ",")
}

// ParseCapabilities ignores names it does not know.
func ParseCapabilities(names []string) Capabilities {
	var c Capabilities
	for _, name := range names {
		for _, n := range capabilityNames {
			if n.name == name {
				c |= n.cap
			}
		}
	}
	return c
}
