package services

import (
	"strings"

	"trip-planner-service/internal/domain"
)

// resolvedCity carries the three identities of one city: its distance-graph
// name, its POI-pool name, and the short form shown to users.
type resolvedCity struct {
	distance string
	poi      string
	display  string
}

// resolveCity maps any accepted spelling (case- and accent-insensitive,
// either naming world) onto a resolved city.
func (p *Planner) resolveCity(name string) (resolvedCity, error) {
	key := normalizeCityKey(name)
	distanceName, ok := p.aliasToDistance[key]
	if !ok {
		return resolvedCity{}, domain.UnknownCityError(name)
	}
	return p.resolved(distanceName), nil
}

// resolved builds the identity triple for a known distance-graph name.
func (p *Planner) resolved(distanceName string) resolvedCity {
	return resolvedCity{
		distance: distanceName,
		poi:      p.mapping.DistanceToPOI[distanceName],
		display:  p.displayName(distanceName),
	}
}

// displayName shortens a distance-graph name for output ("Bern,
// Switzerland" -> "Bern"). Empty input stays empty.
func (p *Planner) displayName(distanceName string) string {
	if distanceName == "" {
		return ""
	}
	return strings.SplitN(distanceName, ",", 2)[0]
}

// buildAliases indexes every accepted spelling: the POI name, the full
// distance name, its suffix-free form, and the profile's extra aliases.
func (p *Planner) buildAliases() map[string]string {
	aliases := map[string]string{}
	for distanceName, poiName := range p.mapping.DistanceToPOI {
		for _, variant := range []string{
			poiName,
			distanceName,
			strings.TrimSuffix(distanceName, p.mapping.CountrySuffix),
		} {
			aliases[normalizeCityKey(variant)] = distanceName
		}
	}
	for variant, distanceName := range p.mapping.ExtraAliases {
		aliases[normalizeCityKey(variant)] = distanceName
	}
	return aliases
}
