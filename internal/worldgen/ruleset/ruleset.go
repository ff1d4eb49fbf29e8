// Package ruleset supplies terrain property weights and resource tables
// as a read-only data record. The default record is embedded at build
// time; callers may substitute their own at generate time.
package ruleset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"civmap-backend/internal/worldgen/tile"
)

//go:embed default.yaml
var defaultYAML []byte

// ResourceRule describes one placeable resource
type ResourceRule struct {
	Name        string
	Terrains    []tile.TerrainType
	Temperature tile.TemperatureType // mask of admissible classes
	Weight      int
}

// Ruleset is the read-only record consumed by terrain and resource
// placement
type Ruleset struct {
	terrains  map[tile.TerrainType]tile.Properties
	densities map[tile.TerrainType]int
	resources []ResourceRule
}

// Properties returns the placement affinities of a terrain. Unknown
// terrains have all-zero affinities.
func (rs *Ruleset) Properties(t tile.TerrainType) tile.Properties {
	return rs.terrains[t]
}

// Density returns the target resource density for a terrain, in percent
func (rs *Ruleset) Density(t tile.TerrainType) int {
	return rs.densities[t]
}

// ResourcesFor returns the rules matching a terrain and temperature class,
// in table order
func (rs *Ruleset) ResourcesFor(t tile.TerrainType, temp tile.TemperatureType) []ResourceRule {
	var rules []ResourceRule
	for _, rule := range rs.resources {
		if rule.Temperature&temp == 0 {
			continue
		}
		for _, rt := range rule.Terrains {
			if rt == t {
				rules = append(rules, rule)
				break
			}
		}
	}
	return rules
}

type yamlProperties struct {
	Mountainous int `yaml:"mountainous"`
	Dry         int `yaml:"dry"`
	Wet         int `yaml:"wet"`
	Foliage     int `yaml:"foliage"`
	Cold        int `yaml:"cold"`
	Frozen      int `yaml:"frozen"`
	Tropical    int `yaml:"tropical"`
	Temperate   int `yaml:"temperate"`
	Green       int `yaml:"green"`
	Unused      int `yaml:"unused"`
}

type yamlResource struct {
	Name        string   `yaml:"name"`
	Terrains    []string `yaml:"terrains"`
	Temperature string   `yaml:"temperature"`
	Weight      int      `yaml:"weight"`
}

type yamlRuleset struct {
	Terrains  map[string]yamlProperties `yaml:"terrains"`
	Densities map[string]int            `yaml:"densities"`
	Resources []yamlResource            `yaml:"resources"`
}

var temperatureMasks = map[string]tile.TemperatureType{
	"frozen":    tile.TempFrozen,
	"cold":      tile.TempCold,
	"temperate": tile.TempTemperate,
	"tropical":  tile.TempTropical,
	"hot":       tile.TTHot,
	"nhot":      tile.TTNHot,
	"nfrozen":   tile.TTNFrozen,
	"all":       tile.TTAll,
}

// Parse decodes a YAML ruleset document
func Parse(data []byte) (*Ruleset, error) {
	var raw yamlRuleset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode ruleset: %w", err)
	}

	rs := &Ruleset{
		terrains:  make(map[tile.TerrainType]tile.Properties, len(raw.Terrains)),
		densities: make(map[tile.TerrainType]int, len(raw.Densities)),
	}
	for name, p := range raw.Terrains {
		rs.terrains[tile.TerrainType(name)] = tile.Properties{
			Mountainous: p.Mountainous,
			Dry:         p.Dry,
			Wet:         p.Wet,
			Foliage:     p.Foliage,
			Cold:        p.Cold,
			Frozen:      p.Frozen,
			Tropical:    p.Tropical,
			Temperate:   p.Temperate,
			Green:       p.Green,
			Unused:      p.Unused,
		}
	}
	for name, d := range raw.Densities {
		rs.densities[tile.TerrainType(name)] = d
	}
	for _, r := range raw.Resources {
		mask, ok := temperatureMasks[r.Temperature]
		if !ok {
			return nil, fmt.Errorf("resource %q: unknown temperature mask %q", r.Name, r.Temperature)
		}
		rule := ResourceRule{
			Name:        r.Name,
			Temperature: mask,
			Weight:      r.Weight,
		}
		for _, t := range r.Terrains {
			rule.Terrains = append(rule.Terrains, tile.TerrainType(t))
		}
		rs.resources = append(rs.resources, rule)
	}
	return rs, nil
}

// Default returns the embedded ruleset
func Default() (*Ruleset, error) {
	return Parse(defaultYAML)
}
