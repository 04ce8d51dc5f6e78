package sand

import (
	"errors"
	"fmt"
	"strings"
)

// Species enumerates every material a cell can hold.
type Species uint8

const (
	Empty Species = iota
	Wall
	Sand
	Water
	Stone
	Ice
	Gas
	Cloner
	Mite
	Wood
	Plant
	Fungus
	Seed
	Fire
	Lava
	Acid
	Dust
	Oil
	Rocket

	speciesCount
)

// ErrUnknownSpecies is returned when a material name cannot be resolved.
var ErrUnknownSpecies = errors.New("sand: unknown species")

// Class groups species by how they move.
type Class uint8

const (
	ClassVoid Class = iota
	ClassStatic
	ClassGranular
	ClassLiquid
	ClassGas
	ClassEnergy
	ClassSpecial
)

type properties struct {
	name      string
	class     Class
	density   uint8
	flammable bool
	blurb     string
}

// Density only matters for fluids and whatever falls through them.
var speciesTable = [speciesCount]properties{
	Empty:  {name: "Empty", class: ClassVoid, blurb: "Erases."},
	Wall:   {name: "Wall", class: ClassStatic, density: 255, blurb: "Indestructible."},
	Sand:   {name: "Sand", class: ClassGranular, density: 6, blurb: "Sinks in water."},
	Water:  {name: "Water", class: ClassLiquid, density: 3, blurb: "Puts out fire."},
	Stone:  {name: "Stone", class: ClassStatic, density: 8, blurb: "Forms arches, turns into sand under pressure."},
	Ice:    {name: "Ice", class: ClassStatic, density: 8, blurb: "Freezes water, slippery!"},
	Gas:    {name: "Gas", class: ClassGas, density: 1, flammable: true, blurb: "Highly flammable!"},
	Cloner: {name: "Cloner", class: ClassSpecial, density: 255, blurb: "Copies the first element it touches."},
	Mite:   {name: "Mite", class: ClassSpecial, density: 6, blurb: "Eats wood and plant, but loves dust! Slides on ice."},
	Wood:   {name: "Wood", class: ClassStatic, density: 8, flammable: true, blurb: "Sturdy, but biodegradable."},
	Plant:  {name: "Plant", class: ClassStatic, density: 8, flammable: true, blurb: "Thrives in wet environments."},
	Fungus: {name: "Fungus", class: ClassStatic, density: 8, blurb: "Spreads over everything."},
	Seed:   {name: "Seed", class: ClassStatic, density: 8, blurb: "Grows on sand, plant, and fungus."},
	Fire:   {name: "Fire", class: ClassEnergy, blurb: "Hot!"},
	Lava:   {name: "Lava", class: ClassLiquid, density: 5, blurb: "Flammable and heavy."},
	Acid:   {name: "Acid", class: ClassLiquid, density: 3, blurb: "Corrodes other elements."},
	Dust:   {name: "Dust", class: ClassGranular, density: 4, flammable: true, blurb: "Pretty, but dangerously explosive."},
	Oil:    {name: "Oil", class: ClassLiquid, density: 2, flammable: true, blurb: "Produces smoke when set on fire."},
	Rocket: {name: "Rocket", class: ClassSpecial, density: 255, blurb: "Explodes into copies of the first element it touches."},
}

// Valid reports whether s is a member of the enumeration.
func (s Species) Valid() bool { return s < speciesCount }

// String returns the display name.
func (s Species) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Species(%d)", uint8(s))
	}
	return speciesTable[s].name
}

// Class reports how the species moves.
func (s Species) Class() Class {
	if !s.Valid() {
		return ClassVoid
	}
	return speciesTable[s].class
}

// Density orders fluids; heavier species sink through lighter fluids.
func (s Species) Density() uint8 {
	if !s.Valid() {
		return 0
	}
	return speciesTable[s].density
}

// Flammable reports whether Fire or Lava can ignite the species.
func (s Species) Flammable() bool { return s.Valid() && speciesTable[s].flammable }

// Fluid reports whether the species can be displaced by denser material.
func (s Species) Fluid() bool {
	c := s.Class()
	return c == ClassLiquid || c == ClassGas
}

// Corrodible reports whether Acid dissolves the species.
func (s Species) Corrodible() bool {
	return s.Valid() && s != Empty && s != Wall && s != Acid
}

// Hot reports whether the species ignites and melts its neighbours.
func (s Species) Hot() bool { return s == Fire || s == Lava }

// ParseSpecies resolves a case-insensitive material name.
func ParseSpecies(name string) (Species, error) {
	name = strings.TrimSpace(name)
	for i := Species(0); i < speciesCount; i++ {
		if strings.EqualFold(speciesTable[i].name, name) {
			return i, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
}

// Material is one entry of the material menu.
type Material struct {
	Species     Species
	Name        string
	Description string
}

var menuOrder = [...]Species{
	Water, Fire, Lava, Seed, Sand, Plant, Rocket, Oil, Acid, Stone,
	Wood, Mite, Gas, Ice, Cloner, Dust, Fungus, Wall, Empty,
}

// Catalog lists every paintable species in menu order.
func Catalog() []Material {
	out := make([]Material, 0, len(menuOrder))
	for _, s := range menuOrder {
		out = append(out, Material{Species: s, Name: s.String(), Description: speciesTable[s].blurb})
	}
	return out
}
