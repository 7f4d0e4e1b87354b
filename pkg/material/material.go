// Package material defines surface reflectance models.
package material

import (
	"fmt"
	"strings"
)

// Kind selects the reflectance model of a surface
type Kind int

const (
	// Diffuse is an ideal Lambertian reflector
	Diffuse Kind = iota
)

// String returns the scene-file name of the kind
func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Supported reports whether BRDF can evaluate the kind
func (k Kind) Supported() bool {
	return k == Diffuse
}

// ParseKind converts a scene-file name to a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "diffuse", "lambertian":
		return Diffuse, nil
	default:
		return 0, fmt.Errorf("unknown material %q", name)
	}
}
