// Package climax provides the ClimaxPoint type, label file parsing,
// and random climax generation for slicing runs.
package climax

import "fmt"

// Type identifies which channel a climax point belongs to.
type Type string

const (
	// TypeMusic marks a music highlight ("m" in label files).
	TypeMusic Type = "m"
	// TypeVoice marks a voice highlight ("v" in label files).
	TypeVoice Type = "v"
)

// IsValid returns true if the type is music or voice.
func (t Type) IsValid() bool {
	return t == TypeMusic || t == TypeVoice
}

// ParseType converts a label file type character to a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown type %q (want m or v)", s)
	}
	return t, nil
}

// Point is a climax timestamp marking the conceptual center of an audio
// highlight. Points are immutable once created: they come either from a
// label file line or from Generate.
type Point struct {
	// Time is the climax timestamp in seconds from the start of the source.
	Time float64
	// Type is the channel the resulting slice belongs to.
	Type Type
	// Description is free text carried into the block registry.
	Description string
}

// String returns a short human-readable form used in logs and reports.
func (p Point) String() string {
	return fmt.Sprintf("%s@%.2fs (%s)", p.Type, p.Time, p.Description)
}
