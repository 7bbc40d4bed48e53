// Package assignment loads candidate finger assignments from YAML files.
// Each hand is a list of per-slice fingerings; a null slot leaves the note
// unassigned:
//
//	right:
//	  - [1, 3, 5]
//	  - [2]
//	  - [~, 1]
//	left:
//	  - [5]
package assignment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"handspan/internal/music"
)

// File holds the parsed assignments of both hands. A hand with no entries
// stays nil.
type File struct {
	Right []music.Fingering
	Left  []music.Fingering
}

type rawFile struct {
	Right [][]*int `yaml:"right"`
	Left  [][]*int `yaml:"left"`
}

func convertHand(hand string, raw [][]*int) ([]music.Fingering, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	fingerings := make([]music.Fingering, 0, len(raw))
	for i, slots := range raw {
		assignments := make([]music.Assignment, 0, len(slots))
		for j, slot := range slots {
			if slot == nil {
				assignments = append(assignments, music.Unassigned())
				continue
			}
			finger, err := music.NewFinger(*slot)
			if err != nil {
				return nil, fmt.Errorf("%s hand, slice %d, note %d: %w", hand, i, j, err)
			}
			assignments = append(assignments, music.Assigned(finger))
		}
		fingerings = append(fingerings, music.NewFingering(assignments...))
	}
	return fingerings, nil
}

// Parse reads assignments from YAML content.
func Parse(data []byte) (File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("error unmarshaling assignment: %w", err)
	}

	right, err := convertHand("right", raw.Right)
	if err != nil {
		return File{}, err
	}
	left, err := convertHand("left", raw.Left)
	if err != nil {
		return File{}, err
	}

	return File{Right: right, Left: left}, nil
}

// Load reads assignments from a YAML file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("error reading assignment file: %w", err)
	}
	return Parse(data)
}
