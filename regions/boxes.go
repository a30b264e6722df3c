// Package regions finds annotated regions of page screenshots and
// defines the goal box format shared across the module.
//
// A goal box names a rectangular target on a page, such as a signup
// button, whose visibility the analysis should measure. Boxes are
// usually produced by [Detect] from a hand-annotated screenshot and
// stored as JSON next to the capture.
package regions

import (
	"encoding/json"
	"fmt"
	"os"
)

// GoalBox is a named rectangular target with the box stored as
// [x, y, w, h] pixel coordinates.
type GoalBox struct {
	Name string `json:"name"`
	Box  [4]int `json:"box"`
}

// Document is the on-disk JSON layout for goal boxes: the boxes plus
// provenance of the detection run.
type Document struct {
	GoalBoxes       []GoalBox `json:"goal_boxes"`
	SourceImage     string    `json:"source_image,omitempty"`
	DetectionMethod string    `json:"detection_method,omitempty"`
}

// ParseGoalBoxes decodes goal boxes from JSON holding either a bare
// array of boxes or a [Document] object.
func ParseGoalBoxes(data []byte) ([]GoalBox, error) {
	var boxes []GoalBox
	if err := json.Unmarshal(data, &boxes); err == nil {
		return boxes, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("regions: parsing goal boxes: %w", err)
	}
	return doc.GoalBoxes, nil
}

// LoadGoalBoxes reads goal boxes from a JSON file in either format
// accepted by ParseGoalBoxes.
func LoadGoalBoxes(path string) ([]GoalBox, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regions: reading goal boxes: %w", err)
	}
	boxes, err := ParseGoalBoxes(data)
	if err != nil {
		return nil, fmt.Errorf("regions: %s: %w", path, err)
	}
	return boxes, nil
}

// WriteFile saves the document as indented JSON.
func (d *Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("regions: encoding goal boxes: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("regions: writing goal boxes: %w", err)
	}
	return nil
}
