package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 100

// Name is a display name; any script is accepted
type Name struct {
	value string
}

func NewName(value string) (*Name, error) {
	normalized := strings.Join(strings.Fields(value), " ")

	if normalized == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(normalized) > maxNameLength {
		return nil, fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}

	return &Name{value: normalized}, nil
}

func (n *Name) String() string {
	return n.value
}
