package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNoItems is returned when a suggestion is requested for an empty inventory.
	ErrNoItems = errors.New("no food items in inventory")
	// ErrNoIngredients means no ingredient names could be read from a suggestion.
	ErrNoIngredients = errors.New("no ingredients found in suggestion")
)

// ValidationError reports every rejected input field. Nothing is written
// when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}
