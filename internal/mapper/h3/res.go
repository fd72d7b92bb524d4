package h3mapper

import (
	"fmt"

	h3 "github.com/uber/h3-go/v4"
)

// ToParent returns the ancestor of cell at parentRes. parentRes must not be
// finer than the cell itself; equal resolutions return cell unchanged.
func (m *Mapper) ToParent(cell string, parentRes int) (string, error) {
	if err := validateRes(parentRes); err != nil {
		return "", err
	}
	var c h3.Cell
	if err := c.UnmarshalText([]byte(cell)); err != nil {
		return "", fmt.Errorf("parse cell: %w", err)
	}
	if !c.IsValid() {
		return "", fmt.Errorf("invalid h3 cell %q", cell)
	}

	curRes := c.Resolution()
	if parentRes > curRes {
		return "", fmt.Errorf("parent resolution %d must be <= cell resolution %d", parentRes, curRes)
	}
	if parentRes == curRes {
		return cell, nil
	}
	p, err := c.Parent(parentRes)
	if err != nil {
		return "", fmt.Errorf("h3 parent: %w", err)
	}
	return p.String(), nil
}
