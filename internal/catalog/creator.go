package catalog

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired = errors.New("product name is required")
	ErrNameTaken    = errors.New("product name already exists")
)

// Creator runs the synchronous half of product creation: validate, check the
// committed names, then hand the insert to the store's queue.
//
// The name check and the eventual commit are separated by the queue, so two
// concurrent requests for the same name can both pass and both commit.
type Creator struct {
	Store Store
}

func (c *Creator) Create(params map[string]any) error {
	name, ok := params["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if c.Store.ExistsByName(name) {
		return ErrNameTaken
	}

	// a refused enqueue is logged by the store; the caller is still told the
	// creation is in progress
	_ = c.Store.SubmitCreate(name)
	return nil
}
