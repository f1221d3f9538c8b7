package component

import "github.com/milk9111/showroom/input"

// Input points an entity at the host-owned keyboard snapshot.
type Input struct {
	State *input.State
}

var InputComponent = NewComponent[Input]()
