package component

import "github.com/milk9111/showroom/physics"

// PhysicsBody links an entity to its body in the physics world. Dynamic
// bodies own the pose and are copied into the Transform after each step.
type PhysicsBody struct {
	Body *physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
