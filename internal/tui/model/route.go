package model

// Route is one navigation state: the block receiving input and the block
// that Enter would activate.
type Route struct {
	Active  Block
	Hovered Block
}

// Direction is a directional key.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// adjacency moves the hover between the dashboard panels.
var adjacency = map[Kind]map[Direction]Kind{
	KindLog:        {DirDown: KindBuild},
	KindBuild:      {DirUp: KindLog, DirRight: KindDeployment, DirDown: KindDatabase},
	KindDeployment: {DirLeft: KindBuild, DirUp: KindLog},
	KindDatabase:   {DirUp: KindBuild},
}

// Neighbour returns the block next to b in direction d.
func Neighbour(b Block, d Direction) (Block, bool) {
	k, ok := adjacency[b.Kind][d]
	if !ok {
		return b, false
	}
	return Block{Kind: k}, true
}

// Navigator is the stack of routes. It is never empty.
type Navigator struct {
	stack []Route
}

// NewNavigator starts with nothing active and the log panel hovered.
func NewNavigator() *Navigator {
	return &Navigator{stack: []Route{{Active: Empty(), Hovered: Log()}}}
}

// Current returns the route on top of the stack.
func (n *Navigator) Current() Route {
	return n.stack[len(n.stack)-1]
}

// Push makes r the current route.
func (n *Navigator) Push(r Route) {
	n.stack = append(n.stack, r)
}

// Pop restores the previous route. At the root it only deactivates the
// current block, keeping the hover.
func (n *Navigator) Pop() Route {
	if len(n.stack) == 1 {
		n.stack[0].Active = Empty()
		return n.stack[0]
	}
	n.stack = n.stack[:len(n.stack)-1]
	return n.Current()
}

// Set replaces the current route in place.
func (n *Navigator) Set(r Route) {
	n.stack[len(n.stack)-1] = r
}

// Depth is the number of routes on the stack.
func (n *Navigator) Depth() int {
	return len(n.stack)
}
