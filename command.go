package arena

// Command is a deferred action bound to a category mask. When dispatched
// through the scene graph, Action runs on every node whose category shares a
// bit with Category.
type Command struct {
	Category Category
	Action   func(n *Node, dt float64)
}

// EntityAction wraps fn so it only runs on nodes carrying an Entity payload.
func EntityAction(fn func(n *Node, e *Entity, dt float64)) func(*Node, float64) {
	return func(n *Node, dt float64) {
		if n.Entity != nil {
			fn(n, n.Entity, dt)
		}
	}
}

// AvatarAction wraps fn so it only runs on avatar nodes.
func AvatarAction(fn func(n *Node, a *Avatar, dt float64)) func(*Node, float64) {
	return func(n *Node, dt float64) {
		if n.Avatar != nil {
			fn(n, n.Avatar, dt)
		}
	}
}

// ProjectileAction wraps fn so it only runs on projectile nodes.
func ProjectileAction(fn func(n *Node, p *Projectile, dt float64)) func(*Node, float64) {
	return func(n *Node, dt float64) {
		if n.Projectile != nil {
			fn(n, n.Projectile, dt)
		}
	}
}

// CommandQueue is a FIFO buffer of commands produced during a frame and
// drained by the scene graph. It is not safe for concurrent use.
type CommandQueue struct {
	items []Command
	head  int
}

// Push appends cmd. Panics if cmd has no action.
func (q *CommandQueue) Push(cmd Command) {
	if cmd.Action == nil {
		panic("arena: command has no action")
	}
	q.items = append(q.items, cmd)
}

// Pop removes and returns the oldest command. Panics if the queue is empty.
func (q *CommandQueue) Pop() Command {
	if q.IsEmpty() {
		panic("arena: pop on empty command queue")
	}
	cmd := q.items[q.head]
	q.items[q.head] = Command{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return cmd
}

// IsEmpty reports whether no commands are pending.
func (q *CommandQueue) IsEmpty() bool {
	return q.head == len(q.items)
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	return len(q.items) - q.head
}
