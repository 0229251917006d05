package arena

// GameActionKind identifies an outbound game event.
type GameActionKind uint8

const (
	GameActionEnemyExplode GameActionKind = iota
)

// GameAction is an outbound event for remote peers.
type GameAction struct {
	Kind     GameActionKind
	Position Vec2
}

// PlayerActionKind identifies an inbound avatar control.
type PlayerActionKind uint8

const (
	PlayerMoveLeft PlayerActionKind = iota
	PlayerMoveRight
	PlayerMoveUp
	PlayerMoveDown
	PlayerFire
	PlayerLaunchMissile
)

// PlayerAction is an inbound control for the avatar with the given
// identifier.
type PlayerAction struct {
	Identifier int
	Kind       PlayerActionKind
}

// NetworkSink connects the world to remote peers. The world forwards every
// outbound game action and drains PollAction at the start of each frame.
type NetworkSink interface {
	NotifyGameAction(action GameAction)
	PollAction() (PlayerAction, bool)
}

type nopNetwork struct{}

func (nopNetwork) NotifyGameAction(GameAction)      {}
func (nopNetwork) PollAction() (PlayerAction, bool) { return PlayerAction{}, false }

// NetworkNode is the payload of a network node. It buffers outbound game
// actions until they are polled and forwards each one to its sink.
type NetworkNode struct {
	sink    NetworkSink
	pending []GameAction
}

// NewNetworkNode creates a network node forwarding to sink. A nil sink only
// buffers.
func (g *Graph) NewNetworkNode(sink NetworkSink) *Node {
	if sink == nil {
		sink = nopNetwork{}
	}
	n := g.newNode("network", NodeTypeNetwork, CategoryNetwork)
	n.Network = &NetworkNode{sink: sink}
	return n
}

// Notify records action and forwards it to the sink.
func (nn *NetworkNode) Notify(action GameAction) {
	nn.pending = append(nn.pending, action)
	nn.sink.NotifyGameAction(action)
}

// Poll removes and returns the oldest buffered action.
func (nn *NetworkNode) Poll() (GameAction, bool) {
	if len(nn.pending) == 0 {
		return GameAction{}, false
	}
	a := nn.pending[0]
	nn.pending[0] = GameAction{}
	nn.pending = nn.pending[1:]
	return a, true
}

// Pending returns the number of buffered actions.
func (nn *NetworkNode) Pending() int {
	return len(nn.pending)
}

func notifyNetwork(queue *CommandQueue, kind GameActionKind, pos Vec2) {
	queue.Push(Command{
		Category: CategoryNetwork,
		Action: func(n *Node, _ float64) {
			if n.Network != nil {
				n.Network.Notify(GameAction{Kind: kind, Position: pos})
			}
		},
	})
}
