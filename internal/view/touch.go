package view

// Action is what a touch zone does when hit.
type Action int

const (
	ActionNone Action = iota
	ActionPagePrev
	ActionPageNext
	ActionSelect
)

func (a Action) String() string {
	switch a {
	case ActionPagePrev:
		return "page-prev"
	case ActionPageNext:
		return "page-next"
	case ActionSelect:
		return "select"
	default:
		return "none"
	}
}

// Zone is a touchable rectangle in monitor coordinates. Index carries the
// item index for ActionSelect zones.
type Zone struct {
	X, Y, W, H int
	Action     Action
	Index      int
}

func (z Zone) contains(x, y int) bool {
	return x >= z.X && x < z.X+z.W && y >= z.Y && y < z.Y+z.H
}

// Zones is the touch map for one rendered frame. It is rebuilt on every
// render, so a touch can never dispatch against a stale layout.
type Zones struct {
	zones []Zone
}

// Reset clears the map at the start of a render pass.
func (zs *Zones) Reset() { zs.zones = zs.zones[:0] }

// Add registers a zone. Later zones win over earlier ones on overlap, so a
// strategy can lay a whole-row zone first and a button on top.
func (zs *Zones) Add(z Zone) {
	if z.W <= 0 || z.H <= 0 {
		return
	}
	zs.zones = append(zs.zones, z)
}

// Hit returns the topmost zone containing (x, y).
func (zs *Zones) Hit(x, y int) (Zone, bool) {
	for i := len(zs.zones) - 1; i >= 0; i-- {
		if zs.zones[i].contains(x, y) {
			return zs.zones[i], true
		}
	}
	return Zone{}, false
}

// Len returns the number of registered zones.
func (zs *Zones) Len() int { return len(zs.zones) }
