package pitfall

// Seed is the room byte of room 0.
const Seed byte = 0xC4

// RoomCount is the size of the jungle. Room indices wrap around it.
const RoomCount = 256

// StepRight advances the room LFSR one room to the right.
func StepRight(b byte) byte {
	bit := (b>>3 ^ b>>4 ^ b>>5 ^ b>>7) & 1
	return b<<1 | bit
}

// StepLeft is the inverse of StepRight.
func StepLeft(b byte) byte {
	bit := (b>>4 ^ b>>5 ^ b>>6 ^ b) & 1
	return b>>1 | bit<<7
}

// RoomByte derives the layout byte of room i by stepping right from Seed.
func RoomByte(i int) byte {
	b := Seed
	for n := wrapRoom(i); n > 0; n-- {
		b = StepRight(b)
	}
	return b
}

func wrapRoom(i int) int {
	return (i%RoomCount + RoomCount) % RoomCount
}

// Scene is the ground archetype of a room.
type Scene int

const (
	ScenePit Scene = iota
	SceneTriplePit
	SceneCrocPond
	SceneTarPit
	SceneCrocPit
	SceneTreasure
	SceneQuicksand
	SceneGround
)

func (s Scene) String() string {
	switch s {
	case ScenePit:
		return "pit"
	case SceneTriplePit:
		return "triple pit"
	case SceneCrocPond:
		return "crocodile pond"
	case SceneTarPit:
		return "tar pit"
	case SceneCrocPit:
		return "crocodile pit"
	case SceneTreasure:
		return "treasure"
	case SceneQuicksand:
		return "quicksand"
	case SceneGround:
		return "ground"
	default:
		return "unknown"
	}
}

// Holes reports whether the scene has open ground the player can fall
// through.
func (s Scene) Holes() bool {
	return s == ScenePit || s == SceneTriplePit || s == SceneCrocPond || s == SceneCrocPit
}

// Crocs reports whether crocodiles wait in the water.
func (s Scene) Crocs() bool {
	return s == SceneCrocPond || s == SceneCrocPit
}

// Breathes reports whether the scene's pit grows and shrinks.
func (s Scene) Breathes() bool {
	return s == SceneTarPit || s == SceneQuicksand
}

// Kind identifies a room object.
type Kind int

const (
	KindLog Kind = iota
	KindFire
	KindSnake
	KindVine
	KindScorpion
	KindLadder
	KindCroc
	KindTreasure
)

func (k Kind) String() string {
	switch k {
	case KindLog:
		return "log"
	case KindFire:
		return "fire"
	case KindSnake:
		return "snake"
	case KindVine:
		return "vine"
	case KindScorpion:
		return "scorpion"
	case KindLadder:
		return "ladder"
	case KindCroc:
		return "crocodile"
	case KindTreasure:
		return "treasure"
	default:
		return "unknown"
	}
}

// Treasure is a collectible kind.
type Treasure int

const (
	TreasureRing Treasure = iota
	TreasureGoldBar
	TreasureSilverBar
	TreasureMoneyBag
)

var treasureValues = [...]int{5000, 4000, 3000, 2000}

// Value returns the points the treasure is worth.
func (t Treasure) Value() int {
	return treasureValues[t]
}

func (t Treasure) String() string {
	switch t {
	case TreasureRing:
		return "diamond ring"
	case TreasureGoldBar:
		return "gold bar"
	case TreasureSilverBar:
		return "silver bar"
	case TreasureMoneyBag:
		return "money bag"
	default:
		return "unknown"
	}
}

// Object is one thing placed in a room. Phase offsets a crocodile's mouth
// timer; Treasure is set for KindTreasure.
type Object struct {
	Kind     Kind
	X        float64
	Rolling  bool
	Phase    int
	Treasure Treasure
}

// Room is the decoded layout of one screen. Rooms are values and are never
// changed after they are built.
type Room struct {
	Index     int
	Byte      byte
	Objects   int // Surface object field of the room byte
	Scene     Scene
	Trees     int
	WallRight bool
	Items     []Object
}

// Has reports whether the room holds an object of kind k.
func (r Room) Has(k Kind) bool {
	_, ok := r.Find(k)
	return ok
}

// Find returns the first object of kind k.
func (r Room) Find(k Kind) (Object, bool) {
	for _, o := range r.Items {
		if o.Kind == k {
			return o, true
		}
	}
	return Object{}, false
}

// WallX returns the x of the underground brick wall.
func (r Room) WallX() float64 {
	if r.WallRight {
		return 450
	}
	return 350
}

// Rooms decodes rooms on demand and remembers them.
type Rooms struct {
	cache map[int]Room
}

// NewRooms returns an empty room cache.
func NewRooms() *Rooms {
	return &Rooms{cache: make(map[int]Room)}
}

// Get returns room i, building it on first use.
func (rs *Rooms) Get(i int) Room {
	i = wrapRoom(i)
	if r, ok := rs.cache[i]; ok {
		return r
	}
	r := Build(i)
	rs.cache[i] = r
	return r
}

// Build decodes room i from scratch.
func Build(i int) Room {
	i = wrapRoom(i)
	b := RoomByte(i)
	r := Room{
		Index:     i,
		Byte:      b,
		Objects:   int(b & 7),
		Scene:     Scene(b >> 3 & 7),
		Trees:     int(b >> 6 & 3),
		WallRight: b&0x80 != 0,
	}

	switch r.Scene {
	case ScenePit, SceneTriplePit:
		r.Items = append(r.Items, Object{Kind: KindLadder, X: 400})
	case SceneCrocPond, SceneCrocPit:
		r.Items = append(r.Items,
			Object{Kind: KindCroc, X: 340, Phase: 0},
			Object{Kind: KindCroc, X: 400, Phase: 60},
			Object{Kind: KindCroc, X: 460, Phase: 120},
		)
	case SceneTreasure:
		r.Items = append(r.Items, Object{Kind: KindTreasure, X: 600, Treasure: treasureFor(i)})
	}

	if r.Scene != SceneTreasure {
		r.Items = append(r.Items, surfaceObjects[r.Objects]...)
	}
	switch r.Objects {
	case 2, 3, 6, 7:
		r.Items = append(r.Items, Object{Kind: KindVine, X: 400})
	}
	if r.Scene <= SceneCrocPit {
		r.Items = append(r.Items, Object{Kind: KindScorpion, X: float64(200 + i%4*120)})
	}
	return r
}

// treasureFor picks the treasure of room i by how many treasure rooms
// come before it.
func treasureFor(i int) Treasure {
	n := 0
	b := Seed
	for j := 0; j < i; j++ {
		if Scene(b>>3&7) == SceneTreasure {
			n++
		}
		b = StepRight(b)
	}
	return Treasure(n % len(treasureValues))
}

func rolling(xs ...float64) []Object {
	objs := make([]Object, len(xs))
	for i, x := range xs {
		objs[i] = Object{Kind: KindLog, X: x, Rolling: true}
	}
	return objs
}

func static(xs ...float64) []Object {
	objs := make([]Object, len(xs))
	for i, x := range xs {
		objs[i] = Object{Kind: KindLog, X: x}
	}
	return objs
}

var surfaceObjects = [8][]Object{
	rolling(600),
	rolling(500, 580),
	rolling(350, 650),
	rolling(300, 500, 700),
	static(500),
	static(300, 500, 700),
	{{Kind: KindFire, X: 500}},
	{{Kind: KindSnake, X: 450}},
}

// TreasureRooms lists every room holding treasure.
func TreasureRooms() []int {
	var rooms []int
	b := Seed
	for i := 0; i < RoomCount; i++ {
		if Scene(b>>3&7) == SceneTreasure {
			rooms = append(rooms, i)
		}
		b = StepRight(b)
	}
	return rooms
}
