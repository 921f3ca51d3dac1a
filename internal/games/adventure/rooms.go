package adventure

import "github.com/vovakirdan/retro-arcade/internal/core"

// RoomID indexes the room table.
type RoomID int

const (
	GoldCastle RoomID = iota
	GoldFoyer
	Overworld1
	Overworld2
	Overworld3
	Overworld4
	Overworld5
	BlueMaze1
	BlueMaze2
	BlueMaze3
	BlackCastle
	BlackFoyer
	RedMaze1
	RedMaze2
	WhiteCastle
	WhiteFoyer
	DragonLair
	Secret

	RoomCount = int(Secret) + 1

	// NoRoom marks a closed side.
	NoRoom RoomID = -1
)

// Dir is a room side.
type Dir int

const (
	Up Dir = iota
	Down
	Left
	Right
)

// Wall and gap geometry shared by every room.
const (
	wallT    = 4
	gapX     = 60
	gapW     = 40
	sideGapY = 70
	sideGapH = 50
)

// Gate is the portcullis box across a castle's top opening.
var Gate = core.Box{X: 56, Y: 0, W: 48, H: 30}

// Room is one screen of the map. Exits name the neighbour behind each side;
// a castle's Up exit leads through its gate.
type Room struct {
	Name  string
	Exits [4]RoomID
	Walls []core.Box
	Key   ItemKind // Key that opens this room's gate, NoItem if it has none
	Color core.Color
}

// Castle reports whether the room has a gate.
func (r Room) Castle() bool { return r.Key != NoItem }

// Exit returns the neighbour behind side d.
func (r Room) Exit(d Dir) RoomID { return r.Exits[d] }

var rooms = buildRooms()

// Rooms returns the static map.
func Rooms() []Room {
	return rooms
}

func buildRooms() []Room {
	type def struct {
		name  string
		exits [4]RoomID // Up, Down, Left, Right
		maze  int
		key   ItemKind
		color core.Color
	}
	defs := [RoomCount]def{
		GoldCastle:  {"Gold Castle", [4]RoomID{GoldFoyer, Overworld1, NoRoom, NoRoom}, 0, ItemGoldKey, core.ColorYellow},
		GoldFoyer:   {"Gold Foyer", [4]RoomID{NoRoom, GoldCastle, NoRoom, NoRoom}, 0, NoItem, core.ColorYellow},
		Overworld1:  {"Overworld", [4]RoomID{GoldCastle, Overworld2, Overworld5, Overworld4}, 0, NoItem, core.ColorGreen},
		Overworld2:  {"Overworld", [4]RoomID{Overworld1, Overworld3, BlueMaze1, NoRoom}, 0, NoItem, core.ColorBrightGreen},
		Overworld3:  {"Overworld", [4]RoomID{Overworld2, NoRoom, BlueMaze3, NoRoom}, 0, NoItem, core.ColorGreen},
		Overworld4:  {"Overworld", [4]RoomID{WhiteCastle, NoRoom, Overworld1, NoRoom}, 0, NoItem, core.ColorBrightGreen},
		Overworld5:  {"Overworld", [4]RoomID{BlackCastle, DragonLair, NoRoom, Overworld1}, 0, NoItem, core.ColorGreen},
		BlueMaze1:   {"Blue Labyrinth", [4]RoomID{NoRoom, BlueMaze2, NoRoom, Overworld2}, 1, NoItem, core.ColorBlue},
		BlueMaze2:   {"Blue Labyrinth", [4]RoomID{BlueMaze1, BlueMaze3, NoRoom, NoRoom}, 2, NoItem, core.ColorBlue},
		BlueMaze3:   {"Blue Labyrinth", [4]RoomID{BlueMaze2, NoRoom, NoRoom, Overworld3}, 3, NoItem, core.ColorBlue},
		BlackCastle: {"Black Castle", [4]RoomID{BlackFoyer, Overworld5, NoRoom, NoRoom}, 0, ItemBlackKey, core.ColorGray},
		BlackFoyer:  {"Black Foyer", [4]RoomID{RedMaze1, BlackCastle, NoRoom, NoRoom}, 0, NoItem, core.ColorGray},
		RedMaze1:    {"Red Maze", [4]RoomID{RedMaze2, BlackFoyer, NoRoom, NoRoom}, 1, NoItem, core.ColorRed},
		RedMaze2:    {"Red Maze", [4]RoomID{NoRoom, RedMaze1, NoRoom, NoRoom}, 2, NoItem, core.ColorRed},
		WhiteCastle: {"White Castle", [4]RoomID{WhiteFoyer, Overworld4, NoRoom, NoRoom}, 0, ItemWhiteKey, core.ColorBrightWhite},
		WhiteFoyer:  {"White Foyer", [4]RoomID{NoRoom, WhiteCastle, NoRoom, NoRoom}, 0, NoItem, core.ColorWhite},
		DragonLair:  {"Dragon Lair", [4]RoomID{Overworld5, NoRoom, Secret, NoRoom}, 0, NoItem, core.ColorMagenta},
		Secret:      {"???", [4]RoomID{NoRoom, NoRoom, NoRoom, DragonLair}, 0, NoItem, core.ColorGray},
	}

	out := make([]Room, RoomCount)
	for i, d := range defs {
		walls := edgeWalls(d.exits)
		walls = append(walls, mazeWalls[d.maze]...)
		out[i] = Room{Name: d.name, Exits: d.exits, Walls: walls, Key: d.key, Color: d.color}
	}
	return out
}

// edgeWalls closes the border of a room, leaving a gap on every side that
// has an exit.
func edgeWalls(exits [4]RoomID) []core.Box {
	var w []core.Box
	if exits[Up] == NoRoom {
		w = append(w, core.Box{X: 0, Y: 0, W: WorldW, H: wallT})
	} else {
		w = append(w,
			core.Box{X: 0, Y: 0, W: gapX, H: wallT},
			core.Box{X: gapX + gapW, Y: 0, W: WorldW - gapX - gapW, H: wallT})
	}
	if exits[Down] == NoRoom {
		w = append(w, core.Box{X: 0, Y: WorldH - wallT, W: WorldW, H: wallT})
	} else {
		w = append(w,
			core.Box{X: 0, Y: WorldH - wallT, W: gapX, H: wallT},
			core.Box{X: gapX + gapW, Y: WorldH - wallT, W: WorldW - gapX - gapW, H: wallT})
	}
	if exits[Left] == NoRoom {
		w = append(w, core.Box{X: 0, Y: 0, W: wallT, H: WorldH})
	} else {
		w = append(w,
			core.Box{X: 0, Y: 0, W: wallT, H: sideGapY},
			core.Box{X: 0, Y: sideGapY + sideGapH, W: wallT, H: WorldH - sideGapY - sideGapH})
	}
	if exits[Right] == NoRoom {
		w = append(w, core.Box{X: WorldW - wallT, Y: 0, W: wallT, H: WorldH})
	} else {
		w = append(w,
			core.Box{X: WorldW - wallT, Y: 0, W: wallT, H: sideGapY},
			core.Box{X: WorldW - wallT, Y: sideGapY + sideGapH, W: wallT, H: WorldH - sideGapY - sideGapH})
	}
	return w
}

// Inner walls of the three labyrinth layouts. Layout 0 is an open room.
var mazeWalls = [4][]core.Box{
	nil,
	{
		{X: 30, Y: 30, W: 4, H: 80}, {X: 30, Y: 30, W: 60, H: 4}, {X: 90, Y: 30, W: 4, H: 50},
		{X: 60, Y: 80, W: 70, H: 4}, {X: 126, Y: 30, W: 4, H: 54}, {X: 30, Y: 130, W: 100, H: 4},
		{X: 60, Y: 110, W: 4, H: 20}, {X: 90, Y: 100, W: 4, H: 30}, {X: 30, Y: 155, W: 40, H: 4},
		{X: 100, Y: 150, W: 30, H: 4},
	},
	{
		{X: 20, Y: 40, W: 4, H: 110}, {X: 20, Y: 40, W: 50, H: 4}, {X: 70, Y: 40, W: 4, H: 40},
		{X: 40, Y: 80, W: 30, H: 4}, {X: 40, Y: 80, W: 4, H: 50}, {X: 90, Y: 30, W: 4, H: 130},
		{X: 90, Y: 60, W: 50, H: 4}, {X: 110, Y: 90, W: 4, H: 60}, {X: 110, Y: 90, W: 30, H: 4},
		{X: 60, Y: 130, W: 30, H: 4}, {X: 120, Y: 140, W: 4, H: 40},
	},
	{
		{X: 30, Y: 50, W: 100, H: 4}, {X: 30, Y: 50, W: 4, H: 60}, {X: 126, Y: 50, W: 4, H: 60},
		{X: 50, Y: 80, W: 60, H: 4}, {X: 50, Y: 80, W: 4, H: 40}, {X: 106, Y: 80, W: 4, H: 40},
		{X: 70, Y: 100, W: 20, H: 4}, {X: 30, Y: 130, W: 100, H: 4}, {X: 60, Y: 150, W: 4, H: 30},
		{X: 96, Y: 150, W: 4, H: 30},
	},
}
