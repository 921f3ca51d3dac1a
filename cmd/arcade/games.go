package main

// Import games to register them
import (
	_ "github.com/vovakirdan/retro-arcade/internal/games/adventure"
	_ "github.com/vovakirdan/retro-arcade/internal/games/asteroids"
	_ "github.com/vovakirdan/retro-arcade/internal/games/centipede"
	_ "github.com/vovakirdan/retro-arcade/internal/games/defender"
	_ "github.com/vovakirdan/retro-arcade/internal/games/donkeykong"
	_ "github.com/vovakirdan/retro-arcade/internal/games/invaders"
	_ "github.com/vovakirdan/retro-arcade/internal/games/missilecommand"
	_ "github.com/vovakirdan/retro-arcade/internal/games/pacman"
	_ "github.com/vovakirdan/retro-arcade/internal/games/pitfall"
	_ "github.com/vovakirdan/retro-arcade/internal/games/pong"
)
