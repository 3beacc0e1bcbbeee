package app

import "president/internal/domain"

// MinPlayersToStartGame defines the minimum number of occupied seats required to start a game.
const MinPlayersToStartGame = domain.MinPlayers
