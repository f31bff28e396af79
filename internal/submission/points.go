package submission

import "gamecontest/internal/game"

const platinumBonus = 1

var categoryPoints = map[game.Category]int{
	game.CategoryRetro: 1,
	game.CategoryIndie: 1,
	game.CategoryAA:    2,
	game.CategoryAAA:   3,
}

// Points is what an approved completion is worth. Unknown categories score as AA.
func Points(category game.Category, hasPlatinum bool) int {
	p, ok := categoryPoints[category]
	if !ok {
		p = categoryPoints[game.CategoryAA]
	}
	if hasPlatinum {
		p += platinumBonus
	}
	return p
}
