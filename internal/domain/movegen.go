package domain

import "sort"

// PossibleMoves enumerates every legal move from hand.
//
// Moves are filtered by lock (must contain that rank) and by last (same type,
// rank greater or equal). The result is sorted by rank then by type size, so
// the first move is always the weakest.
func PossibleMoves(hand []Card, last *Move, lock *Rank) []Move {
	var moves []Move

	for _, c := range hand {
		moves = append(moves, Move{kind: Single, cards: []Card{c}})
	}

	for _, group := range groupByRank(hand) {
		for size := 2; size <= len(group) && size <= int(FourOfAKind); size++ {
			combinations(group, size, func(combo []Card) {
				moves = append(moves, Move{kind: MoveType(size), cards: combo})
			})
		}
	}

	out := moves[:0]
	for _, m := range moves {
		if lock != nil && !m.ContainsRank(*lock) {
			continue
		}
		if !m.CanBePlayedOn(last) {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank() != out[j].Rank() {
			return out[i].Rank() < out[j].Rank()
		}
		return out[i].kind < out[j].kind
	})
	return out
}

// IsLegal reports whether m can be played from hand given the pile state.
func IsLegal(m Move, hand []Card, last *Move, lock *Rank) bool {
	if m.IsZero() || len(m.cards) != m.kind.Size() {
		return false
	}
	if !ContainsCards(hand, m.cards) {
		return false
	}
	if lock != nil && !m.ContainsRank(*lock) {
		return false
	}
	return m.CanBePlayedOn(last)
}

// groupByRank returns same-rank groups in ascending rank order, preserving
// hand order inside each group.
func groupByRank(hand []Card) [][]Card {
	var groups [NumRanks][]Card
	for _, c := range hand {
		if c.Rank.Valid() {
			groups[c.Rank] = append(groups[c.Rank], c)
		}
	}
	out := make([][]Card, 0, NumRanks)
	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// combinations calls fn with every k-sized subset of cards, in index order.
func combinations(cards []Card, k int, fn func([]Card)) {
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			combo := make([]Card, k)
			for i, j := range idx {
				combo[i] = cards[j]
			}
			fn(combo)
			return
		}
		for i := start; i <= len(cards)-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
