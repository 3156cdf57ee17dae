package fragctx

import "iter"

// Drive pulls tokens from each sibling fragment program's iterator in
// lock-step, the cooperative scheduler described in §5: each round it reads
// one token from every still-running sibling, asserts they all agree (every
// active sibling yields Synchronize, or each independently yields its final
// Keep/Discard), transitions the shared bundle type tag on a joint
// Synchronize, and continues until every sibling has produced its final
// token.
//
// typ is the bundle type (Point/Line/Filled) this bundle transitions to on
// the first joint Synchronize. progs and ctxs must have the same length,
// which must be 1, 2, or 4.
func Drive(progs []iter.Seq[Token], ctxs []*Context, typ BundleType) []Token {
	n := len(progs)
	if n != len(ctxs) {
		panic("fragctx: Drive requires progs and ctxs of equal length")
	}

	nexts := make([]func() (Token, bool), n)
	stops := make([]func(), n)
	for i, p := range progs {
		nexts[i], stops[i] = iter.Pull(p)
	}
	defer func() {
		for _, stop := range stops {
			stop()
		}
	}()

	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}
	final := make([]Token, n)

	for {
		anyActive := false
		toks := make([]Token, n)
		oks := make([]bool, n)
		for i := range n {
			if !active[i] {
				continue
			}
			anyActive = true
			toks[i], oks[i] = nexts[i]()
			if !oks[i] {
				panic("fragctx: fragment program stopped without yielding a final Keep/Discard")
			}
		}
		if !anyActive {
			break
		}

		syncCount := 0
		for i := range n {
			if active[i] && toks[i] == Synchronize {
				syncCount++
			}
		}

		switch {
		case syncCount == 0:
			for i := range n {
				if !active[i] {
					continue
				}
				final[i] = toks[i]
				active[i] = false
			}
		case syncCount == countActive(active):
			for i := range n {
				if active[i] {
					ctxs[i].setType(typ)
				}
			}
		default:
			panic("fragctx: mismatched Synchronize across bundle siblings")
		}
	}

	return final
}

func countActive(active []bool) int {
	n := 0
	for _, a := range active {
		if a {
			n++
		}
	}
	return n
}
