// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"sort"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/mempool"
	"github.com/ash-chain/ashd/util"
)

// SelectionState holds everything a single CreateNewBlock call's package
// selection pass needs, scoped to the lifetime of that call (spec.md §3,
// SelectionState).
type SelectionState struct {
	accountant *ResourceAccountant
	modified   *ModifiedIndex
	inBlock    map[daghash.TxID]*mempool.Entry
	failedTx   map[daghash.TxID]struct{}

	consecutiveFailures int
}

// NewSelectionState creates the empty selection state a package selector
// run starts from.
func NewSelectionState(accountant *ResourceAccountant) *SelectionState {
	return &SelectionState{
		accountant: accountant,
		modified:   NewModifiedIndex(),
		inBlock:    make(map[daghash.TxID]*mempool.Entry),
		failedTx:   make(map[daghash.TxID]struct{}),
	}
}

// selected is one committed package member in commit order, the concrete
// unit C5 turns into a BlockTemplateEntry.
type selected struct {
	entry *mempool.Entry
}

// Selector runs the ancestor-feerate package selection main loop
// (spec.md §4.3, C3).
type Selector struct {
	pool            MempoolView
	state           *SelectionState
	blockMinFeeRate float64
	height          uint64
	lockTimeCutoff  int64
	chain           ChainView
	printPriority   bool

	committed []selected
}

// NewSelector returns a selector ready to drive one CreateNewBlock pass.
// printPriority mirrors the reference miner's -printpriority option
// (spec.md §6): when set, every committed package is logged as it's placed.
func NewSelector(pool MempoolView, chain ChainView, state *SelectionState, blockMinFeeRate float64, height uint64, lockTimeCutoff int64, printPriority bool) *Selector {
	return &Selector{
		pool:            pool,
		chain:           chain,
		state:           state,
		blockMinFeeRate: blockMinFeeRate,
		height:          height,
		lockTimeCutoff:  lockTimeCutoff,
		printPriority:   printPriority,
	}
}

// mempoolCursor is a snapshot, descending-order walk over the mempool's
// native ancestor-score index, advanced one step at a time as step 2 of the
// main loop consumes it (spec.md §4.3 names this iterator "mi").
type mempoolCursor struct {
	items []mempool.Scored
	pos   int
}

func newMempoolCursor(index *mempool.ScoreIndex) *mempoolCursor {
	items := make([]mempool.Scored, 0, index.Len())
	index.Descend(func(v mempool.Scored) bool {
		items = append(items, v)
		return true
	})
	return &mempoolCursor{items: items}
}

func (c *mempoolCursor) peek() *mempool.Entry {
	if c.pos >= len(c.items) {
		return nil
	}
	return c.items[c.pos].(*mempool.Entry)
}

func (c *mempoolCursor) advance() {
	c.pos++
}

// Run drives the main loop to completion and returns the committed
// packages' members in commit order (ancestors before descendants within
// each package, per step 7's ancestor-count sort).
func (s *Selector) Run() []*mempool.Entry {
	cursor := newMempoolCursor(s.pool.ScoreIndex())

	for {
		// Step 1: skip stale mempool entries.
		for {
			e := cursor.peek()
			if e == nil {
				break
			}
			txID := e.TxID()
			if s.isInBlock(txID) || s.state.modified.Has(txID) || s.isFailed(txID) {
				cursor.advance()
				continue
			}
			break
		}

		miEntry := cursor.peek()
		modBest := s.state.modified.PeekBest()

		if miEntry == nil && modBest == nil {
			break
		}

		// Step 2: pick the better-scored candidate.
		var candidate *mempool.Entry
		usingModified := false
		if modBest != nil && (miEntry == nil || modifiedBeatsNative(modBest, miEntry)) {
			candidate = modBest.Entry()
			usingModified = true
		} else {
			candidate = miEntry
			cursor.advance()
		}

		packageFee, packageSize, packageSigOps := s.packageTotals(candidate, usingModified)

		// Step 3: score gate.
		if float64(packageFee) < s.blockMinFeeRate*float64(packageSize) {
			s.reject(candidate, usingModified, true)
			continue
		}

		// Step 4: fit gate.
		if !s.state.accountant.Fits(packageSize, packageSigOps) {
			s.reject(candidate, usingModified, true)
			s.state.consecutiveFailures++
			if s.state.consecutiveFailures > maxConsecutiveFailures &&
				s.state.accountant.BlockSize() > s.state.accountant.maxSize-fitMargin {
				break
			}
			continue
		}

		// Step 5: compute the concrete package (ancestor closure minus
		// inBlock, plus the candidate itself).
		pkg := s.computePackage(candidate)

		// Step 6: contextual check.
		if !s.passesContextualCheck(pkg) {
			s.reject(candidate, usingModified, true)
			continue
		}

		// Step 7: commit, ancestor-count ascending order.
		s.commitPackage(pkg)

		// Step 8: refresh descendants' modified scores.
		s.updateDescendants(pkg)
	}

	out := make([]*mempool.Entry, len(s.committed))
	for i, c := range s.committed {
		out[i] = c.entry
	}
	return out
}

func (s *Selector) isInBlock(txID daghash.TxID) bool {
	_, ok := s.state.inBlock[txID]
	return ok
}

func (s *Selector) isFailed(txID daghash.TxID) bool {
	_, ok := s.state.failedTx[txID]
	return ok
}

// modifiedBeatsNative compares C2's best against the mempool's native top
// using the same ancestor-score ordering the index itself uses.
func modifiedBeatsNative(modified *ModifiedEntry, native *mempool.Entry) bool {
	lhs := float64(modified.AncestorScoreFee()) / float64(modified.AncestorScoreSize())
	rhs := float64(native.AncestorFee) / float64(native.AncestorSize)
	if lhs != rhs {
		return lhs > rhs
	}
	lhsID, rhsID := modified.AncestorScoreTxID(), native.TxID()
	return !lhsID.Less(&rhsID) && lhsID != rhsID
}

// packageTotals returns the candidate's package-level fee/size/sigops,
// drawn from C2's adjusted aggregates if usingModified, else from the
// mempool entry's own ancestor aggregates.
func (s *Selector) packageTotals(candidate *mempool.Entry, usingModified bool) (fee util.Amount, size uint64, sigOps int64) {
	if usingModified {
		m := s.state.modified.Get(candidate)
		return m.AncestorScoreFee(), m.AncestorScoreSize(), m.sigOpCount
	}
	return candidate.AncestorFee, candidate.AncestorSize, candidate.AncestorSigOpCount
}

// reject handles a candidate's rejection uniformly: if it came from C2, it
// is removed from C2 and (when countsAsFailure) added to failedTx so step 1
// skips it on future encounters.
func (s *Selector) reject(candidate *mempool.Entry, usingModified, countsAsFailure bool) {
	if usingModified {
		s.state.modified.Erase(candidate.TxID())
	}
	if countsAsFailure {
		s.state.failedTx[candidate.TxID()] = struct{}{}
	}
}

// computePackage returns the candidate's full in-mempool ancestor closure,
// excluding anything already in inBlock, plus the candidate itself.
func (s *Selector) computePackage(candidate *mempool.Entry) []*mempool.Entry {
	ancestors := s.pool.CalculateAncestors(candidate)
	pkg := make([]*mempool.Entry, 0, len(ancestors)+1)
	for txID, ancestor := range ancestors {
		if s.isInBlock(txID) {
			continue
		}
		pkg = append(pkg, ancestor)
	}
	pkg = append(pkg, candidate)
	return pkg
}

// passesContextualCheck runs the consensus finality check over every
// package member and re-verifies the block-size ceiling against the exact
// package, not the possibly-stale aggregate used at the fit gate.
func (s *Selector) passesContextualCheck(pkg []*mempool.Entry) bool {
	var packageSize uint64
	for _, e := range pkg {
		packageSize += e.Size
	}
	if s.state.accountant.BlockSize()+packageSize >= s.state.accountant.maxSize {
		return false
	}
	if s.chain == nil {
		return true
	}
	for _, e := range pkg {
		if !s.chain.IsFinalForBlock(e.Tx, s.height, s.lockTimeCutoff) {
			return false
		}
	}
	return true
}

// commitPackage sorts pkg by ancestor-count ascending (a valid topological
// order within an ancestor-closed set), commits each member to C1, appends
// it to the committed sequence, marks it in inBlock, and drops any stale C2
// entry for it.
func (s *Selector) commitPackage(pkg []*mempool.Entry) {
	sort.SliceStable(pkg, func(i, j int) bool {
		return len(s.pool.CalculateAncestors(pkg[i])) < len(s.pool.CalculateAncestors(pkg[j]))
	})

	for _, e := range pkg {
		s.state.accountant.Commit(e.Size, e.SigOpCount)
		s.committed = append(s.committed, selected{entry: e})
		s.state.inBlock[e.TxID()] = e
		s.state.modified.Erase(e.TxID())
		if s.printPriority {
			txID := e.TxID()
			log.Debugf("Adding tx %s (fee %d, size %d) to new block", txID, e.Fee, e.Size)
		}
	}
	s.state.consecutiveFailures = 0
}

// updateDescendants refreshes C2 for every not-yet-committed descendant of
// the just-committed package (spec.md §4.2).
func (s *Selector) updateDescendants(pkg []*mempool.Entry) {
	for _, ancestor := range pkg {
		for txID, descendant := range s.pool.CalculateDescendants(ancestor) {
			if s.isInBlock(txID) {
				continue
			}
			s.state.modified.Upsert(descendant, ancestor)
		}
	}
}
