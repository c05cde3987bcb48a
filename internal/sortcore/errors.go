package sortcore

import "errors"

// errScratchTooLarge is reported to the fatal handler when a merge would
// need a scratch buffer larger than the memory ceiling, a quarter of total
// system memory (spec §4.4,
// §7 "Allocation failure"): the engine's own logic is total, so the only
// way this fires is a corrupt array, an inconsistent comparator, or a
// genuinely adversarial input driving runaway run lengths.
var errScratchTooLarge = errors.New("sortcore: scratch buffer request exceeds memory ceiling")
