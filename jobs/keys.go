package jobs

// stringKey and charKey are the two intermediate/output key types the
// bundled jobs use. Both satisfy engine.Key via Less, the ordering
// capability the engine requires of K2 and K3.

type stringKey string

func (s stringKey) Less(other stringKey) bool { return s < other }

type charKey byte

func (c charKey) Less(other charKey) bool { return c < other }
