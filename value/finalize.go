package value

// FinalizeDict back-binds every callable entry's BoundDict to d, per
// spec §4.6.3: "after all entries exist, back-bind every callable
// entry's boundDict to the finalized dict." Used both by dict literal
// construction in eval and by rtctx when seeding config.Variables, so a
// host-provided dict of methods gets the same implicit-receiver wiring
// a script-authored one would.
//
// FinalizeDict mutates and returns d; callables are cloned (BoundDict is
// installed once and never mutated afterward, per spec §9) so the same
// *Callable is never shared, bound, across two different dicts.
func FinalizeDict(d *Dict) *Dict {
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		if c, ok := v.(*Callable); ok {
			bound := *c
			bound.BoundDict = d
			d.Set(k, &bound)
		}
	}
	return d
}
