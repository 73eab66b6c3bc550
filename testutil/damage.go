package testutil

// DamageCounter counts damage notifications. It satisfies regionfsm.Host.
type DamageCounter struct {
	N int
}

func (d *DamageCounter) Damage() { d.N++ }

// Take returns the count and resets it.
func (d *DamageCounter) Take() int {
	n := d.N
	d.N = 0
	return n
}
