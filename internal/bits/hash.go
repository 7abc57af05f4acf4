package bits

// splitmix64: deterministic 64-bit mixer
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// DeriveSeed mixes a base seed with arbitrary stream identifiers so that
// independent consumers (interleavers, channels, per-iteration draws) get
// decorrelated but reproducible seeds.
func DeriveSeed(seed int64, parts ...uint64) int64 {
	x := uint64(seed)
	for _, p := range parts {
		x = splitmix64(x ^ p)
	}
	return int64(x)
}
