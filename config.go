package archon

// Tunables default to a 100,000 byte chunk, 20,000 live entities, and 64
// distinct component types.
const (
	DefaultMemoryChunkSize = 100_000
	DefaultMaxEntities     = 20_000
	DefaultMaxComponents   = 64
)

// config holds the package-level tunables every World is built from, as a
// package-level singleton rather than per-World construction arguments.
type config struct {
	MemoryChunkSize int
	MaxEntities     int
	MaxComponents   int
}

// Config is the default configuration new Worlds are built with. Set its
// fields before constructing any World; a World snapshots it at creation
// time and never re-reads it afterward.
var Config = config{
	MemoryChunkSize: DefaultMemoryChunkSize,
	MaxEntities:     DefaultMaxEntities,
	MaxComponents:   DefaultMaxComponents,
}
