package catalog

// Body identifiers of the built-in solar system
const (
	Mercury  = "Mercury"
	Venus    = "Venus"
	Earth    = "Earth"
	Mars     = "Mars"
	Jupiter  = "Jupiter"
	Saturn   = "Saturn"
	Uranus   = "Uranus"
	Neptune  = "Neptune"
	Station1 = "Station-1"
	Station2 = "Station-2"
	Station3 = "Station-3"
)

// BuiltinBodies lists the recognised bodies in presentation order
var BuiltinBodies = []string{
	Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune,
	Station1, Station2, Station3,
}

// BuiltinDistances is the seeded distance table
var BuiltinDistances = []Distance{
	{Pair{Mercury, Venus}, 38},
	{Pair{Mercury, Earth}, 91},
	{Pair{Mercury, Mars}, 78},
	{Pair{Mercury, Jupiter}, 550},
	{Pair{Mercury, Saturn}, 1220},
	{Pair{Mercury, Uranus}, 2600},
	{Pair{Venus, Earth}, 42},
	{Pair{Venus, Mars}, 61},
	{Pair{Venus, Jupiter}, 520},
	{Pair{Venus, Saturn}, 1130},
	{Pair{Venus, Uranus}, 2480},
	{Pair{Earth, Mars}, 78},
	{Pair{Earth, Jupiter}, 628},
	{Pair{Earth, Saturn}, 1270},
	{Pair{Earth, Uranus}, 2720},
	{Pair{Earth, Neptune}, 4340},
	{Pair{Mars, Jupiter}, 558},
	{Pair{Mars, Saturn}, 1150},
	{Pair{Mars, Uranus}, 2650},
	{Pair{Jupiter, Saturn}, 650},
	{Pair{Jupiter, Uranus}, 1520},
	{Pair{Jupiter, Neptune}, 2380},
	{Pair{Saturn, Uranus}, 870},
	{Pair{Saturn, Neptune}, 1420},
	{Pair{Uranus, Neptune}, 2850},
	{Pair{Station1, Mercury}, 500},
	{Pair{Station1, Neptune}, 1000},
	{Pair{Station2, Mars}, 400},
	{Pair{Station2, Neptune}, 900},
	{Pair{Station3, Venus}, 450},
	{Pair{Station3, Neptune}, 950},
}

// Builtin returns the catalog seeded at process start
func Builtin() *DistanceCatalog {
	return MustNew(BuiltinBodies, BuiltinDistances)
}
