package translate

// Modifier selects how the next consumed value is rendered into SQL. The set
// is closed: unknown tags are a checked error, never a dynamic lookup.
type Modifier string

const (
	ModNone       Modifier = ""       // type-directed default formatting
	ModString     Modifier = "s"      // quoted string, NULL passthrough
	ModBinary     Modifier = "bin"    // binary blob through the driver
	ModBool       Modifier = "b"      // boolean literal
	ModInt        Modifier = "i"      // signed integer
	ModUint       Modifier = "u"      // unsigned integer
	ModIntNull    Modifier = "iN"     // integer, '' / 0 / nil become NULL
	ModStringNull Modifier = "sN"     // string, '' / 0 / nil become NULL
	ModFloat      Modifier = "f"      // fixed point, trailing zeros trimmed
	ModDate       Modifier = "d"      // date literal
	ModTime       Modifier = "t"      // datetime literal
	ModDateTime   Modifier = "dt"     // datetime literal
	ModName       Modifier = "n"      // composed dotted identifier
	ModNameRaw    Modifier = "N"      // single identifier, no dot splitting
	ModExpr       Modifier = "ex"     // nested expression, translated inline
	ModExprSQL    Modifier = "sql"    // alias of ex
	ModRawSQL     Modifier = "SQL"    // raw passthrough
	ModLike       Modifier = "like"   // LIKE pattern, no wildcards
	ModLikeRight  Modifier = "like~"  // LIKE pattern, trailing wildcard
	ModLikeLeft   Modifier = "~like"  // LIKE pattern, leading wildcard
	ModLikeBoth   Modifier = "~like~" // LIKE pattern, both wildcards
	ModAnd        Modifier = "and"    // predicate array joined with AND
	ModOr         Modifier = "or"     // predicate array joined with OR
	ModAssign     Modifier = "a"      // assignment list
	ModList       Modifier = "l"      // value list, empty renders ()
	ModIn         Modifier = "in"     // value list, empty renders (NULL)
	ModValues     Modifier = "v"      // (keys) VALUES (values)
	ModMulti      Modifier = "m"      // multi-row insert
	ModBy         Modifier = "by"     // ORDER BY direction array
	ModLimit      Modifier = "lmt"    // capture limit, emit nothing
	ModOffset     Modifier = "ofs"    // capture offset, emit nothing
)

// control tags recognized by the scanner alongside value modifiers.
const (
	tagIf   = "if"
	tagElse = "else"
	tagEnd  = "end"
)

// ParseModifier validates a scanned %tag against the modifier table.
func ParseModifier(tag string) (Modifier, bool) {
	switch Modifier(tag) {
	case ModString, ModBinary, ModBool, ModInt, ModUint, ModIntNull,
		ModStringNull, ModFloat, ModDate, ModTime, ModDateTime, ModName,
		ModNameRaw, ModExpr, ModExprSQL, ModRawSQL, ModLike, ModLikeRight,
		ModLikeLeft, ModLikeBoth, ModAnd, ModOr, ModAssign, ModList, ModIn,
		ModValues, ModMulti, ModBy, ModLimit, ModOffset:
		return Modifier(tag), true
	}
	// "sn" is accepted as a spelling of sN.
	if tag == "sn" {
		return ModStringNull, true
	}
	return ModNone, false
}
