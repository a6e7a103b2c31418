package builder

// Typed wrappers over Call for the common clause names. They exist so query
// construction reads naturally; Call remains the generic entry point.

func (b *Builder) Select(args ...any) *Builder { return b.Call("select", args...) }

func (b *Builder) From(args ...any) *Builder { return b.Call("from", args...) }

func (b *Builder) Where(args ...any) *Builder { return b.Call("where", args...) }

func (b *Builder) GroupBy(args ...any) *Builder { return b.Call("groupBy", args...) }

func (b *Builder) Having(args ...any) *Builder { return b.Call("having", args...) }

func (b *Builder) OrderBy(args ...any) *Builder { return b.Call("orderBy", args...) }

func (b *Builder) Limit(n int) *Builder { return b.Call("limit", n) }

func (b *Builder) Offset(n int) *Builder { return b.Call("offset", n) }

func (b *Builder) Update(args ...any) *Builder { return b.Call("update", args...) }

func (b *Builder) Set(args ...any) *Builder { return b.Call("set", args...) }

func (b *Builder) InsertInto(args ...any) *Builder { return b.Call("insertInto", args...) }

func (b *Builder) Values(args ...any) *Builder { return b.Call("values", args...) }

func (b *Builder) DeleteFrom(args ...any) *Builder { return b.Call("deleteFrom", args...) }

func (b *Builder) Join(args ...any) *Builder { return b.Call("join", args...) }

func (b *Builder) LeftJoin(args ...any) *Builder { return b.Call("leftJoin", args...) }

func (b *Builder) InnerJoin(args ...any) *Builder { return b.Call("innerJoin", args...) }

func (b *Builder) RightJoin(args ...any) *Builder { return b.Call("rightJoin", args...) }

func (b *Builder) OuterJoin(args ...any) *Builder { return b.Call("outerJoin", args...) }

// Distinct sets the DISTINCT command flag.
func (b *Builder) Distinct() *Builder { return b.SetFlag("distinct", true) }
