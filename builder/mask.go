package builder

// clauseRule controls how repeated calls to the same clause are joined and
// which modifier a bare keyed array is promoted to.
type clauseRule struct {
	sep     string // literal placed between call groups
	replace bool   // later calls discard earlier content
	defMod  string // default array modifier tag for this clause
}

// commandMasks lists, per top-level command, the valid clause names in their
// emission order. Clauses outside the mask are invalid.
var commandMasks = map[string][]string{
	"SELECT": {"SELECT", "FROM", "WHERE", "GROUP BY", "HAVING", "ORDER BY", "LIMIT", "OFFSET"},
	"UPDATE": {"UPDATE", "SET", "WHERE", "ORDER BY", "LIMIT"},
	"INSERT": {"INSERT INTO", "VALUES", "SELECT", "FROM", "WHERE"},
	"DELETE": {"DELETE FROM", "WHERE", "ORDER BY", "LIMIT"},
}

var clauseRules = map[string]clauseRule{
	"SELECT":      {sep: ",", defMod: "n"},
	"FROM":        {sep: ",", defMod: "n"},
	"WHERE":       {sep: "AND", defMod: "and"},
	"GROUP BY":    {sep: ",", defMod: "n"},
	"HAVING":      {sep: "AND", defMod: "and"},
	"ORDER BY":    {sep: ",", defMod: "by"},
	"LIMIT":       {replace: true},
	"OFFSET":      {replace: true},
	"UPDATE":      {replace: true, defMod: "n"},
	"SET":         {sep: ",", defMod: "a"},
	"INSERT INTO": {replace: true, defMod: "n"},
	"VALUES":      {sep: ",", defMod: "v"},
	"DELETE FROM": {replace: true, defMod: "n"},
}

// commandFor maps a normalized first-call keyword to its command and the
// canonical clause that call targets.
func commandFor(keyword string) (command, clause string, ok bool) {
	switch keyword {
	case "SELECT":
		return "SELECT", "SELECT", true
	case "UPDATE":
		return "UPDATE", "UPDATE", true
	case "INSERT", "INSERT INTO":
		return "INSERT", "INSERT INTO", true
	case "DELETE", "DELETE FROM":
		return "DELETE", "DELETE FROM", true
	default:
		return "", "", false
	}
}

// joinKeywords redirect accumulation into the FROM slot.
var joinKeywords = map[string]bool{
	"JOIN":       true,
	"LEFT JOIN":  true,
	"INNER JOIN": true,
	"RIGHT JOIN": true,
	"OUTER JOIN": true,
}

// trailingKeywords are SQL keyword-like call names that append to whatever
// clause is currently active instead of opening a slot of their own.
var trailingKeywords = map[string]bool{
	"AS":      true,
	"ON":      true,
	"USING":   true,
	"ASC":     true,
	"DESC":    true,
	"AND":     true,
	"OR":      true,
	"NOT":     true,
	"IN":      true,
	"IS":      true,
	"NULL":    true,
	"BETWEEN": true,
	"LIKE":    true,
	"EXISTS":  true,
}

// aliasClause resolves shorthand clause names inside an active command.
func aliasClause(command, keyword string) string {
	switch {
	case command == "INSERT" && keyword == "INSERT":
		return "INSERT INTO"
	case command == "DELETE" && (keyword == "DELETE" || keyword == "FROM"):
		return "DELETE FROM"
	default:
		return keyword
	}
}
