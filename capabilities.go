package sqlforge

// Feature represents DB-specific feature flags
type Feature int

const (
	FeatureLimitOffset     Feature = iota + 1 // LIMIT n OFFSET m
	FeatureFetchFirst                         // OFFSET n ROWS FETCH FIRST m ROWS ONLY
	FeatureBacktickQuote                      // `identifier`
	FeatureBooleanLiterals                    // TRUE / FALSE keywords
	FeatureReturning                          // RETURNING clause
)

// Capabilities defines which SQL features are supported by each dialect
var Capabilities = map[Dialect]map[Feature]bool{
	DialectPostgres: {
		FeatureLimitOffset:     true,
		FeatureFetchFirst:      true,
		FeatureBacktickQuote:   false,
		FeatureBooleanLiterals: true,
		FeatureReturning:       true,
	},
	DialectMySQL: {
		FeatureLimitOffset:     true,
		FeatureFetchFirst:      false,
		FeatureBacktickQuote:   true,
		FeatureBooleanLiterals: false,
		FeatureReturning:       false,
	},
	DialectMariaDB: {
		FeatureLimitOffset:     true,
		FeatureFetchFirst:      false,
		FeatureBacktickQuote:   true,
		FeatureBooleanLiterals: false,
		FeatureReturning:       true,
	},
	DialectSQLite: {
		FeatureLimitOffset:     true,
		FeatureFetchFirst:      false,
		FeatureBacktickQuote:   false,
		FeatureBooleanLiterals: false,
		FeatureReturning:       true,
	},
}
